// Package unitexpr converts infix arithmetic expressions into postfix order.
//
// Conversion happens in three stages. Tokenize splits text into tokens,
// separating numbers from the unit labels that follow them, so "130.8Hz" is
// the same as "130.8 Hz". Itemize classifies tokens into operands,
// operators, function calls, and grouping markers, attaching unit labels to
// the operands they follow. Postfix reorders the items with the shunting-yard
// algorithm. Parse runs all three.
//
// Units are opaque: they ride along with their operands and are never
// converted or checked. Names that are neither constants nor decimal literals
// are left unresolved, so "c3 = 130.8 Hz" parses with c3 as a variable.
//
// A Context evaluates postfix sequences using arbitrary-precision floats.
//
package unitexpr
