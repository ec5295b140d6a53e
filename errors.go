package unitexpr

import "strconv"

// ParenError is an error indicating mismatched parentheses. It implements
// InputError.
type ParenError struct {
	// Index is the position of the offending parenthesis in the items.
	Index int
	// Open is true when an open parenthesis was never closed and false when a
	// close parenthesis had no open parenthesis.
	Open bool
}

func (err *ParenError) Error() string {
	if err.Open {
		return errpos(err.Index, "mismatched parenthesis: ( with no )")
	}
	return errpos(err.Index, "mismatched parenthesis: ) with no (")
}

func (err *ParenError) Pos() int {
	return err.Index
}

// UnitError is an error indicating a second unit following an operand that
// already has one, as in "5 km h". It implements InputError.
type UnitError struct {
	// Index is the position of the extra unit in the tokens.
	Index int
	// Operand is the label of the operand.
	Operand string
	// Unit is the unit already attached to the operand.
	Unit string
	// Extra is the token that would have been a second unit.
	Extra string
}

func (err *UnitError) Error() string {
	return errpos(err.Index, "operand "+strconv.Quote(err.Operand)+" already has unit "+strconv.Quote(err.Unit)+", cannot add "+strconv.Quote(err.Extra))
}

func (err *UnitError) Pos() int {
	return err.Index
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input to Itemize or Postfix implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based index of the token or item that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*ParenError)(nil)
	_ InputError = (*UnitError)(nil)
)
