package unitexpr

import "io"

// classState is the classifier's view of the most recently emitted item.
type classState int8

const (
	// stateNone means no item has been emitted.
	stateNone classState = iota
	// stateBare means the last item is an operand without a unit. The next
	// plain token becomes its unit, and an open bracket may make it a
	// function call.
	stateBare
	// stateUnit means the last item is an operand with a unit.
	stateUnit
	// stateOther means the last item is an operator, function, or marker.
	stateOther
)

// Itemize classifies tokens into items. The given options are applied in
// order.
//
// A token directly following an operand that has no unit becomes that
// operand's unit: "130.8", "Hz" is one operand. An operand whose label names
// a function and which is directly followed by "(" becomes a Function item.
// Tokens that are neither reserved symbols nor units become operands, which
// may be unresolved. The only error is a *UnitError when a second unit
// follows an operand.
func Itemize(tokens []string, opts ...Option) ([]Item, error) {
	var c itemctx
	for _, opt := range opts {
		c = opt.itemizeOption(c)
	}
	items := make([]Item, 0, len(tokens))
	state := stateNone
	for i, tok := range tokens {
		if tok == "" {
			continue
		}
		if tok == "(" && state == stateBare {
			last := items[len(items)-1].(*Operand)
			if f := c.function(last.label); f != nil {
				items[len(items)-1] = f
			}
		}
		if it := reserved(tok); it != nil {
			items = append(items, it)
			state = stateOther
			continue
		}
		switch state {
		case stateBare:
			items[len(items)-1].(*Operand).setUnit(tok)
			state = stateUnit
		case stateUnit:
			last := items[len(items)-1].(*Operand)
			return nil, &UnitError{Index: i, Operand: last.label, Unit: last.unit, Extra: tok}
		case stateNone, stateOther:
			items = append(items, newOperand(tok, globalconsts, c.consts))
			state = stateBare
		default:
			panic("unitexpr: invalid classifier state")
		}
	}
	return items, nil
}

// Parse converts an infix expression into postfix order. It is a shortcut for
// Tokenize, Itemize, and Postfix.
func Parse(src string, opts ...Option) ([]Item, error) {
	items, err := Itemize(Tokenize(src), opts...)
	if err != nil {
		return nil, err
	}
	return Postfix(items)
}

// ParseReader is like Parse but reads the expression from src.
func ParseReader(src io.RuneScanner, opts ...Option) ([]Item, error) {
	toks, err := TokenizeReader(src)
	if err != nil {
		return nil, err
	}
	items, err := Itemize(toks, opts...)
	if err != nil {
		return nil, err
	}
	return Postfix(items)
}
