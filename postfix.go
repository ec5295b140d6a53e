package unitexpr

// pending is an item on the operator stack with its index in the input.
type pending struct {
	it  Item
	idx int
}

// Postfix reorders items from infix to postfix order using the shunting-yard
// algorithm. Operands keep their relative order; operators follow their
// operands, tighter-binding first; each function follows its arguments.
// Brackets and commas are consumed. The only error is a *ParenError for a
// close bracket with no open bracket or an open bracket that is never closed.
//
// Postfix does not check that operators and functions have the right number
// of operands.
func Postfix(items []Item) ([]Item, error) {
	out := make([]Item, 0, len(items))
	var ops []pending
	for i, it := range items {
		switch it := it.(type) {
		case *Operand:
			out = append(out, it)
		case *Function:
			ops = append(ops, pending{it, i})
		case *Operator:
			for len(ops) > 0 {
				top, ok := ops[len(ops)-1].it.(*Operator)
				if !ok || !top.yields(it) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, pending{it, i})
		case Marker:
			switch it {
			case OpenParen:
				ops = append(ops, pending{it, i})
			case CloseParen:
				var ok bool
				out, ops, ok = unwind(out, ops)
				if !ok {
					return nil, &ParenError{Index: i}
				}
				// Drop the open bracket.
				ops = ops[:len(ops)-1]
				if len(ops) > 0 {
					if f, ok := ops[len(ops)-1].it.(*Function); ok {
						out = append(out, f)
						ops = ops[:len(ops)-1]
					}
				}
			case Comma:
				// Finish the previous argument. Outside of brackets, a
				// comma does nothing.
				out, ops, _ = unwind(out, ops)
			default:
				panic("unitexpr: invalid marker " + it.String())
			}
		default:
			panic("unitexpr: unknown item type")
		}
	}
	for len(ops) > 0 {
		p := ops[len(ops)-1]
		if p.it == OpenParen {
			return nil, &ParenError{Index: p.idx, Open: true}
		}
		out = append(out, p.it)
		ops = ops[:len(ops)-1]
	}
	return out, nil
}

// unwind moves items from the top of ops to out until the top of ops is an
// open bracket. If ops has no open bracket, the result is false and neither
// slice changes.
func unwind(out []Item, ops []pending) ([]Item, []pending, bool) {
	k := len(ops) - 1
	for k >= 0 && ops[k].it != OpenParen {
		k--
	}
	if k < 0 {
		return out, ops, false
	}
	for j := len(ops) - 1; j > k; j-- {
		out = append(out, ops[j].it)
	}
	return out, ops[:k+1], true
}
