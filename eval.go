package unitexpr

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating postfix sequences. It is not safe to use
// a Context concurrently.
type Context struct {
	stack []value
	names map[string]*big.Float
	prec  uint
	log   logr.Logger
	res   *big.Float
	err   error
}

// value is an entry on the evaluation stack. Unresolved operands are pushed
// by name and looked up only when an operator needs them, so that they can be
// assigned.
type value struct {
	x    *big.Float
	name string
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[string]*big.Float
	precopt uint
	logopt  struct {
		log logr.Logger
	}
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}
func (logopt) ctxOption()  {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Logger sets the logger which traces evaluation. Each evaluated item is
// logged at V(1).
func Logger(log logr.Logger) ContextOption {
	return logopt{log}
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64. If no logger is given, nothing is logged.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64, log: logr.Discard()}
	return ctx.Clone(opts...)
}

// Eval evaluates a postfix sequence, such as one returned from Parse or
// Postfix, and returns the result. Assignments with = set variables in ctx. If
// an error occurs, e.g. a missing variable definition or an argument to a
// function is outside the function's domain, then the result is nil and
// ctx.Err returns the error.
func (ctx *Context) Eval(postfix []Item) *big.Float {
	ctx.stack = ctx.stack[:0]
	ctx.res, ctx.err = nil, nil
	for i, it := range postfix {
		ctx.log.V(1).Info("eval", "index", i, "item", it.String(), "depth", len(ctx.stack))
		if err := ctx.apply(it); err != nil {
			ctx.err = errors.Wrapf(err, "item %d (%v)", i, it)
			return nil
		}
	}
	if len(ctx.stack) != 1 {
		ctx.err = &StackError{Have: len(ctx.stack)}
		return nil
	}
	r, err := ctx.resolve(ctx.stack[0])
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.res = r
	return r
}

// Result returns the result obtained from the last call to Eval, or nil if
// it failed or Eval has not been called.
func (ctx *Context) Result() *big.Float {
	return ctx.res
}

// Err returns the error from the last call to Eval, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. If there is no such
// variable in the context, then the result is nil.
func (ctx *Context) Lookup(name string) *big.Float {
	v := ctx.names[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(map[string]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
		log:   ctx.log,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Copy variables. Set always replaces rather than modifies values, so with
	// the same precision, we can just copy pointers.
	if n.prec == ctx.prec {
		for name, val := range ctx.names {
			n.names[name] = val
		}
	} else {
		for name, val := range ctx.names {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for k, v := range opt {
				n.names[k] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		case precopt:
			// Already done. Do nothing.
		case logopt:
			n.log = opt.log
		default:
			panic("unitexpr: unknown option type")
		}
	}
	return &n
}

// push pushes a value onto the stack.
func (ctx *Context) push(v value) {
	ctx.stack = append(ctx.stack, v)
}

// popn removes the top n values from the stack and returns them in the order
// they were pushed. The returned slice is only valid until the next push.
func (ctx *Context) popn(n int) ([]value, error) {
	k := len(ctx.stack) - n
	if k < 0 {
		return nil, &StackError{Want: n, Have: len(ctx.stack)}
	}
	r := ctx.stack[k:]
	ctx.stack = ctx.stack[:k]
	return r, nil
}

// resolve gets the numeric value of a stack entry.
func (ctx *Context) resolve(v value) (*big.Float, error) {
	if v.x != nil {
		return v.x, nil
	}
	x := ctx.names[v.name]
	if x == nil {
		return nil, &NameError{Name: v.name}
	}
	return new(big.Float).Copy(x), nil
}

// apply evaluates a single item against the stack.
func (ctx *Context) apply(it Item) error {
	switch it := it.(type) {
	case *Operand:
		if it.value == nil {
			ctx.push(value{name: it.label})
			return nil
		}
		ctx.push(value{x: new(big.Float).SetPrec(ctx.prec).SetRat(it.value)})
	case *Operator:
		args, err := ctx.popn(2)
		if err != nil {
			return err
		}
		l, r := args[0], args[1]
		y, err := ctx.resolve(r)
		if err != nil {
			return err
		}
		if it.symbol == "=" {
			if l.x != nil {
				return &AssignError{Value: l.x}
			}
			ctx.Set(l.name, y)
			ctx.push(value{x: y})
			return nil
		}
		x, err := ctx.resolve(l)
		if err != nil {
			return err
		}
		z, err := ctx.binary(it.symbol, x, y)
		if err != nil {
			return err
		}
		ctx.push(value{x: z})
	case *Function:
		args, err := ctx.popn(it.Arity())
		if err != nil {
			return err
		}
		invoc := make([]*big.Float, len(args))
		for i, v := range args {
			if invoc[i], err = ctx.resolve(v); err != nil {
				return err
			}
		}
		r := new(big.Float).SetPrec(ctx.prec)
		if err := it.fn.Call(ctx, invoc, r); err != nil {
			return err
		}
		ctx.push(value{x: r})
	case Marker:
		panic("unitexpr: eval on marker " + it.String())
	default:
		panic("unitexpr: unknown item type")
	}
	return nil
}

// binary applies an arithmetic operator, storing the result in l.
func (ctx *Context) binary(op string, l, r *big.Float) (*big.Float, error) {
	switch op {
	case "+":
		// inf + -inf has no value.
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return nil, &DomainError{X: r, Func: "+"}
		}
		l.Add(l, r)
	case "-":
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return nil, &DomainError{X: r, Func: "-"}
		}
		l.Sub(l, r)
	case "*":
		// 0 * inf has no value.
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return nil, &DomainError{X: r, Func: "*"}
		}
		l.Mul(l, r)
	case "/":
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case "^":
		// Guard against invalid exponentiations, i.e. negative base.
		// TODO: allow negative base with integer exponent
		if l.Signbit() {
			return nil, &DomainError{X: l, Func: "^"}
		}
		if l.IsInf() || r.IsInf() {
			return nil, &DomainError{X: r, Func: "^"}
		}
		if l.Sign() == 0 {
			switch r.Sign() {
			case -1:
				l.SetInf(false)
			case 0:
				l.SetInt64(1)
			}
			return l, nil
		}
		bigfloat.Pow(l, l, r)
	default:
		panic("unitexpr: unknown operator " + strconv.Quote(op))
	}
	return l, nil
}

// Eval is a shortcut to parse an expression and return its result using the
// default functions and constants.
func Eval(src io.RuneScanner, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	a, err := ParseReader(src)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), opts...)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// AssignError is an error from an assignment whose left side is not a
// variable name.
type AssignError struct {
	// Value is the value found where a name was expected.
	Value *big.Float
}

func (err *AssignError) Error() string {
	return "cannot assign to value " + err.Value.String()
}

// StackError is an error indicating a postfix sequence with too few operands
// for an operator or function, or that does not produce exactly one result.
type StackError struct {
	// Want is the number of values an operator or function needed, or 0 if
	// the sequence ended with other than one value.
	Want int
	// Have is the number of values that were available.
	Have int
}

func (err *StackError) Error() string {
	if err.Want == 0 {
		return "expression produced " + strconv.Itoa(err.Have) + " values instead of 1"
	}
	return "need " + strconv.Itoa(err.Want) + " operands but have " + strconv.Itoa(err.Have)
}
