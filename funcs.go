package unitexpr

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is the implementation of a function from reals to reals.
type Func interface {
	// Call evaluates the function. The arguments are passed in args, whose
	// length is Arity(). The function must set r to its result and should not
	// use the value of r otherwise. Call may modify the elements of args.
	// Functions may but generally should not look up variables in ctx.
	Call(ctx *Context, args []*big.Float, r *big.Float) error

	// Arity returns the number of arguments the evaluator passes to Call.
	Arity() int
}

var globalfuncs = map[string]Func{
	"exp": Monadic(bigfloat.Exp),
	"ln": Monadic(func(out, in *big.Float) *big.Float {
		switch in.Sign() {
		case -1:
			panic(&DomainError{X: in, Arg: 1, Func: "ln"})
		case 0:
			return out.SetInf(true)
		}
		return bigfloat.Log(out, in)
	}),
	"sqrt": Monadic(func(out, in *big.Float) *big.Float {
		if in.Sign() < 0 {
			panic(&DomainError{X: in, Arg: 1, Func: "sqrt"})
		}
		return out.Sqrt(in)
	}),

	"max": Fold(2, func(acc, x *big.Float) *big.Float {
		if x.Cmp(acc) > 0 {
			acc.Set(x)
		}
		return acc
	}),
	"min": Fold(2, func(acc, x *big.Float) *big.Float {
		if x.Cmp(acc) < 0 {
			acc.Set(x)
		}
		return acc
	}),

	// trig, not yet implemented in dependencies
	"sin": Unsupported("sin", 1),
	"cos": Unsupported("cos", 1),
	"tan": Unsupported("tan", 1),
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, args []*big.Float, r *big.Float) (err error) {
	in := args[0]
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = r.(error) // panic if not error
		if errors.As(err, new(*DomainError)) {
			return
		}
		if errors.As(err, new(big.ErrNaN)) {
			err = &DomainError{X: in, Arg: 1}
			return
		}
		panic(err)
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) Arity() int {
	return 1
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with a
// *DomainError or an error of type big.ErrNaN, or that unwraps to either.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type fold struct {
	n int
	f func(acc, x *big.Float) *big.Float
}

func (m fold) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec()).Set(args[0])
	for _, x := range args[1:] {
		m.f(r, x)
	}
	return nil
}

func (m fold) Arity() int {
	return m.n
}

// Fold creates a Func of arity arguments which combines them left to right.
// f must update acc with x; its return value is always ignored. Panics if
// arity is less than 1.
func Fold(arity int, f func(acc, x *big.Float) *big.Float) Func {
	if arity < 1 {
		panic("unitexpr: fold of " + strconv.Itoa(arity) + " arguments")
	}
	return fold{arity, f}
}

type unsupported struct {
	name string
	n    int
}

func (u unsupported) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	return &UnsupportedFuncError{Func: u.name}
}

func (u unsupported) Arity() int {
	return u.n
}

// Unsupported creates a Func which can be parsed but always fails to evaluate
// with an *UnsupportedFuncError naming the function.
func Unsupported(name string, arity int) Func {
	return unsupported{name, arity}
}

// UnsupportedFuncError is an error returned when evaluating a function that
// has no implementation.
type UnsupportedFuncError struct {
	// Func is the name of the function.
	Func string
}

func (err *UnsupportedFuncError) Error() string {
	return err.Func + " is not implemented"
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 if unknown.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
