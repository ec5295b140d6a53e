package unitexpr

import (
	"math/big"
	"strconv"
	"strings"
)

// Item is one element of an itemized expression. The concrete type of every
// Item is one of *Operand, *Operator, *Function, or Marker.
type Item interface {
	String() string
	item()
}

// Operand is a leaf value: a number, a named constant, or an unresolved name.
type Operand struct {
	label string
	value *big.Rat
	unit  string
}

// NewOperand creates an operand from its source text using the default
// constants.
func NewOperand(label string) *Operand {
	return newOperand(label, globalconsts, nil)
}

// newOperand creates an operand, looking label up first in over, then in
// consts, then parsing it as a decimal literal. A nil entry in over disables
// the constant of that name.
func newOperand(label string, consts, over map[string]*big.Rat) *Operand {
	o := Operand{label: label}
	v, ok := over[label]
	if !ok {
		v = consts[label]
	}
	switch {
	case v != nil:
		o.value = new(big.Rat).Set(v)
	case isDecimal(label):
		// isDecimal accepts only strings SetString can parse.
		o.value, _ = new(big.Rat).SetString(label)
	}
	return &o
}

// isDecimal returns whether s is one or more digits with at most one decimal
// point.
func isDecimal(s string) bool {
	var dig, dot bool
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return dig
}

// Label returns the source text of the operand.
func (o *Operand) Label() string {
	return o.label
}

// Value returns a copy of the operand's value. If the label is neither a
// constant nor a decimal literal, the result is nil.
func (o *Operand) Value() *big.Rat {
	if o.value == nil {
		return nil
	}
	return new(big.Rat).Set(o.value)
}

// Resolved returns whether the operand has a value.
func (o *Operand) Resolved() bool {
	return o.value != nil
}

// Unit returns the unit label attached to the operand, or the empty string if
// there is none.
func (o *Operand) Unit() string {
	return o.unit
}

// setUnit attaches a unit label. It reports false without changing the
// operand if a unit is already set.
func (o *Operand) setUnit(unit string) bool {
	if o.unit != "" {
		return false
	}
	o.unit = unit
	return true
}

func (o *Operand) String() string {
	if o.unit == "" {
		return o.label
	}
	return o.label + " [" + o.unit + "]"
}

// Assoc is the associativity of an operator.
type Assoc int8

const (
	// Left groups repeated operators left to right: a-b-c is (a-b)-c.
	Left Assoc = iota
	// Right groups repeated operators right to left: a^b^c is a^(b^c).
	Right
)

func (a Assoc) String() string {
	switch a {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Assoc(" + strconv.Itoa(int(a)) + ")"
	}
}

// Operator is a binary operator. There is exactly one Operator per symbol;
// use LookupOperator to obtain it.
type Operator struct {
	symbol string
	// prec is the precedence value. Higher is more binding.
	prec  int8
	assoc Assoc
}

// Symbol returns the operator's symbol.
func (o *Operator) Symbol() string {
	return o.symbol
}

// Precedence returns the binding strength of the operator. Higher binds
// tighter.
func (o *Operator) Precedence() int {
	return int(o.prec)
}

// Assoc returns the associativity of the operator.
func (o *Operator) Assoc() Assoc {
	return o.assoc
}

// yields returns whether o must be output before pushing next onto the
// operator stack.
func (o *Operator) yields(next *Operator) bool {
	if o.prec != next.prec {
		return o.prec > next.prec
	}
	return next.assoc == Left
}

func (o *Operator) String() string {
	return o.symbol
}

// Function is a call to a named function. Its arguments precede it in postfix
// order.
type Function struct {
	name string
	fn   Func
}

// Name returns the name of the function.
func (f *Function) Name() string {
	return f.name
}

// Arity returns the number of arguments the function consumes when
// evaluated. Arity is not checked during parsing.
func (f *Function) Arity() int {
	return f.fn.Arity()
}

// Func returns the implementation of the function.
func (f *Function) Func() Func {
	return f.fn
}

func (f *Function) String() string {
	return f.name + "()"
}

// Marker is a grouping item. Markers never appear in postfix output.
type Marker byte

const (
	OpenParen  Marker = '('
	CloseParen Marker = ')'
	Comma      Marker = ','
)

func (m Marker) String() string {
	return string(rune(m))
}

func (*Operand) item()  {}
func (*Operator) item() {}
func (*Function) item() {}
func (Marker) item()    {}

var operators = map[string]*Operator{
	"^": {"^", 4, Right},
	"*": {"*", 3, Left},
	"/": {"/", 3, Left},
	"-": {"-", 2, Left},
	"+": {"+", 2, Left},
	"=": {"=", 1, Left},
}

// LookupOperator returns the operator for a symbol, or nil if there is none.
func LookupOperator(symbol string) *Operator {
	return operators[symbol]
}

// reserved returns the Operator or Marker for a token, or nil if the token is
// not reserved.
func reserved(tok string) Item {
	if op := operators[tok]; op != nil {
		return op
	}
	switch tok {
	case "(":
		return OpenParen
	case ")":
		return CloseParen
	case ",":
		return Comma
	}
	return nil
}

var globalconsts = map[string]*big.Rat{
	"pi": big.NewRat(3141, 1000),
}

// funcitems holds the Function item for each default function.
var funcitems = func() map[string]*Function {
	m := make(map[string]*Function, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = &Function{name: k, fn: v}
	}
	return m
}()

// LookupFunc returns the Function item for a default function, or nil if
// there is no default function with that name.
func LookupFunc(name string) *Function {
	return funcitems[name]
}

// Format renders a sequence of items separated by spaces.
func Format(items []Item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(it.String())
	}
	return b.String()
}
