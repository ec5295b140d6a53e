package unitexpr

import "math/big"

// Option is an option for itemizing.
type Option interface {
	itemizeOption(itemctx) itemctx
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	constopt struct {
		name string
		val  *big.Rat
	}
	constsopt map[string]*big.Rat
)

// itemctx holds the tables used to classify tokens. It is also an Option.
type itemctx struct {
	// funcs overrides the default functions. A nil Func disables the name.
	funcs map[string]Func
	// consts overrides the default constants. A nil value disables the name.
	consts map[string]*big.Rat
	// items caches Function items for overridden functions.
	items map[string]*Function
}

// function returns the Function item for a name, or nil if the name is not
// an enabled function.
func (c *itemctx) function(name string) *Function {
	fn, ok := c.funcs[name]
	if !ok {
		return funcitems[name]
	}
	if fn == nil {
		return nil
	}
	if f := c.items[name]; f != nil {
		return f
	}
	f := &Function{name: name, fn: fn}
	if c.items == nil {
		c.items = make(map[string]*Function)
	}
	c.items[name] = f
	return f
}

// WithFunc sets a function for itemizing. To disable a default function, pass
// nil for fn; its name then becomes an ordinary operand.
func WithFunc(name string, fn Func) Option {
	return &funcopt{name, fn}
}

func (o *funcopt) itemizeOption(c itemctx) itemctx {
	c.funcs = copyFuncs(c.funcs, 1)
	c.funcs[o.name] = o.fn
	c.items = nil
	return c
}

// WithFuncs sets a group of functions for itemizing. To disable any function,
// set it to nil.
func WithFuncs(fns map[string]Func) Option {
	return funcsopt(fns)
}

func (o funcsopt) itemizeOption(c itemctx) itemctx {
	c.funcs = copyFuncs(c.funcs, len(o))
	for k, v := range o {
		c.funcs[k] = v
	}
	c.items = nil
	return c
}

// copyFuncs copies m with room for n more entries. Options never modify a map
// that another itemctx may share.
func copyFuncs(m map[string]Func, n int) map[string]Func {
	r := make(map[string]Func, len(m)+n)
	for k, v := range m {
		r[k] = v
	}
	return r
}

// DisableDefaultFuncs disables all default functions during itemizing. Their
// names will be itemized as operands instead.
func DisableDefaultFuncs() Option {
	return disablefns
}

var disablefns = func() funcsopt {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}()

// WithConst sets the value of a named constant. To disable a default constant,
// pass nil for val; its name then becomes an unresolved operand.
func WithConst(name string, val *big.Rat) Option {
	return &constopt{name, val}
}

func (o *constopt) itemizeOption(c itemctx) itemctx {
	c.consts = copyConsts(c.consts, 1)
	c.consts[o.name] = o.val
	return c
}

// WithConsts sets a group of named constants. To disable any constant, set it
// to nil.
func WithConsts(vals map[string]*big.Rat) Option {
	return constsopt(vals)
}

func (o constsopt) itemizeOption(c itemctx) itemctx {
	c.consts = copyConsts(c.consts, len(o))
	for k, v := range o {
		c.consts[k] = v
	}
	return c
}

func copyConsts(m map[string]*big.Rat, n int) map[string]*big.Rat {
	r := make(map[string]*big.Rat, len(m)+n)
	for k, v := range m {
		r[k] = v
	}
	return r
}

// Preset creates an itemizing preset that may be more efficient when using
// the same options for many calls to Itemize or Parse. Function items created
// for a preset are shared by every call using it. A preset panics when it
// would replace options applied before it, but it is safe to apply other
// options after a preset.
func Preset(opts ...Option) Option {
	var c itemctx
	for _, opt := range opts {
		c = opt.itemizeOption(c)
	}
	for k, fn := range c.funcs {
		if fn != nil {
			c.function(k)
		}
	}
	return &c
}

func (o *itemctx) itemizeOption(c itemctx) itemctx {
	if c.funcs != nil || c.consts != nil {
		panic("unitexpr: preset applied to non-default itemize config")
	}
	c.funcs = o.funcs
	c.consts = o.consts
	c.items = o.items
	return c
}
