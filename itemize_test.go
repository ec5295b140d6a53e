package unitexpr

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemizeUnits(t *testing.T) {
	items, err := Itemize([]string{"c3", "=", "130.8", "Hz"})
	require.NoError(t, err)
	require.Len(t, items, 3)

	c3, ok := items[0].(*Operand)
	require.True(t, ok, "items[0] is %T", items[0])
	assert.Equal(t, "c3", c3.Label())
	assert.False(t, c3.Resolved())
	assert.Nil(t, c3.Value())
	assert.Empty(t, c3.Unit())

	assert.Same(t, LookupOperator("="), items[1])

	f, ok := items[2].(*Operand)
	require.True(t, ok, "items[2] is %T", items[2])
	assert.Equal(t, "130.8", f.Label())
	assert.Equal(t, "Hz", f.Unit())
	require.True(t, f.Resolved())
	assert.Equal(t, 0, f.Value().Cmp(big.NewRat(1308, 10)))
	assert.Equal(t, "130.8 [Hz]", f.String())
}

func TestItemizeFunctions(t *testing.T) {
	toks := []string{"sin", "(", "max", "(", "2", ",", "3", ")", "/", "3", "*", "pi", ")"}
	items, err := Itemize(toks)
	require.NoError(t, err)
	require.Len(t, items, 13)
	assert.Same(t, LookupFunc("sin"), items[0])
	assert.Equal(t, OpenParen, items[1])
	assert.Same(t, LookupFunc("max"), items[2])
	assert.Equal(t, Comma, items[5])
	assert.Equal(t, CloseParen, items[12])

	pi, ok := items[11].(*Operand)
	require.True(t, ok, "items[11] is %T", items[11])
	assert.Equal(t, "pi", pi.Label())
	assert.Equal(t, "3.141", pi.Value().FloatString(3))
}

func TestItemizeClassify(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"num", "1", "1"},
		{"ops", "1 ^ 2 * 3 / 4 - 5 + 6 = 7", "1 ^ 2 * 3 / 4 - 5 + 6 = 7"},
		{"unit", "10km", "10 [km]"},
		{"unit-name", "x m", "x [m]"},
		{"speed", "speed = 10km/2.2h", "speed = 10 [km] / 2.2 [h]"},
		{"call", "sin(x)", "sin() ( x )"},
		{"call-space", "max (1, 2)", "max() ( 1 , 2 )"},
		{"not-call", "sin + (x)", "sin + ( x )"},
		{"unit-blocks-call", "2 sin (x)", "2 [sin] ( x )"},
		{"unknown-func", "f(x)", "f ( x )"},
		{"unit-after-paren", "(2) m", "( 2 ) m"},
		{"extra-funcs", "exp(ln(sqrt(x)))", "exp() ( ln() ( sqrt() ( x ) ) )"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, err := Itemize(Tokenize(c.src))
			require.NoError(t, err)
			assert.Equal(t, c.want, Format(items))
		})
	}
}

func TestItemizeOperands(t *testing.T) {
	cases := []struct {
		label string
		value *big.Rat
	}{
		{"0", big.NewRat(0, 1)},
		{"42", big.NewRat(42, 1)},
		{"2.5", big.NewRat(5, 2)},
		{".5", big.NewRat(1, 2)},
		{"5.", big.NewRat(5, 1)},
		{"pi", big.NewRat(3141, 1000)},
		{".", nil},
		{"1.2.3", nil},
		{"1e5", nil},
		{"1/2", nil},
		{"x", nil},
		{"Pi", nil},
	}
	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			o := NewOperand(c.label)
			assert.Equal(t, c.label, o.Label())
			if c.value == nil {
				assert.Nil(t, o.Value())
				return
			}
			require.NotNil(t, o.Value())
			assert.Equal(t, 0, c.value.Cmp(o.Value()), "want %v, got %v", c.value, o.Value())
		})
	}
}

func TestOperandValueCopy(t *testing.T) {
	o := NewOperand("pi")
	o.Value().SetInt64(7)
	assert.Equal(t, "3.141", o.Value().FloatString(3))
	assert.Equal(t, "3.141", NewOperand("pi").Value().FloatString(3))
}

func TestItemizeSecondUnit(t *testing.T) {
	items, err := Itemize([]string{"5", "km", "h"})
	assert.Nil(t, items)
	var u *UnitError
	require.True(t, errors.As(err, &u), "error was %#v", err)
	assert.Equal(t, 2, u.Pos())
	assert.Equal(t, "5", u.Operand)
	assert.Equal(t, "km", u.Unit)
	assert.Equal(t, "h", u.Extra)
	assert.Contains(t, err.Error(), `"h"`)
}

func TestItemizeOptions(t *testing.T) {
	double := Monadic(func(out, in *big.Float) *big.Float { return out.Add(in, in) })
	cases := []struct {
		name string
		src  string
		opts []Option
		want string
	}{
		{"disable-funcs", "sin(x)", []Option{DisableDefaultFuncs()}, "sin ( x )"},
		{"disable-one", "sin(cos(x))", []Option{WithFunc("sin", nil)}, "sin ( cos() ( x ) )"},
		{"add-func", "double(x)", []Option{WithFunc("double", double)}, "double() ( x )"},
		{"add-funcs", "double(x) + sin(x)", []Option{WithFuncs(map[string]Func{"double": double})}, "double() ( x ) + sin() ( x )"},
		{"add-after-disable", "double(sin(x))", []Option{DisableDefaultFuncs(), WithFunc("double", double)}, "double() ( sin ( x ) )"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, err := Itemize(Tokenize(c.src), c.opts...)
			require.NoError(t, err)
			assert.Equal(t, c.want, Format(items))
		})
	}
}

func TestItemizeConstOptions(t *testing.T) {
	items, err := Itemize(Tokenize("pi + tau"), WithConst("tau", big.NewRat(6283, 1000)))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "3.141", items[0].(*Operand).Value().FloatString(3))
	assert.Equal(t, "6.283", items[2].(*Operand).Value().FloatString(3))

	items, err = Itemize(Tokenize("pi + tau"), WithConsts(map[string]*big.Rat{"pi": nil}))
	require.NoError(t, err)
	assert.False(t, items[0].(*Operand).Resolved())
	assert.False(t, items[2].(*Operand).Resolved())

	// Options must not leak into the defaults.
	assert.True(t, NewOperand("pi").Resolved())
	assert.False(t, NewOperand("tau").Resolved())
}

func TestPreset(t *testing.T) {
	double := Monadic(func(out, in *big.Float) *big.Float { return out.Add(in, in) })
	preset := Preset(DisableDefaultFuncs(), WithFunc("double", double))
	a, err := Itemize(Tokenize("double(x)"), preset)
	require.NoError(t, err)
	b, err := Itemize(Tokenize("double(sin(x))"), preset)
	require.NoError(t, err)
	assert.Same(t, a[0], b[0], "preset function items differ")
	assert.Equal(t, "double() ( sin ( x ) )", Format(b))

	// Options after a preset are allowed.
	c, err := Itemize(Tokenize("double(y)"), preset, WithConst("y", big.NewRat(1, 1)))
	require.NoError(t, err)
	assert.True(t, c[2].(*Operand).Resolved())

	assert.Panics(t, func() { Itemize(nil, WithFunc("x", nil), preset) })
}

func TestItemizeConcurrent(t *testing.T) {
	src := Tokenize(strings.Repeat("max(1 m, pi) * 2 ^ x + ", 20) + "1")
	done := make(chan string)
	for i := 0; i < 8; i++ {
		go func() {
			items, err := Itemize(src)
			if err != nil {
				done <- err.Error()
				return
			}
			done <- Format(items)
		}()
	}
	want := <-done
	for i := 1; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}
