// Copyright © 2024 The ELPS authors

package lang_test

import (
	"errors"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	x := lang.Atom("x")
	assert.Same(t, x, lang.Quote(x))
	assert.True(t, lang.Quote().IsSeq())
	assert.Equal(t, 0, lang.Quote().Len())
	assert.True(t, lang.Atom("").Equal(lang.Quote()))

	seq := lang.Quote(lang.Atom("a"), lang.Atom("b"))
	assert.True(t, seq.IsSeq())
	assert.Equal(t, "v(a b)", seq.String())

	inner := lang.Quote(lang.Quote(lang.Atom("a"), lang.Atom("b")))
	assert.Equal(t, "v(v(a b))", inner.String())
}

func TestCall(t *testing.T) {
	c, err := lang.Call("f", lang.Atom("1"), lang.Quote())
	require.NoError(t, err)
	assert.True(t, c.IsCall())
	assert.Equal(t, "f(1, v())", c.String())

	for _, name := range []string{"", "1f", "a-b", "a b", "f("} {
		_, err := lang.Call(name)
		assert.Truef(t, errors.Is(err, lang.ErrMalformedTerm), "name %q", name)
	}

	_, err = lang.Call("f", lang.Atom("1"), nil)
	assert.True(t, errors.Is(err, lang.ErrMalformedTerm))

	assert.Panics(t, func() { lang.MustCall("not valid") })
}

func TestCallInsideValueIsInert(t *testing.T) {
	c := lang.MustCall("f", lang.Atom("1"))
	v := lang.Quote(c, lang.Atom("2"))
	assert.True(t, v.IsValue())
	assert.Equal(t, "v(f(1) 2)", v.String())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		term   *lang.Term
		truthy bool
	}{
		{lang.Atom("1"), true},
		{lang.Atom("true"), true},
		{lang.Atom("Left"), true},
		{lang.Atom("0"), false},
		{lang.Atom("false"), false},
		{lang.Quote(), false},
		{lang.Atom(""), false},
		{lang.Quote(lang.Quote(lang.Atom("0"))), false},
		{lang.Quote(lang.Quote()), false},
		{lang.Quote(lang.Atom("0"), lang.Atom("0")), true},
		{lang.Bool(true), true},
		{lang.Bool(false), false},
	}
	for i, test := range tests {
		assert.Equalf(t, test.truthy, test.term.Truthy(), "test %d: %v", i, test.term)
	}
}

func TestEqual(t *testing.T) {
	a := lang.Quote(lang.Atom("a"), lang.MustCall("f", lang.Atom("1")))
	b := lang.Quote(lang.Atom("a"), lang.MustCall("f", lang.Atom("1")))
	assert.True(t, a.Equal(b))

	located := a.WithSource(&lang.Location{File: "test", Line: 3, Col: 1})
	assert.True(t, a.Equal(located))
	assert.Nil(t, a.Source)

	assert.False(t, a.Equal(lang.Quote(lang.Atom("a"))))
	assert.False(t, lang.Atom("f").Equal(lang.MustCall("f")))
	assert.False(t, lang.Atom("a").Equal(nil))
}

func TestLocation(t *testing.T) {
	var loc *lang.Location
	assert.Equal(t, "<native code>", loc.String())
	assert.Equal(t, "f", (&lang.Location{File: "f"}).String())
	assert.Equal(t, "f:2", (&lang.Location{File: "f", Line: 2}).String())
	assert.Equal(t, "f:2:5", (&lang.Location{File: "f", Line: 2, Col: 5}).String())
}
