// Copyright © 2024 The ELPS authors

package libhelp_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/luthersystems/epilepsy/lang/langlib/libhelp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMissing(t *testing.T) {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	assert.Empty(t, libhelp.CheckMissing(reg))

	err = reg.Register("bare", 2, func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		return args[0], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bare"}, libhelp.CheckMissing(reg))

	sig, err := libhelp.Signature(reg, "bare")
	require.NoError(t, err)
	assert.Equal(t, "bare(arg0, arg1)", sig)
}

func TestSignature(t *testing.T) {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	tests := []struct {
		name string
		sig  string
	}{
		{"get", "get(record, index)"},
		{"nothing", "nothing()"},
		{"if", "if(cond, then, else)"},
		{"add", "add(x, y) | add(x, y, z)"},
	}
	for _, test := range tests {
		sig, err := libhelp.Signature(reg, test.name)
		if assert.NoError(t, err, test.name) {
			assert.Equal(t, test.sig, sig, test.name)
		}
	}
	_, err = libhelp.Signature(reg, "missing")
	assert.ErrorIs(t, err, lang.ErrUnknownOperator)
}

func TestDescribe(t *testing.T) {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)

	doc, err := libhelp.Describe(reg, "inc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "function inc(x)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Returns x plus one."), lines[1])

	doc, err = libhelp.Describe(reg, "if")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "special if(cond, then, else)\n"), doc)

	doc, err = libhelp.Describe(reg, "match")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n")[1:] {
		assert.True(t, strings.HasPrefix(line, "  ") || line == "", line)
		assert.LessOrEqual(t, len(line), libhelp.WrapWidth+2, line)
		assert.NotContains(t, line, "\t")
	}

	doc, err = libhelp.Describe(reg, "add")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "overload add(x, y) | add(x, y, z)\n"), doc)
	assert.Contains(t, doc, "add2")
	assert.Contains(t, doc, "add3")
}

func TestRenderAll(t *testing.T) {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	var buf strings.Builder
	require.NoError(t, libhelp.RenderAll(&buf, reg))
	for _, name := range reg.Names() {
		assert.Contains(t, buf.String(), name+"(")
	}
}
