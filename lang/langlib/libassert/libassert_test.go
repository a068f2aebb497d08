// Copyright © 2024 The ELPS authors

package libassert_test

import (
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/luthersystems/epilepsy/langtest"
	"github.com/luthersystems/epilepsy/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssert(t *testing.T) {
	tests := langtest.TestSuite{
		{"assert", langtest.TestSequence{
			{"assert(1)", "v()", ""},
			{"assert(eq(2, 2))", "v()", ""},
			{"assert(0)", "", lang.CondAborted},
			{"assertWithMsg(v(a b), unused)", "v()", ""},
			{"assertWithMsg(v(), oops)", "", lang.CondAborted},
		}},
		{"assertEq", langtest.TestSequence{
			{"assertEq(add(1, 2), 3)", "v()", ""},
			{"assertEq(v(a v(b)), v(a v(b)))", "v()", ""},
			{"assertEq(1, 2)", "", lang.CondAborted},
			{"assertEqWithMsg(1, 1, unused)", "v()", ""},
			{"assertEqWithMsg(1, 2, oops)", "", lang.CondAborted},
		}},
	}
	langtest.RunTestSuite(t, tests)
}

func TestAssertMessage(t *testing.T) {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	ev, err := lang.NewEvaluator(reg)
	require.NoError(t, err)

	tests := []struct {
		expr string
		msg  string
	}{
		{"assert(0)", "assertion failed: 0"},
		{"assertEq(v(a b), b)", "assertion failed: v(a b) != b"},
		{"assertWithMsg(0, too_small)", "too_small"},
		{"assertEqWithMsg(1, 2, v(not equal))", "v(not equal)"},
	}
	for _, test := range tests {
		terms, err := parser.Parse("test", []byte(test.expr))
		require.NoError(t, err)
		_, err = ev.Eval(terms[0])
		var lerr *lang.ErrorVal
		if assert.ErrorAs(t, err, &lerr, test.expr) {
			assert.Equal(t, lang.CondAborted, lerr.Condition, test.expr)
			assert.Equal(t, test.msg, lerr.Msg, test.expr)
		}
	}
}
