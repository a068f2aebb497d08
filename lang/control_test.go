// Copyright © 2024 The ELPS authors

package lang_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUint(t *lang.Term) (uint64, bool) {
	if !t.IsAtom() {
		return 0, false
	}
	n, err := strconv.ParseUint(t.Str, 10, 64)
	return n, err == nil
}

func lessThan10(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	n, ok := testUint(args[0])
	if !ok {
		return nil, lang.TypeErrorf("not a number: %v", args[0])
	}
	return lang.Bool(n < 10), nil
}

func increment(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	n, ok := testUint(args[0])
	if !ok {
		return nil, lang.TypeErrorf("not a number: %v", args[0])
	}
	return lang.Uint(n + 1), nil
}

func always(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return lang.Bool(true), nil
}

func TestIf(t *testing.T) {
	var exploded bool
	explode := func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		exploded = true
		return nil, env.Abort("exploded")
	}
	ev := newTestEvaluator(t, []testOp{{"explode", 0, explode}})

	res, err := ev.Eval(lang.IfExpr(lang.Atom("true"), lang.Atom("1"), lang.MustCall("explode")))
	require.NoError(t, err)
	assert.Equal(t, "1", res.String())
	assert.False(t, exploded)

	res, err = ev.Eval(lang.IfExpr(lang.Atom("0"), lang.MustCall("explode"), lang.MustCall("id", lang.Atom("2"))))
	require.NoError(t, err)
	assert.Equal(t, "2", res.String())
	assert.False(t, exploded)

	res, err = ev.Eval(lang.IfExpr(lang.MustCall("id", lang.Quote()), lang.Atom("yes"), lang.Atom("no")))
	require.NoError(t, err)
	assert.Equal(t, "no", res.String())

	_, err = ev.Eval(lang.IfExpr(lang.MustCall("explode"), lang.Atom("yes"), lang.Atom("no")))
	assert.True(t, errors.Is(err, lang.ErrAborted))
	assert.True(t, exploded)

	_, err = ev.Eval(lang.MustCall("if", lang.Atom("1"), lang.Atom("2")))
	assert.True(t, errors.Is(err, lang.ErrArityMismatch))
}

func TestWhile(t *testing.T) {
	ev := newTestEvaluator(t, []testOp{
		{"lessThan10", 1, lessThan10},
		{"increment", 1, increment},
		{"always", 1, always},
	})

	res, err := ev.Eval(lang.WhileLoop("lessThan10", "increment", lang.Atom("0")))
	require.NoError(t, err)
	assert.Equal(t, "10", res.String())

	res, err = ev.Eval(lang.WhileLoop("lessThan10", "increment", lang.Atom("12")))
	require.NoError(t, err)
	assert.Equal(t, "12", res.String())

	res, err = ev.Eval(lang.WhileLoop("lessThan10", "increment", lang.MustCall("id", lang.Atom("7"))))
	require.NoError(t, err)
	assert.Equal(t, "10", res.String())

	_, err = ev.Eval(lang.WhileLoop("always", "id", lang.Atom("0")))
	assert.True(t, errors.Is(err, lang.ErrEvaluationDepthExceeded))
	var lerr *lang.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, lang.DefaultMaxIterations, lerr.Expected)

	_, err = ev.Eval(lang.WhileLoop("lessThan10", "missing", lang.Atom("0")))
	assert.True(t, errors.Is(err, lang.ErrUnknownOperator))

	_, err = ev.Eval(lang.WhileLoop("lessThan10", "while", lang.Atom("0")))
	assert.True(t, errors.Is(err, lang.ErrArityMismatch))

	_, err = ev.Eval(lang.MustCall("while", lang.Quote(), lang.Atom("increment"), lang.Atom("0")))
	assert.True(t, errors.Is(err, lang.ErrTypeError))

	assert.Panics(t, func() { lang.WhileLoop("not valid", "increment", lang.Atom("0")) })
}

func TestWhileIterationBound(t *testing.T) {
	ev := newTestEvaluator(t, []testOp{
		{"lessThan10", 1, lessThan10},
		{"increment", 1, increment},
	}, lang.WithMaxIterations(5))

	_, err := ev.Eval(lang.WhileLoop("lessThan10", "increment", lang.Atom("0")))
	assert.True(t, errors.Is(err, lang.ErrEvaluationDepthExceeded))

	res, err := ev.Eval(lang.WhileLoop("lessThan10", "increment", lang.Atom("5")))
	require.NoError(t, err)
	assert.Equal(t, "10", res.String())
}

func TestWhileLogsIterations(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	ev := newTestEvaluator(t, []testOp{
		{"lessThan10", 1, lessThan10},
		{"increment", 1, increment},
	}, lang.WithLogger(logger))

	_, err := ev.Eval(lang.WhileLoop("lessThan10", "increment", lang.Atom("7")))
	require.NoError(t, err)
	var entries []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if strings.HasPrefix(e.Message, "while:") {
			entries = append(entries, e)
		}
	}
	require.Len(t, entries, 3)
	assert.Equal(t, "while: 7", entries[0].Message)
	assert.Equal(t, 3, entries[2].Data["iteration"])
	assert.Equal(t, "while", entries[2].Data["op"])
	assert.Equal(t, 1, entries[2].Data["frames"])
}

func TestAbort(t *testing.T) {
	ev := newTestEvaluator(t, nil)
	_, err := ev.Eval(lang.MustCall("abort", lang.Atom("stop")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lang.ErrAborted))
	assert.Equal(t, "aborted: stop", err.Error())

	_, err = ev.Eval(lang.MustCall("abort", lang.Quote(lang.Atom("a"), lang.Atom("b"))))
	assert.Equal(t, "aborted: v(a b)", err.Error())
}
