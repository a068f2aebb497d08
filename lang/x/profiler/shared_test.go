// Copyright © 2024 The ELPS authors

package profiler_test

import (
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/luthersystems/epilepsy/langtest"
	"github.com/luthersystems/epilepsy/parser"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// testOp is a documented operator registered by the tests.
type testOp struct {
	name  string
	arity int
	doc   string
	fun   lang.Builtin
}

func (op *testOp) Name() string { return op.name }
func (op *testOp) Arity() int   { return op.arity }
func (op *testOp) Docstring() string {
	return op.doc
}

func (op *testOp) Eval(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
	return op.fun(env, args)
}

var testOps = []lang.OperatorDef{
	&testOp{"double", 1, "Doubles x.  @trace{ Double It }", func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		return lang.Call("add", args[0], args[0])
	}},
	&testOp{"outer", 1, "Increments x inside its own span.  @trace", func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		return env.Apply("inc", args[0])
	}},
}

func newEvaluator(t *testing.T, p lang.Profiler) *lang.Evaluator {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.AddOperators(lang.OpFunction, testOps...))
	ev, err := lang.NewEvaluator(reg,
		lang.WithProfiler(p),
		lang.WithLogger(langtest.NewLogrus(t, logrus.WarnLevel)))
	require.NoError(t, err)
	return ev
}

func parseOne(t *testing.T, src string) *lang.Term {
	terms, err := parser.Parse("test.ep", []byte(src))
	require.NoError(t, err)
	require.Len(t, terms, 1)
	return terms[0]
}

func evalString(t *testing.T, ev *lang.Evaluator, src string) *lang.Term {
	v, err := ev.Eval(parseOne(t, src))
	require.NoError(t, err)
	return v
}
