// Copyright © 2024 The ELPS authors

package profiler_test

import (
	"runtime/pprof"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/luthersystems/epilepsy/lang/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	var labels []string
	err = reg.Register("label", 1, func(env *lang.Env, args []*lang.Term) (*lang.Term, error) {
		label, _ := pprof.Label(env.Context(), "operator")
		labels = append(labels, label)
		return args[0], nil
	})
	require.NoError(t, err)
	ev, err := lang.NewEvaluator(reg, lang.WithProfiler(profiler.NewPprofAnnotator()))
	require.NoError(t, err)

	v, err := ev.Eval(lang.MustCall("label", lang.MustCall("inc", lang.Atom("1"))))
	require.NoError(t, err)
	assert.Equal(t, "2", v.String())
	assert.Equal(t, []string{"label"}, labels)
}
