// Copyright © 2024 The ELPS authors

package cmd

import (
	"testing"

	"github.com/luthersystems/epilepsy/diagnostic"
	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfig(t *testing.T, key string, value interface{}) {
	t.Helper()
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, nil) })
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, name := range []string{"run", "repl", "doc", "lint", "fmt", "lsp"} {
		assert.Contains(t, names, name)
	}
	for _, name := range []string{"config", "color", "log-level", "max-depth", "max-nesting", "max-iterations", "max-steps"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag: %s", name)
	}
}

func newConfiguredEvaluator(t *testing.T) *lang.Evaluator {
	t.Helper()
	config, err := evalConfig()
	require.NoError(t, err)
	reg, err := langlib.NewRegistry()
	require.NoError(t, err)
	ev, err := lang.NewEvaluator(reg, config...)
	require.NoError(t, err)
	return ev
}

func TestEvalConfig_Defaults(t *testing.T) {
	ev := newConfiguredEvaluator(t)
	assert.Equal(t, lang.DefaultMaxDepth, ev.MaxDepth)
	assert.Equal(t, lang.DefaultMaxNesting, ev.MaxNesting)
	assert.Equal(t, lang.DefaultMaxIterations, ev.MaxIterations)
	assert.Equal(t, 0, ev.MaxSteps)
	assert.Equal(t, logrus.WarnLevel, ev.Logger.GetLevel())
}

func TestEvalConfig_Overrides(t *testing.T) {
	setConfig(t, keyMaxDepth, 16)
	setConfig(t, keyMaxNesting, "32")
	setConfig(t, keyMaxIterations, 64)
	setConfig(t, keyMaxSteps, 128)
	setConfig(t, keyLogLevel, "debug")
	ev := newConfiguredEvaluator(t)
	assert.Equal(t, 16, ev.MaxDepth)
	assert.Equal(t, 32, ev.MaxNesting)
	assert.Equal(t, 64, ev.MaxIterations)
	assert.Equal(t, 128, ev.MaxSteps)
	assert.Equal(t, logrus.DebugLevel, ev.Logger.GetLevel())
}

func TestEvalConfig_Invalid(t *testing.T) {
	setConfig(t, keyMaxDepth, "lots")
	_, err := evalConfig()
	assert.Error(t, err)
}

func TestEvalConfig_InvalidLogLevel(t *testing.T) {
	setConfig(t, keyLogLevel, "loud")
	_, err := evalConfig()
	assert.Error(t, err)
}

func TestColorMode(t *testing.T) {
	assert.Equal(t, diagnostic.ColorAuto, colorMode())
	setConfig(t, keyColor, "never")
	assert.Equal(t, diagnostic.ColorNever, colorMode())
	setConfig(t, keyColor, "bogus")
	assert.Equal(t, diagnostic.ColorAuto, colorMode())
}
