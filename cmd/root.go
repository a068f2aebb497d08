// Copyright © 2018 The ELPS authors

// Package cmd implements the epilepsy command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.  Each may be given as a flag, in the config file or as
// an EPILEPSY_ environment variable, e.g. EPILEPSY_MAX_DEPTH.
const (
	keyMaxDepth      = "max-depth"
	keyMaxNesting    = "max-nesting"
	keyMaxIterations = "max-iterations"
	keyMaxSteps      = "max-steps"
	keyLogLevel      = "log-level"
	keyColor         = "color"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "epilepsy",
	Short: "Evaluate terms of an operator-registry calculus",
	Long: `epilepsy evaluates terms built from registered operators.

A program is a sequence of terms.  name(arg, ...) is a call, v(a b ...) is a
quoted value whose items are never evaluated, and any other token is an
atom.  A semicolon starts a comment.

Getting started:
  epilepsy run file.ep               Evaluate every term of a file
  epilepsy run -p -e 'add(1, 2)'     Evaluate an expression and print it
  epilepsy repl                      Start an interactive session
  epilepsy doc match                 Show documentation for an operator
  epilepsy lint file.ep              Run static checks
  epilepsy lsp                       Start the language server

Evaluation bounds and output settings are read from flags, from
$HOME/.epilepsy.yaml and from EPILEPSY_* environment variables.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// exitError makes Execute exit with a status code.  Diagnostics have
// already been written when it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.epilepsy.yaml)")
	flags.String(keyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String(keyLogLevel, "warn", "Evaluator log level (trace, debug, info, warn, error).")
	flags.Int(keyMaxDepth, 0, "Maximum reductions per evaluation (default 1024).")
	flags.Int(keyMaxNesting, 0, "Maximum nested evaluations (default 1024).")
	flags.Int(keyMaxIterations, 0, "Maximum while loop iterations (default 4096).")
	flags.Int(keyMaxSteps, 0, "Maximum operator invocations per evaluation (default unbounded).")
	for _, key := range []string{keyColor, keyLogLevel, keyMaxDepth, keyMaxNesting, keyMaxIterations, keyMaxSteps} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".epilepsy")
	}

	viper.SetEnvPrefix("EPILEPSY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

// newLogger returns the logger given to evaluators.
func newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	return logger, nil
}

// evalConfig returns the evaluator configuration.  Bounds left at zero keep
// the evaluator's defaults.
func evalConfig() ([]lang.Config, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	config := []lang.Config{lang.WithLogger(logger)}
	bounds := []struct {
		key string
		fn  func(int) lang.Config
	}{
		{keyMaxDepth, lang.WithMaxDepth},
		{keyMaxNesting, lang.WithMaxNesting},
		{keyMaxIterations, lang.WithMaxIterations},
		{keyMaxSteps, lang.WithMaxSteps},
	}
	for _, b := range bounds {
		n, err := cast.ToIntE(viper.Get(b.key))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.key, err)
		}
		if n != 0 {
			config = append(config, b.fn(n))
		}
	}
	return config, nil
}
