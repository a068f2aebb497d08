// Copyright © 2024 The ELPS authors

package lang

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Default evaluation bounds.
const (
	DefaultMaxDepth      = 1024
	DefaultMaxNesting    = 1024
	DefaultMaxIterations = 4096
)

// Config is a function that configures an Evaluator.
type Config func(ev *Evaluator) error

// WithMaxDepth returns a Config that bounds the number of reductions a single
// Eval may perform when operators return further calls.
func WithMaxDepth(n int) Config {
	return func(ev *Evaluator) error {
		if n < 1 {
			return fmt.Errorf("invalid maximum depth: %d", n)
		}
		ev.MaxDepth = n
		return nil
	}
}

// WithMaxNesting returns a Config that bounds how many Eval calls may be
// active at once during one evaluation.  Argument evaluation and combinators
// which evaluate sub-terms each nest one level.
func WithMaxNesting(n int) Config {
	return func(ev *Evaluator) error {
		if n < 1 {
			return fmt.Errorf("invalid maximum nesting: %d", n)
		}
		ev.MaxNesting = n
		return nil
	}
}

// WithMaxIterations returns a Config that bounds the number of steps a while
// loop may take.
func WithMaxIterations(n int) Config {
	return func(ev *Evaluator) error {
		if n < 1 {
			return fmt.Errorf("invalid maximum iterations: %d", n)
		}
		ev.MaxIterations = n
		return nil
	}
}

// WithMaxSteps returns a Config that bounds the total number of operator
// invocations in one top-level evaluation.  A value of zero means no bound.
func WithMaxSteps(n int) Config {
	return func(ev *Evaluator) error {
		if n < 0 {
			return fmt.Errorf("invalid maximum steps: %d", n)
		}
		ev.MaxSteps = n
		return nil
	}
}

// WithLogger returns a Config that makes the evaluator log to logger.
func WithLogger(logger *logrus.Logger) Config {
	return func(ev *Evaluator) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		ev.Logger = logger
		return nil
	}
}

// WithProfiler returns a Config that reports every operator invocation to p.
func WithProfiler(p Profiler) Config {
	return func(ev *Evaluator) error {
		ev.Profiler = p
		return nil
	}
}

func defaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}
