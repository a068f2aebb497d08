// Copyright © 2024 The ELPS authors

// Package langtest runs table driven tests of term evaluation.
package langtest

import (
	"errors"
	"strings"
	"testing"

	"github.com/luthersystems/epilepsy/lang"
	"github.com/luthersystems/epilepsy/lang/langlib"
	"github.com/luthersystems/epilepsy/parser"
	"github.com/sirupsen/logrus"
)

// TestSequence is a sequence of expressions which are evaluated in order by
// one evaluator.
type TestSequence []struct {
	Expr   string // an expression in the text syntax
	Result string // the printed result, when the evaluation succeeds
	Error  string // the error condition, when the evaluation fails
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// NewEvaluator returns an evaluator for the standard library which logs to
// t.  Loaders are called after the standard library is loaded and may
// register further operators.
func NewEvaluator(t testing.TB, loaders []func(*lang.Registry) error, config ...lang.Config) (*lang.Evaluator, error) {
	reg, err := langlib.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, load := range loaders {
		err := load(reg)
		if err != nil {
			return nil, err
		}
	}
	config = append([]lang.Config{lang.WithLogger(NewLogrus(t, logrus.WarnLevel))}, config...)
	return lang.NewEvaluator(reg, config...)
}

// RunTestSuite runs each TestSequence in tests with the standard library.
func RunTestSuite(t *testing.T, tests TestSuite) {
	RunTestSuiteLoaders(t, tests, nil)
}

// RunTestSuiteLoaders runs each TestSequence in tests with the standard
// library and the operators registered by loaders.
func RunTestSuiteLoaders(t *testing.T, tests TestSuite, loaders []func(*lang.Registry) error) {
	reader := parser.NewReader()
	for i, test := range tests {
		ev, err := NewEvaluator(t, loaders)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			v, err := reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression (got %d)", i, test.Name, j, len(v))
				continue
			}
			result, err := ev.Eval(v[0])
			if err != nil {
				checkError(t, i, test.Name, j, expr.Error, err)
				continue
			}
			if expr.Error != "" {
				t.Errorf("test %d %q: expr %d: expected error %s (got result %v)", i, test.Name, j, expr.Error, result)
				continue
			}
			if result.String() != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

func checkError(t *testing.T, i int, name string, j int, condition string, err error) {
	t.Helper()
	var lerr *lang.ErrorVal
	if !errors.As(err, &lerr) {
		t.Errorf("test %d %q: expr %d: unexpected error type %T: %v", i, name, j, err, err)
		return
	}
	if condition == "" {
		var buf strings.Builder
		_, _ = lerr.WriteTrace(&buf)
		t.Errorf("test %d %q: expr %d: unexpected error: %s", i, name, j, buf.String())
		return
	}
	if lerr.Condition != condition {
		t.Errorf("test %d %q: expr %d: expected error %s (got %v)", i, name, j, condition, err)
	}
}
