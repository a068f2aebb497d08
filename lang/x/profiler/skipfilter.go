// Copyright © 2024 The ELPS authors

package profiler

import (
	"regexp"

	"github.com/luthersystems/epilepsy/lang"
)

// SkipFilter returns true for operators which should not be traced.
type SkipFilter func(op *lang.Operator) bool

// WithDocFilter filters to only include spans for operators with docs that
// denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithSkipSpecial skips special operators such as if, whose spans would
// only enclose the evaluation of a condition.
func WithSkipSpecial() Option {
	return WithSkipFilter(func(op *lang.Operator) bool {
		return op.Kind == lang.OpSpecial
	})
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter.  All operators with documentation that contains this string
// will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(op *lang.Operator) bool {
	if op.Doc == "" {
		return true
	}
	return !docTraceRegExp.MatchString(op.Doc)
}
