// Copyright © 2024 The ELPS authors

// Package profiler provides lang.Profiler implementations which annotate
// operator invocations with tracing spans and pprof labels.
package profiler

import (
	"github.com/luthersystems/epilepsy/lang"
)

// profiler holds the options shared by every annotator.
type profiler struct {
	skipFilter SkipFilter
	funLabeler FunLabeler
}

// Option configures an annotator.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// prettyFunName returns a label and the original name for op.  If the
// labeler produces no label the label is the original name.
func (p *profiler) prettyFunName(op *lang.Operator) (string, string) {
	origLabel := op.Name
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(op)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

func (p *profiler) skipTrace(op *lang.Operator) bool {
	return op == nil || p.skipFilter != nil && p.skipFilter(op)
}

func getSource(call *lang.Term) (string, int, int) {
	if call == nil || call.Source == nil {
		return "no-source", 0, 0
	}
	return call.Source.File, call.Source.Line, call.Source.Col
}
