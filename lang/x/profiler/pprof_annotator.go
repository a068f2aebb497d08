// Copyright © 2024 The ELPS authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/epilepsy/lang"
)

// PprofAnnotator labels the evaluating goroutine with the name of the
// operator being invoked so CPU profiles can be broken down by operator.
// The annotator does not start profiling itself.
type PprofAnnotator struct {
	profiler
}

var _ lang.Profiler = &PprofAnnotator{}

// NewPprofAnnotator returns a pprof label annotator.
func NewPprofAnnotator(opts ...Option) *PprofAnnotator {
	p := &PprofAnnotator{}
	p.profiler.applyConfigs(opts...)
	return p
}

// Start implements lang.Profiler.
func (p *PprofAnnotator) Start(ctx context.Context, op *lang.Operator, call *lang.Term) (context.Context, func()) {
	if p.skipTrace(op) {
		return ctx, func() {}
	}
	prettyLabel, _ := p.prettyFunName(op)
	labeled := pprof.WithLabels(ctx, pprof.Labels("operator", prettyLabel))
	pprof.SetGoroutineLabels(labeled)
	return labeled, func() {
		pprof.SetGoroutineLabels(ctx)
	}
}
