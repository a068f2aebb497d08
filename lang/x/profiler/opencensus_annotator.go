// Copyright © 2024 The ELPS authors

package profiler

import (
	"context"

	"github.com/luthersystems/epilepsy/lang"
	"go.opencensus.io/trace"
)

// OpenCensusAnnotator starts an OpenCensus span for each operator
// invocation and annotates it with the source of the call.
type OpenCensusAnnotator struct {
	profiler
}

var _ lang.Profiler = &OpenCensusAnnotator{}

// NewOpenCensusAnnotator returns an annotator using the registered
// OpenCensus exporters.
func NewOpenCensusAnnotator(opts ...Option) *OpenCensusAnnotator {
	p := &OpenCensusAnnotator{}
	p.profiler.applyConfigs(opts...)
	return p
}

// Start implements lang.Profiler.
func (p *OpenCensusAnnotator) Start(ctx context.Context, op *lang.Operator, call *lang.Term) (context.Context, func()) {
	if p.skipTrace(op) {
		return ctx, func() {}
	}
	prettyLabel, _ := p.prettyFunName(op)
	ctx, span := trace.StartSpan(ctx, prettyLabel)
	return ctx, func() {
		file, line, _ := getSource(call)
		span.Annotate([]trace.Attribute{
			trace.StringAttribute("file", file),
			trace.Int64Attribute("line", int64(line)),
		}, "source")
		span.End()
	}
}
