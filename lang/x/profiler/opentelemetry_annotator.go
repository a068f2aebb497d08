// Copyright © 2024 The ELPS authors

package profiler

import (
	"context"

	"github.com/luthersystems/epilepsy/lang"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName names the tracer used when a context carries none.
const DefaultTracerName = "epilepsy"

type tracerKey struct{}

// WithTracerName returns a context whose spans are started by the named
// tracer of the global provider.
func WithTracerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, tracerKey{}, name)
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(tracerKey{}).(string)
	if !ok {
		tracerName = DefaultTracerName
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

// OpenTelemetryAnnotator starts an OpenTelemetry span for each operator
// invocation.  Spans of nested invocations are children of the enclosing
// span.
type OpenTelemetryAnnotator struct {
	profiler
}

var _ lang.Profiler = &OpenTelemetryAnnotator{}

// NewOpenTelemetryAnnotator returns an annotator using the global tracer
// provider.
func NewOpenTelemetryAnnotator(opts ...Option) *OpenTelemetryAnnotator {
	p := &OpenTelemetryAnnotator{}
	p.profiler.applyConfigs(opts...)
	return p
}

// Start implements lang.Profiler.
func (p *OpenTelemetryAnnotator) Start(ctx context.Context, op *lang.Operator, call *lang.Term) (context.Context, func()) {
	if p.skipTrace(op) {
		return ctx, func() {}
	}
	prettyLabel, funName := p.prettyFunName(op)
	ctx, span := contextTracer(ctx).Start(ctx, prettyLabel)
	p.addCodeAttributes(span, op, funName, call)
	return ctx, func() { span.End() }
}

func (p *OpenTelemetryAnnotator) addCodeAttributes(span trace.Span, op *lang.Operator, funName string, call *lang.Term) {
	attrs := []attribute.KeyValue{
		semconv.CodeNamespace(op.Kind.String()),
		semconv.CodeFunction(funName),
	}
	if call != nil && call.Source != nil {
		file, line, col := getSource(call)
		attrs = append(attrs,
			semconv.CodeColumn(col),
			semconv.CodeFilepath(file),
			semconv.CodeLineNumber(line),
		)
	}
	span.SetAttributes(attrs...)
}
