// Copyright © 2024 The ELPS authors

package profiler_test

import (
	"sync"
	"testing"

	"github.com/luthersystems/epilepsy/lang/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

func TestNewOpenCensusAnnotator(t *testing.T) {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := &recordingExporter{}
	trace.RegisterExporter(exporter)
	t.Cleanup(func() { trace.UnregisterExporter(exporter) })

	ev := newEvaluator(t, profiler.NewOpenCensusAnnotator())
	v := evalString(t, ev, "outer(inc(1))")
	assert.Equal(t, "3", v.String())

	spans := exporter.Spans()
	require.Len(t, spans, 3)
	assert.Equal(t, "inc", spans[0].Name)
	assert.Equal(t, "inc", spans[1].Name)
	assert.Equal(t, "outer", spans[2].Name)
	assert.Equal(t, spans[2].SpanID, spans[1].ParentSpanID)
	require.Len(t, spans[0].Annotations, 1)
	assert.Equal(t, "source", spans[0].Annotations[0].Message)
	assert.Equal(t, "test.ep", spans[0].Annotations[0].Attributes["file"])
	assert.Equal(t, int64(1), spans[0].Annotations[0].Attributes["line"])
}

// recordingExporter keeps exported spans in memory.
type recordingExporter struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (e *recordingExporter) ExportSpan(sd *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, sd)
}

func (e *recordingExporter) Spans() []*trace.SpanData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*trace.SpanData(nil), e.spans...)
}
