// Copyright © 2024 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// traceRecorder installs a global tracer provider which keeps ended spans in
// memory.
type traceRecorder struct {
	recorder *tracetest.SpanRecorder
	provider *sdktrace.TracerProvider
}

func newTraceRecorder() *traceRecorder {
	tr := &traceRecorder{recorder: tracetest.NewSpanRecorder()}
	tr.provider = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tr.recorder))
	otel.SetTracerProvider(tr.provider)
	return tr
}

func (tr *traceRecorder) shutdown() {
	_ = tr.provider.Shutdown(context.Background())
}

type spanStat struct {
	name  string
	count int
	total time.Duration
}

// stats aggregates ended spans by name, ordered by total time.  Time spent in
// nested invocations is included in the total of the enclosing operator.
func (tr *traceRecorder) stats() []*spanStat {
	byName := make(map[string]*spanStat)
	for _, span := range tr.recorder.Ended() {
		s, ok := byName[span.Name()]
		if !ok {
			s = &spanStat{name: span.Name()}
			byName[span.Name()] = s
		}
		s.count++
		s.total += span.EndTime().Sub(span.StartTime())
	}
	stats := make([]*spanStat, 0, len(byName))
	for _, s := range byName {
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].total != stats[j].total {
			return stats[i].total > stats[j].total
		}
		return stats[i].name < stats[j].name
	})
	return stats
}

func (tr *traceRecorder) summarize(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATOR\tCALLS\tTOTAL")
	for _, s := range tr.stats() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.name, s.count, s.total)
	}
	_ = tw.Flush()
}
