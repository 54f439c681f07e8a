package perf

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// recorder is the span exporter behind the --perf report. Spans are turned
// into snapshots as they finish, so readers never hold SDK span values.
type recorder struct {
	mu    sync.Mutex
	spans []SpanSnapshot
}

func (rec *recorder) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, span := range spans {
		rec.spans = append(rec.spans, snapshotSpan(span))
	}
	return nil
}

func (rec *recorder) Shutdown(ctx context.Context) error {
	return ctx.Err()
}

func (rec *recorder) reset() {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.spans = nil
}

// recorded copies the snapshots in the order the spans ended.
func (rec *recorder) recorded() []SpanSnapshot {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	out := make([]SpanSnapshot, len(rec.spans))
	copy(out, rec.spans)
	return out
}
