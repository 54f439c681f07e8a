// Package perf records in-memory OpenTelemetry spans for the --perf flag.
package perf

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/stfwi/redstonepen-meta"

var (
	setupOnce sync.Once
	spans     *recorder
	provider  *sdktrace.TracerProvider
	tracer    trace.Tracer
)

func ensureInitialized() {
	setupOnce.Do(func() {
		spans = &recorder{}
		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(spans),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		tracer = provider.Tracer(tracerName)
	})
}

// Region is a started span. End must be called exactly once.
type Region struct {
	span trace.Span
}

// StartRegion opens a span named name as a child of any span in ctx.
func StartRegion(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Region) {
	ensureInitialized()
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Region{span: span}
}

func (r *Region) End() {
	r.span.End()
}

func (r *Region) EndWithAttributes(attrs map[string]string) {
	r.span.SetAttributes(AttributesFromStrings(attrs)...)
	r.span.End()
}

// GetSpans returns the spans finished since the last Reset, in end order.
func GetSpans() ([]SpanSnapshot, error) {
	ensureInitialized()
	if err := provider.ForceFlush(context.Background()); err != nil {
		return nil, err
	}
	return spans.recorded(), nil
}

// Reset drops every recorded span.
func Reset() {
	ensureInitialized()
	spans.reset()
}
