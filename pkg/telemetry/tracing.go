package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this package's spans in whatever trace backend
// the process is configured to export to.
const tracerName = "github.com/vrpsolver/vrpcore/pkg/telemetry"

// recordGenerationSpan emits a span covering exactly [start, start+duration)
// for one already-completed generation — generations are recorded after
// the fact rather than wrapped live, since the evolution driver's
// OnGeneration callback only fires once a generation has already run to
// completion.
func recordGenerationSpan(ctx context.Context, tracer trace.Tracer, number int, duration time.Duration, improved bool, attrs ...attribute.KeyValue) {
	start := time.Now().Add(-duration)
	_, span := tracer.Start(ctx, "evolution.generation",
		trace.WithTimestamp(start),
		trace.WithAttributes(append([]attribute.KeyValue{
			attribute.Int("generation.number", number),
			attribute.Bool("generation.improved", improved),
		}, attrs...)...),
	)
	span.End(trace.WithTimestamp(start.Add(duration)))
}

// defaultTracer is the OpenTelemetry tracer every Telemetry built by
// NewTelemetry uses (there is no option to pass another), resolved through
// the global TracerProvider so tests and callers that configure
// OpenTelemetry after package init still get a real exporter-backed
// tracer rather than a no-op captured at import time.
func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
