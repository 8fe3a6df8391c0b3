package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/vrpsolver/vrpcore/pkg/evolution"
)

// Telemetry reports one evolution run's progress to klog, Prometheus,
// and OpenTelemetry. Build one with NewTelemetry and wire its
// OnGeneration method into evolution.Config.OnGeneration.
type Telemetry struct {
	ctx     context.Context
	logger  klog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewTelemetry builds a Telemetry that logs through the klog.Logger
// carried by ctx (klog.FromContext's zero value is the global klog
// logger, so a plain context.Background() works outside a request
// scope), reports metrics into registerer, and traces generations
// through the global OpenTelemetry TracerProvider.
func NewTelemetry(ctx context.Context, registerer prometheus.Registerer) *Telemetry {
	return &Telemetry{
		ctx:     ctx,
		logger:  klog.FromContext(ctx).WithValues("component", "evolution"),
		metrics: NewMetrics(registerer),
		tracer:  defaultTracer(),
	}
}

// OnGeneration satisfies evolution.Config.OnGeneration's signature
// directly — pass t.OnGeneration as the callback.
func (t *Telemetry) OnGeneration(gen evolution.Generation) {
	t.metrics.Generations.Inc()
	t.metrics.GenerationLength.Observe(gen.Duration.Seconds())
	t.metrics.PopulationSize.Set(float64(gen.PopulationSize))
	if gen.Improved {
		t.metrics.Improvements.Inc()
	}

	var leadingFitness float64
	if len(gen.BestFitness) > 0 {
		leadingFitness = gen.BestFitness[0]
		t.metrics.BestFitness.Set(leadingFitness)
	}

	t.logger.V(2).Info("generation complete",
		"generation", gen.Number,
		"improved", gen.Improved,
		"durationMs", gen.Duration.Milliseconds(),
		"bestFitness", leadingFitness,
		"populationSize", gen.PopulationSize,
	)

	recordGenerationSpan(t.ctx, t.tracer, gen.Number, gen.Duration, gen.Improved,
		attribute.Float64("generation.best_fitness", leadingFitness),
		attribute.Int("generation.population_size", gen.PopulationSize),
	)
}
