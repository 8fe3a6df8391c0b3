// Package telemetry reports an evolution run's progress through the
// same three channels the surrounding ecosystem already uses: klog for
// human-readable per-generation logging, Prometheus for the metrics a
// long-running solver process exposes to a scrape target, and
// OpenTelemetry spans for per-generation tracing.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments one evolution run reports
// into. Names follow Prometheus's underscore-joined
// namespace_subsystem_name convention (vrpsolver_evolution_*).
type Metrics struct {
	Generations      prometheus.Counter
	Improvements     prometheus.Counter
	BestFitness      prometheus.Gauge
	PopulationSize   prometheus.Gauge
	GenerationLength prometheus.Histogram
}

// NewMetrics registers a fresh set of instruments against registerer.
// Pass prometheus.NewRegistry() in tests to avoid colliding with
// whatever else might register against the global DefaultRegisterer in
// the same process.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		Generations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vrpsolver",
			Subsystem: "evolution",
			Name:      "generations_total",
			Help:      "Number of generations the evolution driver has completed.",
		}),
		Improvements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vrpsolver",
			Subsystem: "evolution",
			Name:      "improvements_total",
			Help:      "Number of generations that produced a new best known solution.",
		}),
		BestFitness: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Subsystem: "evolution",
			Name:      "best_fitness",
			Help:      "Leading (most significant) dimension of the best known solution's fitness.",
		}),
		PopulationSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Subsystem: "evolution",
			Name:      "population_size",
			Help:      "Number of individuals currently retained by the population.",
		}),
		GenerationLength: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vrpsolver",
			Subsystem: "evolution",
			Name:      "generation_duration_seconds",
			Help:      "Wall-clock duration of one evolution generation.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
