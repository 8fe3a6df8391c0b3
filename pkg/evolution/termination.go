// Package evolution drives the generation loop that ties the
// insertion heuristic, ruin/recreate and local search operators, the
// operator selector, and the population together into a single run:
// build an initial population, then repeatedly select parents, search
// from them, and fold the results back in until a termination
// criterion fires.
package evolution

import (
	"math"
	"time"
)

// Termination decides when a run should stop, and how far through its
// own stopping condition the run currently is (used to anneal operator
// selection and population phase transitions).
type Termination interface {
	// IsTerminated reports whether the run should stop now.
	IsTerminated(d *Driver) bool
	// Estimate returns progress toward termination, 0 at the start,
	// clamped to 1 once reached.
	Estimate(d *Driver) float64
}

// MaxTime terminates once a wall-clock budget elapses.
type MaxTime struct {
	Limit time.Duration

	start time.Time
}

func NewMaxTime(limit time.Duration) *MaxTime {
	return &MaxTime{Limit: limit}
}

func (m *MaxTime) IsTerminated(d *Driver) bool {
	return m.Estimate(d) >= 1
}

func (m *MaxTime) Estimate(d *Driver) float64 {
	if m.start.IsZero() {
		m.start = d.startedAt
		if m.start.IsZero() {
			m.start = time.Now()
		}
	}
	if m.Limit <= 0 {
		return 0
	}
	ratio := time.Since(m.start).Seconds() / m.Limit.Seconds()
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// MaxGenerations terminates once a fixed generation count is reached —
// useful for tests and deterministic benchmarks where wall-clock
// budgets are not reproducible.
type MaxGenerations struct {
	Limit int
}

func NewMaxGenerations(limit int) *MaxGenerations {
	return &MaxGenerations{Limit: limit}
}

func (m *MaxGenerations) IsTerminated(d *Driver) bool {
	return m.Estimate(d) >= 1
}

func (m *MaxGenerations) Estimate(d *Driver) float64 {
	if m.Limit <= 0 {
		return 0
	}
	ratio := float64(d.generation) / float64(m.Limit)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// MinVariation terminates once the best solution's leading fitness
// dimension has stopped meaningfully changing over a fixed number of
// the most recent generations, measured by coefficient of variation
// (population standard deviation divided by mean). Sample-interval only
// — the original's wall-clock "Period" variant is not ported, since
// every caller of this package drives generations off either MaxTime or
// MaxGenerations already, and the two interval types model the same
// decision (stop once recent progress is flat).
type MinVariation struct {
	Sample    int
	Threshold float64

	history []float64
}

func NewMinVariation(sample int, threshold float64) *MinVariation {
	if sample <= 0 {
		panic("evolution: MinVariation sample size must be positive")
	}
	return &MinVariation{Sample: sample, Threshold: threshold}
}

func (m *MinVariation) record(value float64) {
	m.history = append(m.history, value)
	if len(m.history) > m.Sample {
		m.history = m.history[len(m.history)-m.Sample:]
	}
}

func (m *MinVariation) IsTerminated(d *Driver) bool {
	best, ok := d.BestKnown()
	if !ok {
		return false
	}
	fitness := d.cfg.Hierarchy.Evaluate(best.Solution)
	value := 0.0
	if len(fitness) > 0 {
		value = fitness[0]
	}
	m.record(value)
	if len(m.history) < m.Sample {
		return false
	}
	return coefficientOfVariation(m.history) < m.Threshold
}

func (m *MinVariation) Estimate(d *Driver) float64 {
	if m.IsTerminated(d) {
		return 1
	}
	return float64(len(m.history)) / float64(m.Sample)
}

func coefficientOfVariation(values []float64) float64 {
	n := float64(len(values))
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= n
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= n
	return math.Sqrt(variance) / math.Abs(mean)
}
