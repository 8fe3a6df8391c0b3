package hyperheuristic

import (
	"math"

	"github.com/vrpsolver/vrpcore/internal/rng"
)

// ActionEstimates holds, per action, the learner's current reward
// estimate for taking that action from one particular state.
type ActionEstimates struct {
	values map[SearchAction]float64
}

func newActionEstimates() *ActionEstimates {
	return &ActionEstimates{values: make(map[SearchAction]float64)}
}

func (e *ActionEstimates) Get(a SearchAction) float64 { return e.values[a] }

func (e *ActionEstimates) Set(a SearchAction, value float64) { e.values[a] = value }

// Max returns the best action and its estimate. ok is false when e holds
// no estimates at all.
func (e *ActionEstimates) Max() (SearchAction, float64, bool) {
	var best SearchAction
	var bestValue float64
	first := true
	for a, v := range e.values {
		if first || v > bestValue {
			best, bestValue = a, v
			first = false
		}
	}
	return best, bestValue, !first
}

// Min mirrors Max, returning the worst action instead.
func (e *ActionEstimates) Min() (SearchAction, float64, bool) {
	var worst SearchAction
	var worstValue float64
	first := true
	for a, v := range e.values {
		if first || v < worstValue {
			worst, worstValue = a, v
			first = false
		}
	}
	return worst, worstValue, !first
}

// Random returns a uniformly random action among those with an estimate.
func (e *ActionEstimates) Random(random rng.Random, actions []SearchAction) SearchAction {
	return actions[random.UniformInt(0, len(actions)-1)]
}

// Weighted picks an action with probability proportional to
// exp(value), shifted so the minimum estimate maps to weight 1 — the
// same softmax-over-estimates policy dynamic_selective.rs uses to favour
// actions with a higher learned reward without ever fully excluding a
// worse one.
func (e *ActionEstimates) Weighted(random rng.Random, actions []SearchAction) SearchAction {
	if len(actions) == 0 {
		var zero SearchAction
		return zero
	}
	min := 0.0
	for i, a := range actions {
		v := e.values[a]
		if i == 0 || v < min {
			min = v
		}
	}
	weights := make([]float64, len(actions))
	for i, a := range actions {
		weights[i] = expClamped(e.values[a] - min)
	}
	idx := random.Weighted(weights)
	return actions[idx]
}

func expClamped(x float64) float64 {
	const limit = 50
	if x > limit {
		x = limit
	}
	if x < -limit {
		x = -limit
	}
	return math.Exp(x)
}
