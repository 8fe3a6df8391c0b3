package insertion

import (
	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/objective"
)

// ResultSelector chooses the dominant Result of two candidates. A
// Failure never wins over a Success; between two Failures either may be
// kept (the driver loop marks the kept Failure's job unassigned) but
// Best keeps the first seen to stay deterministic.
type ResultSelector interface {
	Select(random rng.Random, a, b Result) Result
}

// Best strictly compares by Cost: lower (lexicographically earlier) Cost
// wins, Success always beats Failure.
type Best struct{}

func (Best) Select(_ rng.Random, a, b Result) Result {
	switch {
	case a.Success && !b.Success:
		return a
	case b.Success && !a.Success:
		return b
	case !a.Success && !b.Success:
		return a
	default:
		if a.Cost.Compare(b.Cost) <= 0 {
			return a
		}
		return b
	}
}

// Noise perturbs each Success's Cost by up to ±Ratio of its magnitude
// and keeps the lower perturbed Cost (a on ties), so a slightly worse
// position occasionally wins: multiplicative noise added to costs for
// exploration. Inner decides only between two Failures or when no random
// source is given.
type Noise struct {
	Inner ResultSelector
	Ratio float64
}

// NewNoise builds a Noise selector with the given perturbation ratio
// (e.g. 0.1 for ±10%) over inner (Best when nil).
func NewNoise(inner ResultSelector, ratio float64) *Noise {
	if inner == nil {
		inner = Best{}
	}
	return &Noise{Inner: inner, Ratio: ratio}
}

func (n *Noise) Select(random rng.Random, a, b Result) Result {
	if random == nil {
		return n.Inner.Select(random, a, b)
	}
	switch {
	case a.Success && !b.Success:
		return a
	case b.Success && !a.Success:
		return b
	case !a.Success && !b.Success:
		return n.Inner.Select(random, a, b)
	}

	pa := perturb(random, a.Cost, n.Ratio)
	pb := perturb(random, b.Cost, n.Ratio)
	if pa.Compare(pb) <= 0 {
		return a
	}
	return b
}

func perturb(random rng.Random, cost objective.Cost, ratio float64) objective.Cost {
	if len(cost) == 0 || ratio == 0 {
		return cost
	}
	out := make(objective.Cost, len(cost))
	for i, v := range cost {
		factor := 1 + random.UniformReal(-ratio, ratio)
		out[i] = v * factor
	}
	return out
}

// Stochastic picks between two Successes with probability inversely
// proportional to their Cost, instead of always keeping the strictly
// better one: a random tie-break variant. A Failure never beats a
// Success.
type Stochastic struct{}

func (Stochastic) Select(random rng.Random, a, b Result) Result {
	switch {
	case a.Success && !b.Success:
		return a
	case b.Success && !a.Success:
		return b
	case !a.Success && !b.Success:
		return a
	case random == nil:
		return Best{}.Select(random, a, b)
	}

	wa, wb := weightOf(a.Cost), weightOf(b.Cost)
	if wa+wb == 0 {
		return a
	}
	if random.Weighted([]float64{wa, wb}) == 0 {
		return a
	}
	return b
}

// weightOf converts a Cost's total magnitude (the sum of its components'
// absolute values) into a selection weight: lower cost gets a higher
// weight via a reciprocal-of-magnitude mapping.
func weightOf(cost []float64) float64 {
	magnitude := 0.0
	for _, v := range cost {
		if v < 0 {
			v = -v
		}
		magnitude += v
	}
	return 1 / (1 + magnitude)
}
