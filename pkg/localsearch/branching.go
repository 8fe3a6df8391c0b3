package localsearch

import (
	"math"

	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Operator is anything that mutates an InsertionContext's solution in
// place — every pkg/ruin.Ruin and every Search in this package already
// satisfies this without an adapter.
type Operator interface {
	Run(ic *solution.InsertionContext)
}

// Branching wraps an inner Operator and occasionally runs it several
// times in a row against cloned state, keeping the best (or, with
// decaying probability, a worse) outcome of the chain instead of the
// single result a plain call would give — a cheap way to escape local
// optima without the cost of a dedicated multi-restart driver.
// Branching fires more often once recent calls have stopped improving.
type Branching struct {
	Inner     Operator
	Hierarchy *objective.Hierarchy

	// NormalChance is how often Branching forks at all when recent
	// calls have been improving; IntensiveChance replaces it once the
	// improvement ratio over the tracked window falls below Threshold.
	NormalChance, IntensiveChance, Threshold float64
	// Steepness shapes how quickly, within one fork chain, the
	// probability of accepting a worse child decays from link 1 toward
	// the final link — 1 decays linearly, >1 decays slower up front and
	// faster near the end.
	Steepness float64
	// MinGenerations and MaxGenerations bound the fork chain length,
	// drawn uniformly at random each time Branching fires.
	MinGenerations, MaxGenerations int

	window []bool
	next   int
}

// NewBranching builds a Branching wrapping inner. window bounds how many
// recent Run outcomes feed the improvement ratio that decides between
// NormalChance and IntensiveChance.
func NewBranching(inner Operator, hierarchy *objective.Hierarchy, normalChance, intensiveChance, threshold, steepness float64, minGenerations, maxGenerations, window int) *Branching {
	if window <= 0 {
		window = 1000
	}
	if minGenerations < 1 {
		minGenerations = 1
	}
	if maxGenerations < minGenerations {
		maxGenerations = minGenerations
	}
	return &Branching{
		Inner: inner, Hierarchy: hierarchy,
		NormalChance: normalChance, IntensiveChance: intensiveChance, Threshold: threshold,
		Steepness: steepness, MinGenerations: minGenerations, MaxGenerations: maxGenerations,
		window: make([]bool, 0, window),
	}
}

func (b *Branching) Run(ic *solution.InsertionContext) {
	random := randomOf(ic)
	if random == nil {
		b.Inner.Run(ic)
		return
	}

	before := b.Hierarchy.Evaluate(ic.Solution)
	chance := b.branchingChance()
	if !random.IsHit(chance) {
		b.Inner.Run(ic)
		b.record(before, b.Hierarchy.Evaluate(ic.Solution))
		return
	}

	generations := b.MinGenerations
	if b.MaxGenerations > b.MinGenerations {
		generations = random.UniformInt(b.MinGenerations, b.MaxGenerations)
	}

	parent := ic
	parentFitness := before
	for step := 1; step <= generations; step++ {
		child := parent.Clone()
		b.Inner.Run(child)
		childFitness := b.Hierarchy.Evaluate(child.Solution)

		acceptWorse := random.UniformReal(0, 1)
		acceptWorseProbability := 1 - math.Pow(float64(step)/float64(generations), b.Steepness)
		if childFitness.Less(parentFitness) || acceptWorse < acceptWorseProbability {
			parent, parentFitness = child, childFitness
		}
	}

	ic.Solution = parent.Solution
	b.record(before, parentFitness)
}

// branchingChance picks IntensiveChance once the tracked window's
// improvement ratio drops below Threshold, NormalChance otherwise.
func (b *Branching) branchingChance() float64 {
	if b.improvementRatio() < b.Threshold {
		return b.IntensiveChance
	}
	return b.NormalChance
}

func (b *Branching) improvementRatio() float64 {
	if len(b.window) == 0 {
		return 1
	}
	improved := 0
	for _, v := range b.window {
		if v {
			improved++
		}
	}
	return float64(improved) / float64(len(b.window))
}

func (b *Branching) record(before, after objective.Cost) {
	improved := after.Less(before)
	if len(b.window) < cap(b.window) {
		b.window = append(b.window, improved)
		return
	}
	b.window[b.next] = improved
	b.next = (b.next + 1) % len(b.window)
}
