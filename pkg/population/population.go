// Package population holds the evolution driver's working set of
// solutions between generations: which ones survive, which are offered
// up as parents for the next generation's search, and how that offer
// changes as a run moves from broad exploration toward narrow
// exploitation of the best solution found so far.
package population

import (
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Individual pairs a solution with the fitness it was ranked by at the
// moment it entered the population — computed once by the caller's
// objective.Hierarchy rather than recomputed on every comparison.
type Individual struct {
	Context *solution.InsertionContext
	Fitness objective.Cost
}

// Phase names which part of a run a Population currently considers
// itself in; an evolution driver can use it to pick a different
// operator mix for exploration than for exploitation.
type Phase int

const (
	PhaseExploration Phase = iota
	PhaseExploitation
)

func (p Phase) String() string {
	if p == PhaseExploration {
		return "exploration"
	}
	return "exploitation"
}

// Statistics carries the evolution driver's per-generation progress
// down into a Population: the generation number, the run's progress,
// and SpeedRatio, the ratio a population's selection size is scaled by
// when recent generations have been running slower than the run's
// typical pace (1 = normal pace, <1 = slower, shrinking the number of
// parents selected).
type Statistics struct {
	Generation int
	SpeedRatio float64
	// Progress is how far through the run's termination condition the
	// run currently is, 0 at the start and approaching 1 near the end.
	Progress float64
}

// Population is the working set an evolution driver draws parents from
// and deposits offspring into.
type Population interface {
	// Add inserts one individual, returning true if it became a new best
	// known solution (a tie with the previous best does not count).
	Add(ind Individual) bool
	// AddAll inserts a batch, same improvement semantics as Add applied
	// once to the whole batch.
	AddAll(inds []Individual) bool
	// Select returns the parents offered for the next generation.
	Select() []Individual
	// Ranked returns every retained individual, best first.
	Ranked() []Individual
	// All returns every retained individual in no particular order.
	All() []Individual
	Size() int
	Phase() Phase
	OnGeneration(stats Statistics)
}
