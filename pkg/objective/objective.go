// Package objective defines the lexicographic cost vector solutions are
// ranked by, and the individual objectives that contribute to it.
package objective

import "github.com/vrpsolver/vrpcore/pkg/solution"

// Cost is a multi-dimensional additive vector ordered lexicographically by
// objective hierarchy, not a single scalar, so a ResultSelector can compare
// candidates the same way regardless of which objectives are active.
type Cost []float64

// Compare returns -1 if a sorts before b (a is better), 1 if after, 0 if
// equal, comparing element by element in hierarchy order — the first
// non-equal element decides.
func (a Cost) Compare(b Cost) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Less reports whether a ranks strictly better than b.
func (a Cost) Less(b Cost) bool { return a.Compare(b) < 0 }

// Add returns the element-wise sum of a and b, padding the shorter with
// zeros.
func (a Cost) Add(b Cost) Cost {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Cost, n)
	for i := 0; i < n; i++ {
		var av, bv float64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = av + bv
	}
	return out
}

// Dominates reports whether a is at least as good as b in every objective
// and strictly better in at least one — the Pareto dominance relation,
// distinct from Compare's strict lexicographic order.
func (a Cost) Dominates(b Cost) bool {
	better := false
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// Objective computes one scalar component of a solution's Cost, evaluated
// against the whole SolutionContext (not a single route) so cross-route
// objectives like balance or total value can be expressed uniformly with
// per-route ones like total distance.
type Objective interface {
	// Name identifies the objective for telemetry and tie-break logging.
	Name() string
	// Evaluate returns this objective's scalar contribution for sol.
	Evaluate(sol *solution.SolutionContext) float64
}

// Hierarchy is an ordered list of Objectives; the order defines the
// lexicographic ranking used by Cost.Compare.
type Hierarchy struct {
	Objectives []Objective
}

// NewHierarchy builds a Hierarchy from objectives in ranking order.
func NewHierarchy(objectives ...Objective) *Hierarchy {
	return &Hierarchy{Objectives: objectives}
}

// Evaluate computes the full Cost vector for sol, one element per
// objective in hierarchy order.
func (h *Hierarchy) Evaluate(sol *solution.SolutionContext) Cost {
	cost := make(Cost, len(h.Objectives))
	for i, o := range h.Objectives {
		cost[i] = o.Evaluate(sol)
	}
	return cost
}
