package localsearch

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Decompose splits a solution's routes into independent groups and
// repairs each group in isolation with Inner (typically a ruin+recreate
// pair), instead of running Inner once over the whole fleet. Confining
// one ruin+recreate pass to a handful of routes lets it fully explore
// that neighbourhood — every removed job competes only against its own
// group's routes for reinsertion — rather than being diluted across
// routes it was never going to touch anyway. The tradeoff, accepted
// here, is that a group's repair can never open a brand-new route or
// move a job into another group's routes in the same pass: every actor
// not already used by the group stays reserved for the rest of the
// solution, so leftover jobs a group's recreate step could not place
// fall into Required for a later, whole-solution pass to pick up —
// unlike Decompose's sibling operators in this package, it does not
// guarantee every job stays assigned by the time Run returns.
type Decompose struct {
	Inner Operator
	// MinGroupRoutes and MaxGroupRoutes bound how many routes make up
	// one group; the actual size is drawn uniformly between them each
	// time Run fires. Decompose skips decomposition entirely (falling
	// back to running Inner once over everything) when the solution
	// doesn't have at least two groups' worth of routes.
	MinGroupRoutes, MaxGroupRoutes int
}

// NewDecompose builds a Decompose wrapping inner.
func NewDecompose(inner Operator, minGroupRoutes, maxGroupRoutes int) *Decompose {
	if minGroupRoutes < 1 {
		minGroupRoutes = 1
	}
	if maxGroupRoutes < minGroupRoutes {
		maxGroupRoutes = minGroupRoutes
	}
	return &Decompose{Inner: inner, MinGroupRoutes: minGroupRoutes, MaxGroupRoutes: maxGroupRoutes}
}

func (d *Decompose) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	if len(sc.Routes) < 2*d.MinGroupRoutes {
		d.Inner.Run(ic)
		return
	}

	groupSize := d.MaxGroupRoutes
	if random := randomOf(ic); random != nil && d.MaxGroupRoutes > d.MinGroupRoutes {
		groupSize = random.UniformInt(d.MinGroupRoutes, d.MaxGroupRoutes)
	}
	groups := chunkIndices(len(sc.Routes), groupSize, d.MinGroupRoutes)
	if len(groups) < 2 {
		d.Inner.Run(ic)
		return
	}

	rebuilt := make([]*solution.RouteContext, 0, len(sc.Routes))
	var leftoverRequired []model.Job

	for _, idxs := range groups {
		sub := ic.Clone()
		keep := make(map[int]bool, len(idxs))
		for _, i := range idxs {
			keep[i] = true
		}

		groupRoutes := make([]*solution.RouteContext, 0, len(idxs))
		for i, rc := range sub.Solution.Routes {
			if keep[i] {
				groupRoutes = append(groupRoutes, rc)
			}
		}
		// Every other group's actor stays in sub's used-set (Clone
		// already copied it), so Inner can neither free nor claim a
		// route outside this group.
		sub.Solution.Routes = groupRoutes
		sub.Solution.Required = nil

		d.Inner.Run(sub)

		rebuilt = append(rebuilt, sub.Solution.Routes...)
		leftoverRequired = append(leftoverRequired, sub.Solution.Required...)
		for _, rc := range sub.Solution.Routes {
			ic.Solution.Registry.MarkUsed(rc.Route.Actor)
			for _, job := range rc.Route.Jobs() {
				// Keeps ic.Solution's own assigned-membership filter
				// consistent: the job was inserted through sub's
				// SolutionContext, whose filter is a different
				// instance.
				ic.Solution.MarkAssigned(job)
			}
		}
	}

	ic.Solution.Routes = rebuilt
	ic.Solution.Required = append(ic.Solution.Required, leftoverRequired...)
}

// chunkIndices splits [0,n) into consecutive groups of size elements,
// merging a too-small trailing group into its predecessor so every
// group meets min.
func chunkIndices(n, size, min int) [][]int {
	if size < 1 {
		size = 1
	}
	var groups [][]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		idxs := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			idxs = append(idxs, i)
		}
		groups = append(groups, idxs)
	}
	if len(groups) > 1 && len(groups[len(groups)-1]) < min {
		last := groups[len(groups)-1]
		groups = groups[:len(groups)-1]
		groups[len(groups)-1] = append(groups[len(groups)-1], last...)
	}
	return groups
}
