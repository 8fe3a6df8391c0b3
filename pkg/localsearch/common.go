// Package localsearch implements neighbourhood moves that improve an
// already-complete solution in place: unlike pkg/ruin, the exchange
// operators never leave a job unassigned for longer than the single move
// they're making, and they only keep a move that stays feasible.
// Decompose and Branching run a wrapped Operator and keep whatever it
// leaves; Decompose can leave jobs in Required (see its doc).
package localsearch

import (
	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Search improves ic's solution in place.
type Search interface {
	Run(ic *solution.InsertionContext)
}

func randomOf(ic *solution.InsertionContext) rng.Random {
	if ic.Environment == nil {
		return nil
	}
	return ic.Environment.Random
}

func isLocked(sc *solution.SolutionContext, job model.Job) bool {
	return sc.Locked[model.JobID(job)]
}

// randomUnlockedJob picks a uniformly random unlocked job from rc,
// scanning forward (wrapping) past any locked job.
func randomUnlockedJob(rc *solution.RouteContext, random rng.Random, sc *solution.SolutionContext) (model.Job, bool) {
	jobs := rc.Route.Jobs()
	if len(jobs) == 0 || random == nil {
		return nil, false
	}
	start := random.UniformInt(0, len(jobs)-1)
	for i := 0; i < len(jobs); i++ {
		job := jobs[(start+i)%len(jobs)]
		if !isLocked(sc, job) {
			return job, true
		}
	}
	return nil, false
}

// randomUnlockedRoute picks a uniformly random route with at least one
// unlocked job, returning its index into sc.Routes.
func randomUnlockedRoute(sc *solution.SolutionContext, random rng.Random) (int, bool) {
	routes := sc.Routes
	if len(routes) == 0 || random == nil {
		return 0, false
	}
	start := random.UniformInt(0, len(routes)-1)
	for offset := 0; offset < len(routes); offset++ {
		idx := (start + offset) % len(routes)
		for _, job := range routes[idx].Route.Jobs() {
			if !isLocked(sc, job) {
				return idx, true
			}
		}
	}
	return 0, false
}

// removeForReinsertion pulls every activity serving job out of rc and
// returns them as Placements at their original tour indices, in
// ascending index order, so a caller that fails to find a better spot
// can restore the route exactly by re-applying InsertAt over the
// returned slice in order.
func removeForReinsertion(rc *solution.RouteContext, job model.Job) []insertion.Placement {
	id := model.JobID(job)
	acts := rc.Route.Activities
	kept := make([]model.Activity, 0, len(acts))
	var removed []insertion.Placement
	for i, a := range acts {
		if a.Job != nil && model.JobID(a.Job) == id {
			removed = append(removed, insertion.Placement{Activity: a, Index: i - 1})
			continue
		}
		kept = append(kept, a)
	}
	rc.Route.Activities = kept
	if len(removed) > 0 {
		rc.MarkStale()
	}
	return removed
}

// restore reinserts placements (as produced by removeForReinsertion) back
// into rc, undoing the removal.
func restore(rc *solution.RouteContext, placements []insertion.Placement) {
	for _, p := range placements {
		rc.InsertAt(p.Index, p.Activity)
	}
}

// singleRouteSelector offers exactly one existing route as the only
// insertion candidate, for moves that must stay within (or target) one
// specific route rather than searching the whole fleet.
type singleRouteSelector struct {
	route *solution.RouteContext
	index int
}

func (s singleRouteSelector) Select(_ *solution.InsertionContext, _ model.Job) []insertion.Candidate {
	return []insertion.Candidate{{Route: s.route, RouteIndex: s.index}}
}

// commit applies a successful Result's placements into rc, notifies the
// constraint pipeline, and marks the job assigned. Mirrors
// InsertionHeuristic.apply, scoped to a route already known to exist
// (never a fresh actor's route).
func commit(ic *solution.InsertionContext, pipeline *constraint.Pipeline, rc *solution.RouteContext, routeIndex int, result insertion.Result) {
	for _, placement := range result.Placements {
		rc.InsertAt(placement.Index, placement.Activity)
	}
	pipeline.AcceptRouteState(rc)
	pipeline.AcceptInsertion(ic.Solution, routeIndex, result.Job)
	ic.Solution.MarkAssigned(result.Job)
}
