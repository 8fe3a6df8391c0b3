package insertion

import (
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// InsertionHeuristic rebuilds a solution by repeatedly picking the single
// best job/route/position placement across the current batch of required
// jobs, committing it, and reselecting — until every required job has
// either been placed or given up on, or the run's Quota is reached.
type InsertionHeuristic struct {
	Jobs     JobSelector
	Reduce   JobMapReducer
	Pipeline *constraint.Pipeline
}

func NewInsertionHeuristic(jobs JobSelector, reducer JobMapReducer, pipeline *constraint.Pipeline) *InsertionHeuristic {
	if jobs == nil {
		jobs = AllJobSelector{}
	}
	return &InsertionHeuristic{Jobs: jobs, Reduce: reducer, Pipeline: pipeline}
}

// Run moves every currently-unassigned job back to Required, then drives
// the select-evaluate-apply loop until Required is empty or the
// Environment's Quota fires. It mutates ic.Solution in place.
func (h *InsertionHeuristic) Run(ic *solution.InsertionContext) {
	ic.Solution.MoveToRequired()
	for len(ic.Solution.Required) > 0 {
		if ic.Environment != nil && ic.Environment.IsReached() {
			return
		}
		jobs := h.Jobs.Select(ic)
		if len(jobs) == 0 {
			return
		}
		result := h.Reduce.Reduce(ic, jobs)
		if result.Job == nil {
			return
		}
		if result.Success {
			h.apply(ic, result)
		} else {
			ic.Solution.MarkUnassigned(result.Job, solution.UnassignedReason{
				Code:        int(result.Code),
				Description: "no feasible route/position found",
			})
		}
	}
}

// apply commits result's placements into the target route (materializing
// a new route first if necessary), notifies the constraint pipeline, and
// marks the job assigned.
func (h *InsertionHeuristic) apply(ic *solution.InsertionContext, result Result) {
	sc := ic.Solution
	routeIdx := result.RouteIndex
	var rc *solution.RouteContext

	if result.IsNewRoute {
		rc = solution.NewRouteContext(model.NewRoute(result.Actor))
		sc.Routes = append(sc.Routes, rc)
		routeIdx = len(sc.Routes) - 1
		sc.Registry.MarkUsed(result.Actor)
	} else {
		rc = sc.Routes[routeIdx]
	}

	for _, placement := range result.Placements {
		rc.InsertAt(placement.Index, placement.Activity)
	}
	h.Pipeline.AcceptRouteState(rc)
	h.Pipeline.AcceptInsertion(sc, routeIdx, result.Job)
	sc.MarkAssigned(result.Job)
}
