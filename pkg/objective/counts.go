package objective

import "github.com/vrpsolver/vrpcore/pkg/solution"

// UnassignedCount ranks solutions by how many jobs could not be placed —
// conventionally the highest-priority objective, since a feasible solution
// with fewer unassigned jobs always beats one with more regardless of
// distance or duration.
type UnassignedCount struct{}

func (UnassignedCount) Name() string { return "unassigned_count" }

func (UnassignedCount) Evaluate(sol *solution.SolutionContext) float64 {
	return float64(len(sol.Unassigned))
}

// TourCount counts active routes (those with at least one real job
// activity), used to prefer consolidating work onto fewer vehicles when
// distance/duration are otherwise close.
type TourCount struct{}

func (TourCount) Name() string { return "tour_count" }

func (TourCount) Evaluate(sol *solution.SolutionContext) float64 {
	count := 0
	for _, rc := range sol.Routes {
		if len(rc.Route.TourActivities()) > 0 {
			count++
		}
	}
	return float64(count)
}
