package objective

import (
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// TotalCost sums every active route's per-distance travel cost plus its
// actor's fixed cost, added once per active actor. It reads
// TransportTime's cached per-route distance total rather than re-walking
// legs, so it must run after the constraint pipeline's AcceptSolutionState.
type TotalCost struct{}

func (TotalCost) Name() string { return "total_cost" }

func (TotalCost) Evaluate(sol *solution.SolutionContext) float64 {
	total := 0.0
	for _, rc := range sol.Routes {
		if len(rc.Route.TourActivities()) == 0 {
			continue
		}
		dist, _ := constraint.TotalDistance(rc)
		costs := rc.Route.Actor.Vehicle.Costs
		total += costs.Fixed + costs.PerDistance*dist
	}
	return total
}

// TotalDuration sums every active route's per-driving-time travel cost,
// the companion metric to TotalCost's distance term, kept as a separate
// objective so a hierarchy can rank by time before (or without) distance.
type TotalDuration struct{}

func (TotalDuration) Name() string { return "total_duration" }

func (TotalDuration) Evaluate(sol *solution.SolutionContext) float64 {
	total := 0.0
	for _, rc := range sol.Routes {
		if len(rc.Route.TourActivities()) == 0 {
			continue
		}
		dur, _ := constraint.TotalDuration(rc)
		total += rc.Route.Actor.Vehicle.Costs.PerDriving * dur
	}
	return total
}
