package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// CodeUnreachable is the rejection code for a leg the transport cost
// marks as having no feasible path.
const CodeUnreachable Code = 600

// Reachability rejects inserting an activity whose profile distance
// to/from its neighbours is marked unreachable. Distinct from
// Transport/Time's own unreachable check because Reachability looks at
// distance (capacity-relevant routing feasibility), not duration/time-window
// feasibility.
type Reachability struct {
	NoAcceptInsertion
	NoAcceptRouteState
	NoAcceptSolutionState
	NoMerge

	Cost transport.Cost
}

func NewReachability(cost transport.Cost) *Reachability {
	return &Reachability{Cost: cost}
}

func (r *Reachability) HardActivity(rc *solution.RouteContext, prev, target, next model.Activity) (Code, bool, bool) {
	profile := rc.Route.Actor.Vehicle.Profile
	if unreachableLeg(r.Cost, profile, prev, target) || unreachableLeg(r.Cost, profile, target, next) {
		return CodeUnreachable, true, false
	}
	return 0, false, false
}

func unreachableLeg(cost transport.Cost, profile model.Profile, from, to model.Activity) bool {
	if from.Place.Location == nil || to.Place.Location == nil {
		return false
	}
	d := cost.Distance(profile, *from.Place.Location, *to.Place.Location, from.Schedule.Departure)
	return transport.Unreachable(d)
}
