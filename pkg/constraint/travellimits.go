package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// CodeTravelLimit is the rejection code for exceeding a per-actor
// distance/duration limit; CodeTourSize for exceeding the max activity
// count.
const (
	CodeTravelLimit Code = 700
	CodeTourSize    Code = 701
)

// TravelLimits rejects inserting into a route whose total distance or
// duration, as cached by TransportTime's last AcceptRouteState pass,
// already exceeds the actor's Limits; the candidate job's own extra
// travel is not added before the comparison. It also rejects inserting
// past the actor's max tour size. Registered after TransportTime: it reads
// keyTotalDistance/keyTotalDuration rather than recomputing them, per the
// pipeline's documented module-order dependency.
type TravelLimits struct {
	NoAcceptInsertion
	NoAcceptRouteState
	NoAcceptSolutionState
	NoMerge
}

func (TravelLimits) HardRoute(rc *solution.RouteContext, _ model.Job) (Code, bool) {
	limits := rc.Route.Actor.Vehicle.Limits
	if limits == nil {
		return 0, false
	}
	if limits.MaxDistance != nil {
		if dist, ok := solution.GetRoute[float64](rc.State, keyTotalDistance); ok && dist > *limits.MaxDistance {
			return CodeTravelLimit, true
		}
	}
	if limits.MaxDuration != nil {
		if dur, ok := solution.GetRoute[float64](rc.State, keyTotalDuration); ok && dur > *limits.MaxDuration {
			return CodeTravelLimit, true
		}
	}
	return 0, false
}

func (TravelLimits) HardActivity(rc *solution.RouteContext, _, target, _ model.Activity) (Code, bool, bool) {
	limits := rc.Route.Actor.Vehicle.Limits
	if limits == nil || limits.MaxTourSize == nil {
		return 0, false, false
	}
	if len(rc.Route.TourActivities())+1 > *limits.MaxTourSize {
		return CodeTourSize, true, false
	}
	return 0, false, false
}
