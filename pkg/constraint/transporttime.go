package constraint

import (
	"math"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// Rejection codes owned by TransportTime.
const (
	CodeTimeWindow Code = 100 + iota
	CodeUnreachableTravel
)

// TransportTime maintains per-activity earliest/latest feasible arrival
// and per-route total distance/duration, and rejects insertions that
// overrun a time window forward or backward from the candidate position.
type TransportTime struct {
	NoAcceptInsertion
	NoAcceptSolutionState
	NoMerge

	Cost     transport.Cost
	Activity transport.ActivityCost
}

// NewTransportTime builds the module over the given transport cost and
// activity-cost formula.
func NewTransportTime(cost transport.Cost, activity transport.ActivityCost) *TransportTime {
	return &TransportTime{Cost: cost, Activity: activity}
}

// AcceptRouteState recomputes every activity's Schedule by a forward pass
// from the shift start, then a backward pass filling in each activity's
// latest-feasible-arrival cache.
func (t *TransportTime) AcceptRouteState(rc *solution.RouteContext) {
	acts := rc.Route.Activities
	if len(acts) == 0 {
		return
	}
	actor := rc.Route.Actor
	profile := actor.Vehicle.Profile

	totalDistance, totalDuration := 0.0, 0.0
	for i := 1; i < len(acts); i++ {
		prev, cur := acts[i-1], acts[i]
		from, to := prev.Place.Location, cur.Place.Location
		if from == nil || to == nil {
			continue
		}
		travel := t.Cost.Duration(profile, *from, *to, prev.Schedule.Departure)
		dist := t.Cost.Distance(profile, *from, *to, prev.Schedule.Departure)
		arrival := prev.Schedule.Departure
		if !transport.Unreachable(travel) {
			arrival = prev.Schedule.Departure + travel*profile.Scale
			totalDuration += travel * profile.Scale
		}
		if !transport.Unreachable(dist) {
			totalDistance += dist
		}
		window := resolveWindow(cur.Place, acts[0].Schedule.Departure)
		serviceStart := transport.ServiceStart(arrival, window)
		acts[i].Schedule = model.Schedule{Arrival: arrival, Departure: serviceStart + cur.Place.Duration}
	}
	solution.SetRoute(rc.State, keyTotalDistance, totalDistance)
	solution.SetRoute(rc.State, keyTotalDuration, totalDuration)

	// Backward pass: latest feasible arrival at i is bounded by i+1's
	// latest feasible arrival minus the return leg, clamped to i's own
	// window end.
	latest := make([]float64, len(acts))
	latest[len(acts)-1] = resolveWindow(acts[len(acts)-1].Place, acts[0].Schedule.Departure).End
	for i := len(acts) - 2; i >= 0; i-- {
		cur, next := acts[i], acts[i+1]
		window := resolveWindow(cur.Place, acts[0].Schedule.Departure)
		bound := window.End
		if from, to := cur.Place.Location, next.Place.Location; from != nil && to != nil {
			travel := t.Cost.Duration(profile, *from, *to, cur.Schedule.Departure)
			if !transport.Unreachable(travel) {
				candidate := latest[i+1] - travel*profile.Scale - cur.Place.Duration
				bound = math.Min(bound, candidate)
			}
		}
		latest[i] = bound
		solution.SetActivity(rc.State, i, keyLatestArrival, bound)
		solution.SetActivity(rc.State, i, keyEarliestArrival, acts[i].Schedule.Arrival)
	}
}

// HardActivity rejects a candidate target activity whose arrival would
// overrun its own window (stopped: later legs can only arrive later) or
// whose departure-plus-travel would overrun next's cached latest-feasible
// arrival.
func (t *TransportTime) HardActivity(rc *solution.RouteContext, prev, target, next model.Activity) (Code, bool, bool) {
	shiftDeparture := rc.Route.Activities[0].Schedule.Departure
	window := resolveWindow(target.Place, shiftDeparture)

	if target.Schedule.Arrival > window.End {
		return CodeTimeWindow, true, true
	}

	if target.Place.Location != nil && next.Place.Location != nil {
		profile := rc.Route.Actor.Vehicle.Profile
		travel := t.Cost.Duration(profile, *target.Place.Location, *next.Place.Location, target.Schedule.Departure)
		if transport.Unreachable(travel) {
			return CodeUnreachableTravel, true, false
		}
		arrivalAtNext := target.Schedule.Departure + travel*profile.Scale
		nextLatest := resolveWindow(next.Place, shiftDeparture).End
		if i := indexOf(rc, next); i > 0 {
			if cached, ok := solution.GetActivity[float64](rc.State, i, keyLatestArrival); ok {
				nextLatest = math.Min(nextLatest, cached)
			}
		}
		if arrivalAtNext > nextLatest {
			return CodeTimeWindow, true, false
		}
	}
	return 0, false, false
}

// TotalDistance returns the route's cached total distance from the last
// AcceptRouteState pass, for objectives that rank solutions by distance
// without recomputing the whole route's legs.
func TotalDistance(rc *solution.RouteContext) (float64, bool) {
	return solution.GetRoute[float64](rc.State, keyTotalDistance)
}

// TotalDuration is TotalDistance's duration counterpart.
func TotalDuration(rc *solution.RouteContext) (float64, bool) {
	return solution.GetRoute[float64](rc.State, keyTotalDuration)
}

// resolveWindow resolves the place's first declared time span against the
// shift's departure instant; later spans are not considered. A place with
// no declared spans is treated as always open.
func resolveWindow(p model.Place, shiftDeparture float64) model.TimeWindow {
	if len(p.Times) == 0 {
		return model.TimeWindow{Start: 0, End: math.MaxFloat64 / 2}
	}
	return p.Times[0].Resolve(shiftDeparture)
}
