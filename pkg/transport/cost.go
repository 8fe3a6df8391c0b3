// Package transport implements the Transport & Activity Cost contract:
// matrix-backed distance/duration lookups and the per-activity local
// cost they feed into.
package transport

import "github.com/vrpsolver/vrpcore/pkg/model"

// Cost answers distance/duration queries for a given profile and
// departure instant. Implementations are immutable and safe for
// concurrent use.
type Cost interface {
	// Duration returns the travel time from -> to under profile,
	// departing at the given instant. Returns model.Unreachable's
	// float equivalent (negative) when no path exists.
	Duration(profile model.Profile, from, to model.Location, departure float64) float64
	// Distance is the companion metric to Duration, same contract.
	Distance(profile model.Profile, from, to model.Location, departure float64) float64
}

// Unreachable reports whether a duration/distance value returned by Cost
// represents "constraint-violating infinity".
func Unreachable(v float64) bool { return v < 0 }

// Arrival computes the instant an actor following profile reaches `to`,
// having departed `from` at `departure`.
func Arrival(cost Cost, profile model.Profile, from, to model.Location, departure float64) float64 {
	d := cost.Duration(profile, from, to, departure)
	if Unreachable(d) {
		return departure
	}
	return departure + d*profile.Scale
}

// ActivityCost computes the local cost contribution of one activity given
// its actor and arrival instant.
type ActivityCost interface {
	// Cost returns the activity-local contribution: per-driving *
	// travel_time + per-waiting * wait + per-service * service_time.
	// travelTime is the leg that produced this arrival.
	Cost(actor *model.Actor, arrival, travelTime float64, a model.Activity) float64
}

// DefaultActivityCost implements ActivityCost's per-driving/per-waiting/
// per-service additive formula.
type DefaultActivityCost struct{}

// ServiceStart returns max(arrival, earliest feasible window start).
func ServiceStart(arrival float64, tw model.TimeWindow) float64 {
	if arrival < tw.Start {
		return tw.Start
	}
	return arrival
}

// Wait is the non-negative gap between arrival and service start.
func Wait(arrival, serviceStart float64) float64 {
	w := serviceStart - arrival
	if w < 0 {
		return 0
	}
	return w
}

func (DefaultActivityCost) Cost(actor *model.Actor, arrival, travelTime float64, a model.Activity) float64 {
	serviceStart := a.Schedule.Departure - a.Place.Duration
	wait := Wait(arrival, serviceStart)
	costs := actor.Vehicle.Costs
	return costs.PerDriving*travelTime + costs.PerWaiting*wait + costs.PerService*a.Place.Duration
}
