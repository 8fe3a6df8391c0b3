package model

// Costs holds the linear cost coefficients applied to an actor's activity.
type Costs struct {
	Fixed       float64
	PerDistance float64
	PerDriving  float64
	PerWaiting  float64
	PerService  float64
}

// BreakPolicy controls how an optional, unassigned break is treated.
type BreakPolicy int

const (
	// SkipIfNoIntersection drops the break when its time span never
	// intersects the tour's travel interval.
	SkipIfNoIntersection BreakPolicy = iota
	// SkipIfArrivalBeforeEnd drops the break when the vehicle would
	// arrive at the next activity before the break window ends.
	SkipIfArrivalBeforeEnd
)

// Break describes an optional or required pause in a shift.
type Break struct {
	Times    []TimeSpan
	Duration float64
	Required bool
	Policy   BreakPolicy
	Location *Location // nil: break happens en-route, no dedicated location
}

// Reload resets cumulative static load to the reload's own baseline at a
// given point in the shift, e.g. returning to a depot to restock.
type Reload struct {
	Location Location
	Duration float64
	Times    []TimeSpan
}

// ShiftDetail is one vehicle shift: start location/time window, optional
// end location/time, and optional breaks/reloads/dispatch.
type ShiftDetail struct {
	StartLocation Location
	StartTime     TimeWindow

	EndLocation *Location
	EndTime     *TimeWindow

	Breaks  []Break
	Reloads []Reload
}

// Limits bound an actor's total travel.
type Limits struct {
	MaxDistance *float64
	MaxDuration *float64
	MaxTourSize *int
}

// Vehicle is the physical unit with costs, dimensions and one or more
// shift details.
type Vehicle struct {
	ID      string
	TypeID  string
	Profile Profile
	Costs   Costs
	Dims    Dimensions
	Shifts  []ShiftDetail
	Limits  *Limits
}

// Driver pairs with a Vehicle to form an Actor; kept distinct because the
// original problem format allows driver-specific breaks/costs, though
// this core treats a Driver as an opaque dimension carrier.
type Driver struct {
	ID   string
	Dims Dimensions
}

// Actor is the indivisible scheduling unit: (driver, vehicle, shift
// detail). Distinct vehicle-shifts yield distinct Actors, even for the
// same physical Vehicle.
type Actor struct {
	Driver Driver
	Vehicle Vehicle
	Detail ShiftDetail
}

// GroupKey identifies actors that are interchangeable for insertion
// purposes: same profile index, costs, shift start location and start
// time window (end location, end time, breaks and reloads are not part
// of the key). The Fleet indexes
// actors by this key so the Insertion Heuristic only needs to try one
// representative per group, not every equivalent actor.
type GroupKey struct {
	ProfileIndex int
	Costs        Costs
	StartLoc     Location
	StartWindow  TimeWindow
}

// Key computes a's group key.
func (a *Actor) Key() GroupKey {
	return GroupKey{
		ProfileIndex: a.Vehicle.Profile.Index,
		Costs:        a.Vehicle.Costs,
		StartLoc:     a.Detail.StartLocation,
		StartWindow:  a.Detail.StartTime,
	}
}
