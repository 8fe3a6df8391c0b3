package model

// Commute describes an optional detour (e.g. walking leg) attached to an
// activity, distinct from the vehicle's own travel.
type Commute struct {
	Forward  float64
	Backward float64
}

// Activity is one visit in a route: a Place, a Schedule, and — for every
// activity except the shift start/end sentinels — the Job it serves.
type Activity struct {
	Place    Place
	Schedule Schedule
	Job      Job // nil for the shift-start/shift-end sentinels
	Commute  *Commute
}

// Route is the ordered sequence of Activities assigned to one Actor.
// Invariants: activity 0 is the shift start; the last activity
// is the shift end if the actor's shift declares one; for every i,
// arrival[i] <= departure[i] <= arrival[i+1]; every activity's arrival is
// at or after the earliest feasible time-window start and its departure
// is at or before the latest window end, after waiting.
type Route struct {
	Actor      *Actor
	Activities []Activity
}

// NewRoute materializes a fresh route with the shift-start activity (and
// shift-end, if the shift declares one) pre-placed.
func NewRoute(actor *Actor) *Route {
	start := Activity{
		Place: Place{Location: &actor.Detail.StartLocation},
		Schedule: Schedule{
			Arrival:   actor.Detail.StartTime.Start,
			Departure: actor.Detail.StartTime.Start,
		},
	}
	activities := []Activity{start}

	if actor.Detail.EndLocation != nil {
		end := Activity{
			Place: Place{Location: actor.Detail.EndLocation},
		}
		if actor.Detail.EndTime != nil {
			end.Schedule = Schedule{Arrival: actor.Detail.EndTime.Start, Departure: actor.Detail.EndTime.Start}
		}
		activities = append(activities, end)
	}

	return &Route{Actor: actor, Activities: activities}
}

// HasEnd reports whether the actor's shift declares an end location,
// meaning the route's last activity is a shift-end sentinel rather than a
// job activity.
func (r *Route) HasEnd() bool {
	return r.Actor.Detail.EndLocation != nil
}

// TourActivities returns the activities excluding the shift-start sentinel
// (and shift-end, if present) — the indices the Insertion Evaluator's
// Result refers to.
func (r *Route) TourActivities() []Activity {
	end := len(r.Activities)
	if r.HasEnd() {
		end--
	}
	return r.Activities[1:end]
}

// Jobs returns the distinct jobs served by this route, in visiting order,
// deduplicated for Multi jobs whose Singles each occupy their own
// Activity.
func (r *Route) Jobs() []Job {
	seen := make(map[any]bool)
	var out []Job
	for _, a := range r.TourActivities() {
		if a.Job == nil {
			continue
		}
		id := JobID(a.Job)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, a.Job)
	}
	return out
}
