package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// CodeMissingBreak is Breaks' reserved code for a missed break. Breaks
// never rejects an insertion and records misses as BreakViolation
// values, which carry a Reason string rather than this code.
const CodeMissingBreak Code = 500

// BreakViolation names a declared Break the tour never accommodated,
// surfaced via RouteState for the caller to report alongside the
// solution.
type BreakViolation struct {
	ShiftIndex int
	Reason     string
}

// keyBreakViolations is Breaks' own RouteState entry: []BreakViolation.
const keyBreakViolations solution.StateKey = 1000

// Breaks checks every actor's declared breaks against its route's real
// activities: a break is satisfied only by an activity serving that
// break's own materialized job (see ExpandShiftActivities), never by a
// coincidental duration/location match. Required breaks left unsatisfied
// are recorded as route violations. Optional breaks left unsatisfied are
// judged against their own Policy in AcceptSolutionState and dropped
// from the unassigned set, rather than reported, when the tour never had
// a reason to carry them.
type Breaks struct {
	NoAcceptInsertion
	NoMerge
}

// AcceptRouteState walks the actor's declared breaks and records which
// ones the current tour satisfies or misses.
func (Breaks) AcceptRouteState(rc *solution.RouteContext) {
	acts := rc.Route.Activities
	if len(acts) == 0 {
		return
	}
	tourStart := acts[0].Schedule.Departure
	tourEnd := acts[len(acts)-1].Schedule.Arrival

	var violations []BreakViolation
	for i := range rc.Route.Actor.Detail.Breaks {
		brk := &rc.Route.Actor.Detail.Breaks[i]
		if satisfiedByTour(brk, acts) {
			continue
		}
		if brk.Required {
			violations = append(violations, BreakViolation{ShiftIndex: i, Reason: "required break not scheduled"})
			continue
		}
		if shouldAssignBreak(brk, tourStart, tourEnd) {
			violations = append(violations, BreakViolation{ShiftIndex: i, Reason: "optional break dropped despite being assignable"})
		}
	}
	solution.SetRoute(rc.State, keyBreakViolations, violations)
}

// AcceptSolutionState drops every unassigned optional break whose Policy
// says the tour never had a reason to carry it, so it never shows up as
// a reported violation alongside jobs that genuinely failed to place.
func (Breaks) AcceptSolutionState(sc *solution.SolutionContext) {
	for _, job := range sc.UnassignedJobs() {
		brk, ok := breakRefOf(job)
		if !ok || brk.Required {
			continue
		}
		owner, ok := shiftOwnerOf(job)
		if !ok {
			continue
		}
		rc := routeOfActor(sc, owner)
		if rc == nil || len(rc.Route.Activities) == 0 {
			continue
		}
		acts := rc.Route.Activities
		tourStart := acts[0].Schedule.Departure
		tourEnd := acts[len(acts)-1].Schedule.Arrival
		if !shouldAssignBreak(brk, tourStart, tourEnd) {
			sc.DropUnassigned(job)
		}
	}
}

func routeOfActor(sc *solution.SolutionContext, actor *model.Actor) *solution.RouteContext {
	for _, rc := range sc.Routes {
		if rc.Route.Actor == actor {
			return rc
		}
	}
	return nil
}

// satisfiedByTour reports whether some activity in acts actually serves
// brk's own materialized job, by identity.
func satisfiedByTour(brk *model.Break, acts []model.Activity) bool {
	for _, a := range acts {
		ref, ok := breakRefOf(a.Job)
		if ok && ref == brk {
			return true
		}
	}
	return false
}

// shouldAssignBreak mirrors brk's Policy against the tour's travel
// interval: SkipIfNoIntersection only expects an assignment when some
// declared span overlaps the tour at all; SkipIfArrivalBeforeEnd only
// expects one when the tour still runs past a span's end, i.e. there was
// time left to take it.
func shouldAssignBreak(brk *model.Break, tourStart, tourEnd float64) bool {
	for _, span := range brk.Times {
		w := span.Resolve(tourStart)
		switch brk.Policy {
		case model.SkipIfArrivalBeforeEnd:
			if tourEnd > w.End {
				return true
			}
		default: // SkipIfNoIntersection
			if _, ok := w.Intersect(model.TimeWindow{Start: tourStart, End: tourEnd}); ok {
				return true
			}
		}
	}
	return false
}
