package insertion

import (
	"math"

	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// unrestrictedWindow mirrors constraint.resolveWindow's fallback for a
// Place declaring no time spans: always open.
var unrestrictedWindow = model.TimeWindow{Start: 0, End: math.MaxFloat64 / 2}

// Evaluator produces a Result for one job against one route. Its Cost
// field holds a single aggregate delta (the pipeline's SoftRoute plus
// SoftActivity contribution) rather than a full multi-objective Hierarchy
// evaluation: recomputing every objective over the whole solution per
// candidate position would defeat the purpose of incremental insertion
// scoring, so only the additive local delta feeds the ResultSelector
// here. The full Hierarchy ranks solutions once a round's winner is
// actually applied (pkg/evolution, pkg/population).
type Evaluator struct {
	Pipeline     *constraint.Pipeline
	Cost         transport.Cost
	ActivityCost transport.ActivityCost
	Legs         LegSelection
}

// NewEvaluator builds an Evaluator over pipeline, using cost/activity for
// candidate schedule construction and legs for position pruning. A nil
// legs defaults to AllLegs.
func NewEvaluator(pipeline *constraint.Pipeline, cost transport.Cost, activity transport.ActivityCost, legs LegSelection) *Evaluator {
	if legs == nil {
		legs = AllLegs{}
	}
	return &Evaluator{Pipeline: pipeline, Cost: cost, ActivityCost: activity, Legs: legs}
}

// Evaluate dispatches to the Single or Multi evaluation algorithm based
// on job's dynamic type.
func (e *Evaluator) Evaluate(rc *solution.RouteContext, job model.Job, env *solution.Environment) Result {
	e.Pipeline.AcceptRouteState(rc)

	switch j := job.(type) {
	case *model.Single:
		return e.evaluateSingle(rc, job, j, env)
	case *model.Multi:
		return e.evaluateMulti(rc, j, env)
	default:
		return Failure(job, 0, false)
	}
}

// evaluateSingle scores every (place, leg) combination for a Single job
// and keeps the best feasible one.
func (e *Evaluator) evaluateSingle(rc *solution.RouteContext, job model.Job, single *model.Single, env *solution.Environment) Result {
	if code, violated := e.Pipeline.HardRoute(rc, job); violated {
		return Failure(job, code, false)
	}

	legs := e.Legs.Legs(rc, env)
	best := Result{Job: job}
	haveBest := false
	lastCode := constraint.Code(0)
	lastStopped := false

	for _, place := range single.Places {
		for _, leg := range legs {
			prev := rc.Route.Activities[leg.PrevIndex]
			next := rc.Route.Activities[leg.PrevIndex+1]

			target, ok := e.buildCandidate(rc, place, prev, job)
			if !ok {
				continue
			}

			code, violated, stopped := e.Pipeline.HardActivity(rc, prev, target, next)
			if violated {
				lastCode, lastStopped = code, stopped
				if stopped {
					break // monotone violation: later legs for this place only get worse
				}
				continue
			}

			delta := e.Pipeline.SoftRoute(rc, job) + e.Pipeline.SoftActivity(rc, prev, target, next)
			candidate := Result{
				Success:    true,
				Cost:       objective.Cost{delta},
				Job:        job,
				Placements: []Placement{{Activity: target, Index: leg.Index}},
			}
			if !haveBest {
				best, haveBest = candidate, true
				continue
			}
			best = Best{}.Select(nil, best, candidate)
		}
	}

	if !haveBest {
		return Failure(job, lastCode, lastStopped)
	}
	return best
}

// buildCandidate constructs the tentative Activity a Single job would
// occupy at place if inserted directly after prev, with a Schedule
// computed the same way TransportTime's forward pass computes real
// activities' schedules (arrival/service-start/wait/departure): the
// evaluator is the caller TransportTime.HardActivity expects to have
// already populated target.Schedule.
func (e *Evaluator) buildCandidate(rc *solution.RouteContext, place model.Place, prev model.Activity, job model.Job) (model.Activity, bool) {
	if prev.Place.Location == nil || place.Location == nil {
		return model.Activity{}, false
	}
	profile := rc.Route.Actor.Vehicle.Profile
	arrival := transport.Arrival(e.Cost, profile, *prev.Place.Location, *place.Location, prev.Schedule.Departure)

	shiftDeparture := rc.Route.Activities[0].Schedule.Departure
	window := chooseWindow(place, shiftDeparture, arrival)
	serviceStart := transport.ServiceStart(arrival, window)

	return model.Activity{
		Place:    place,
		Schedule: model.Schedule{Arrival: arrival, Departure: serviceStart + place.Duration},
		Job:      job,
	}, true
}

// chooseWindow picks the first of place's time spans whose resolved
// window can still accept arrival (arrival <= window.End), falling back
// to the first span when none can. TransportTime's own checks always use
// the first declared span. A Place with no spans is unrestricted.
func chooseWindow(place model.Place, shiftDeparture, arrival float64) model.TimeWindow {
	if len(place.Times) == 0 {
		return unrestrictedWindow
	}
	for _, span := range place.Times {
		w := span.Resolve(shiftDeparture)
		if arrival <= w.End {
			return w
		}
	}
	return place.Times[0].Resolve(shiftDeparture)
}

// evaluateMulti enumerates permitted permutations (bounded sample) of a
// Multi job's constituent Singles, inserting each permutation's
// Singles atomically into a scratch clone of rc so later Singles see
// earlier ones' positions, keeping the best permutation overall.
func (e *Evaluator) evaluateMulti(rc *solution.RouteContext, multi *model.Multi, env *solution.Environment) Result {
	const defaultPermutationSample = 3
	n := len(multi.Jobs)
	if n == 0 {
		return Failure(multi, 0, false)
	}

	perms := multi.Permutation.Permutations(n, defaultPermutationSample)
	best := Result{Job: multi}
	haveBest := false
	lastCode := constraint.Code(0)

	for _, perm := range perms {
		scratch := rc.Clone()
		e.Pipeline.AcceptRouteState(scratch)

		placements := make([]Placement, 0, n)
		totalCost := objective.Cost{0}
		ok := true

		for _, idx := range perm {
			single := multi.Jobs[idx]
			result := e.evaluateSingle(scratch, multi, single, env)
			if !result.Success {
				ok = false
				lastCode = result.Code
				break
			}
			placement := result.Placements[0]
			scratch.InsertAt(placement.Index, placement.Activity)
			e.Pipeline.AcceptRouteState(scratch)
			placements = append(placements, placement)
			totalCost = totalCost.Add(result.Cost)
		}

		if !ok {
			continue
		}

		candidate := Result{Success: true, Cost: totalCost, Job: multi, Placements: placements}
		if !haveBest {
			best, haveBest = candidate, true
			continue
		}
		best = Best{}.Select(nil, best, candidate)
	}

	if !haveBest {
		return Failure(multi, lastCode, false)
	}
	return best
}
