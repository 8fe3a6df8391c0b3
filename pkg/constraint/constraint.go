// Package constraint implements a pluggable feasibility/cost pipeline: a
// module contributes lifecycle hooks (accept_insertion, accept_route_state,
// accept_solution_state, merge) plus any subset of four constraint variants
// (hard-route, hard-activity, soft-route, soft-activity). Order of module
// registration in a Pipeline determines evaluation order and matters only
// where a later module reads state an earlier module cached (e.g. Travel
// Limits reading Transport/Time's per-route totals).
package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Code is a module-stable numeric rejection reason. The pipeline does not
// prescribe the numeric space: each module documents its own codes next to
// their definition.
type Code int

// Module is the lifecycle contract every constraint implements. Modules
// that don't need a given hook embed one of the No* helpers in base.go
// rather than writing an empty method body by hand.
type Module interface {
	// AcceptInsertion updates any module-owned cache after job is
	// committed into the route at routeIdx.
	AcceptInsertion(sol *solution.SolutionContext, routeIdx int, job model.Job)
	// AcceptRouteState fully recomputes the module's per-route and
	// per-activity caches from the current tour; called whenever
	// rc.Stale() is true.
	AcceptRouteState(rc *solution.RouteContext)
	// AcceptSolutionState recomputes cross-route state (skill sets,
	// reload intervals spanning routes, etc).
	AcceptSolutionState(sol *solution.SolutionContext)
	// Merge folds candidate into source during preprocessing (e.g.
	// cluster removal's pre-clustering); ok is false when this module
	// does not support merging source/candidate.
	Merge(source, candidate model.Job) (merged model.Job, code Code, ok bool)
}

// HardRouteConstraint rejects a job for a route regardless of position.
type HardRouteConstraint interface {
	HardRoute(rc *solution.RouteContext, job model.Job) (code Code, violated bool)
}

// HardActivityConstraint rejects a specific insertion position. Stopped
// signals a monotone violation (e.g. a time window overrun that can only
// get worse further down the route) so the evaluator can stop scanning
// later legs in this route for the current place.
type HardActivityConstraint interface {
	HardActivity(rc *solution.RouteContext, prev, target, next model.Activity) (code Code, violated, stopped bool)
}

// SoftRouteConstraint contributes an additive route-level cost delta.
type SoftRouteConstraint interface {
	SoftRoute(rc *solution.RouteContext, job model.Job) float64
}

// SoftActivityConstraint contributes an additive activity-level cost delta.
type SoftActivityConstraint interface {
	SoftActivity(rc *solution.RouteContext, prev, target, next model.Activity) float64
}
