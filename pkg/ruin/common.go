// Package ruin implements the destroy side of the ruin-and-recreate
// search loop: operators that pull a bounded set of jobs back out of an
// already-built solution and leave them in Required for the insertion
// heuristic to place again.
package ruin

import (
	"math"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Ruin destroys part of ic's solution in place, moving the removed jobs
// into ic.Solution.Required.
type Ruin interface {
	Run(ic *solution.InsertionContext)
}

// JobRemovalLimit bounds how many jobs one ruin call removes.
type JobRemovalLimit struct {
	Min       int
	Max       int
	Threshold float64
}

// DefaultJobRemovalLimit matches the conservative default used when an
// operator isn't configured with its own limit.
func DefaultJobRemovalLimit() JobRemovalLimit {
	return JobRemovalLimit{Min: 8, Max: 32, Threshold: 0.2}
}

// chunkSize picks how many jobs this ruin call should target: a uniform
// draw between Min and Max, capped at Threshold's share of the currently
// assigned job count so a mostly-unassigned solution isn't ruined further.
func chunkSize(ic *solution.InsertionContext, limit JobRemovalLimit) int {
	total := len(ic.Problem.Plan.Jobs)
	assigned := total - len(ic.Solution.Unassigned) - len(ic.Solution.Ignored)
	if assigned < 0 {
		assigned = 0
	}
	maxLimit := int(math.Round(float64(assigned) * limit.Threshold))
	if maxLimit > limit.Max {
		maxLimit = limit.Max
	}
	n := limit.Min
	if ic.Environment != nil && ic.Environment.Random != nil {
		n = ic.Environment.Random.UniformInt(limit.Min, limit.Max)
	}
	if n > maxLimit {
		n = maxLimit
	}
	if n < 0 {
		n = 0
	}
	return n
}

// randomOf returns ic's random source, or nil if the environment doesn't
// carry one.
func randomOf(ic *solution.InsertionContext) rng.Random {
	if ic.Environment == nil {
		return nil
	}
	return ic.Environment.Random
}

// isLocked reports whether job may never be removed by ruin.
func isLocked(sc *solution.SolutionContext, job model.Job) bool {
	return sc.Locked[model.JobID(job)]
}

// routeOf returns the route currently holding job, or nil.
func routeOf(sc *solution.SolutionContext, job model.Job) *solution.RouteContext {
	id := model.JobID(job)
	for _, rc := range sc.Routes {
		for _, a := range rc.Route.Activities {
			if a.Job != nil && model.JobID(a.Job) == id {
				return rc
			}
		}
	}
	return nil
}

// ruinJob removes job from whichever route holds it and moves it back
// into Required. A locked job, or a job not currently assigned anywhere,
// is left untouched and reported as not removed.
func ruinJob(sc *solution.SolutionContext, job model.Job) bool {
	if isLocked(sc, job) {
		return false
	}
	rc := routeOf(sc, job)
	if rc == nil {
		return false
	}
	rc.RemoveJob(job)
	sc.Required = append(sc.Required, job)
	return true
}

// selectSeedJob picks a uniformly random non-empty route, then a
// uniformly random job within it, scanning forward (wrapping) past any
// route/activity that turns out empty or locked.
func selectSeedJob(sc *solution.SolutionContext, random rng.Random) (*solution.RouteContext, model.Job, bool) {
	routes := sc.Routes
	if len(routes) == 0 || random == nil {
		return nil, nil, false
	}
	start := random.UniformInt(0, len(routes)-1)
	for offset := 0; offset < len(routes); offset++ {
		rc := routes[(start+offset)%len(routes)]
		jobs := rc.Route.Jobs()
		if len(jobs) == 0 {
			continue
		}
		jobStart := random.UniformInt(0, len(jobs)-1)
		for j := 0; j < len(jobs); j++ {
			job := jobs[(jobStart+j)%len(jobs)]
			if !isLocked(sc, job) {
				return rc, job, true
			}
		}
	}
	return nil, nil, false
}

// randomUnlockedRoute picks a uniformly random route that has at least
// one unlocked job, scanning forward past locked-only routes.
func randomUnlockedRoute(sc *solution.SolutionContext, random rng.Random) (*solution.RouteContext, bool) {
	routes := sc.Routes
	if len(routes) == 0 || random == nil {
		return nil, false
	}
	start := random.UniformInt(0, len(routes)-1)
	for offset := 0; offset < len(routes); offset++ {
		rc := routes[(start+offset)%len(routes)]
		for _, job := range rc.Route.Jobs() {
			if !isLocked(sc, job) {
				return rc, true
			}
		}
	}
	return nil, false
}
