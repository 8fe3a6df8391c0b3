package insertion

import (
	"github.com/vrpsolver/vrpcore/internal/concurrent"
	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// JobMapReducer evaluates a batch of jobs against the current solution and
// reduces the per-job outcomes to the single winning Result the driver loop
// should apply this round.
type JobMapReducer interface {
	Reduce(ic *solution.InsertionContext, jobs []model.Job) Result
}

// PairJobMapReducer evaluates every job against every route RouteSelector
// offers, keeps the best candidate per job via ResultSelector, then reduces
// across jobs with the same selector.
type PairJobMapReducer struct {
	Routes   RouteSelector
	Select   ResultSelector
	Evaluate *Evaluator
}

func NewPairJobMapReducer(routes RouteSelector, selector ResultSelector, evaluator *Evaluator) *PairJobMapReducer {
	return &PairJobMapReducer{Routes: routes, Select: selector, Evaluate: evaluator}
}

func (r *PairJobMapReducer) Reduce(ic *solution.InsertionContext, jobs []model.Job) Result {
	parallelism := 1
	var random rng.Random
	if ic.Environment != nil {
		parallelism = ic.Environment.Parallelism
		random = ic.Environment.Random
	}
	perJob := concurrent.MapReduce(len(jobs), parallelism, func(i int) Result {
		return r.evaluateOneJob(ic, jobs[i])
	})

	best := Result{}
	haveBest := false
	for _, candidate := range perJob {
		if !haveBest {
			best, haveBest = candidate, true
			continue
		}
		best = r.Select.Select(random, best, candidate)
	}
	return best
}

// evaluateOneJob scores job against every candidate route and annotates the
// winning Result with where it would land: an existing route's index, or a
// not-yet-materialized route for a free actor.
func (r *PairJobMapReducer) evaluateOneJob(ic *solution.InsertionContext, job model.Job) Result {
	var random rng.Random
	if ic.Environment != nil {
		random = ic.Environment.Random
	}
	candidates := r.Routes.Select(ic, job)
	best := Result{}
	haveBest := false
	for _, c := range candidates {
		result := r.Evaluate.Evaluate(c.Route, job, ic.Environment)
		if result.Success {
			result.RouteIndex = c.RouteIndex
			result.Actor = c.Route.Route.Actor
			result.IsNewRoute = c.NewActor != nil
		}
		if !haveBest {
			best, haveBest = result, true
			continue
		}
		best = r.Select.Select(random, best, result)
	}
	if !haveBest {
		return Failure(job, 0, false)
	}
	return best
}
