package insertion

import (
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// GapsJobSelector shuffles the required jobs, then drops a random
// fraction of the tail before returning: a later round sees a batch
// that's missing a different subset of jobs each time, so the reducer's
// globally-best pick varies round to round instead of always following
// the same priority order.
type GapsJobSelector struct {
	Ratio float64 // fraction of required jobs dropped from a round, in [0,1)
}

func (g GapsJobSelector) Select(ic *solution.InsertionContext) []model.Job {
	jobs := AllJobSelector{}.Select(ic)
	if ic.Environment == nil || ic.Environment.Random == nil || g.Ratio <= 0 || len(jobs) == 0 {
		return jobs
	}
	keep := len(jobs) - int(float64(len(jobs))*g.Ratio)
	if keep < 1 {
		keep = 1
	}
	return jobs[:keep]
}

// BlinkJobSelector bounds how many required jobs a round even considers,
// so the reducer's candidate set is a small random sample rather than
// every required job: cheap to run, and the sampled-away jobs get a
// chance at a better position in some later round.
type BlinkJobSelector struct {
	Limit int
}

func (b BlinkJobSelector) Select(ic *solution.InsertionContext) []model.Job {
	jobs := AllJobSelector{}.Select(ic)
	if b.Limit <= 0 || len(jobs) <= b.Limit {
		return jobs
	}
	return jobs[:b.Limit]
}

// RegretJobMapReducer evaluates every job against every candidate route,
// but instead of committing the job with the single lowest insertion
// cost, it commits the job whose best and second-best route differ the
// most: the one that gets strictly worse, fastest, if its preferred
// route is taken by something else. Classic regret-k insertion, here
// with k=2.
type RegretJobMapReducer struct {
	Routes   RouteSelector
	Evaluate *Evaluator
}

func NewRegretJobMapReducer(routes RouteSelector, evaluator *Evaluator) *RegretJobMapReducer {
	return &RegretJobMapReducer{Routes: routes, Evaluate: evaluator}
}

func (r *RegretJobMapReducer) Reduce(ic *solution.InsertionContext, jobs []model.Job) Result {
	best := Result{}
	bestRegret := -1.0
	haveBest := false
	for _, job := range jobs {
		first, second, ok := r.bestTwo(ic, job)
		if !ok {
			if !haveBest {
				best = Failure(job, 0, false)
			}
			continue
		}
		regret := 0.0
		if second.Success {
			regret = totalMagnitude(second.Cost) - totalMagnitude(first.Cost)
		}
		if !haveBest || regret > bestRegret {
			best, bestRegret, haveBest = first, regret, true
		}
	}
	return best
}

func (r *RegretJobMapReducer) bestTwo(ic *solution.InsertionContext, job model.Job) (first, second Result, ok bool) {
	candidates := r.Routes.Select(ic, job)
	haveFirst, haveSecond := false, false
	for _, c := range candidates {
		result := r.Evaluate.Evaluate(c.Route, job, ic.Environment)
		if !result.Success {
			continue
		}
		result.RouteIndex = c.RouteIndex
		result.Actor = c.Route.Route.Actor
		result.IsNewRoute = c.NewActor != nil

		switch {
		case !haveFirst:
			first, haveFirst = result, true
		case result.Cost.Compare(first.Cost) < 0:
			first, second = result, first
			haveSecond = true
		case !haveSecond || result.Cost.Compare(second.Cost) < 0:
			second, haveSecond = result, true
		}
	}
	return first, second, haveFirst
}

func totalMagnitude(cost objective.Cost) float64 {
	total := 0.0
	for _, v := range cost {
		total += v
	}
	return total
}

// NewRecreateWithGaps builds an InsertionHeuristic whose job batches skip
// a random tail each round, diversifying which job wins the round's
// single commit.
func NewRecreateWithGaps(pipeline *constraint.Pipeline, routes RouteSelector, evaluator *Evaluator, selector ResultSelector, ratio float64) *InsertionHeuristic {
	reducer := NewPairJobMapReducer(routes, selector, evaluator)
	return NewInsertionHeuristic(GapsJobSelector{Ratio: ratio}, reducer, pipeline)
}

// NewRecreateWithBlinks builds an InsertionHeuristic that only considers
// a bounded random sample of required jobs each round.
func NewRecreateWithBlinks(pipeline *constraint.Pipeline, routes RouteSelector, evaluator *Evaluator, selector ResultSelector, limit int) *InsertionHeuristic {
	reducer := NewPairJobMapReducer(routes, selector, evaluator)
	return NewInsertionHeuristic(BlinkJobSelector{Limit: limit}, reducer, pipeline)
}

// NewRecreateWithPerturbation builds an InsertionHeuristic whose result
// selection is Noise-perturbed rather than strictly cheapest-first.
func NewRecreateWithPerturbation(pipeline *constraint.Pipeline, routes RouteSelector, evaluator *Evaluator, ratio float64) *InsertionHeuristic {
	reducer := NewPairJobMapReducer(routes, NewNoise(Best{}, ratio), evaluator)
	return NewInsertionHeuristic(AllJobSelector{}, reducer, pipeline)
}

// NewRecreateWithRegret builds an InsertionHeuristic that commits the
// required job with the largest regret each round instead of the
// globally cheapest insertion.
func NewRecreateWithRegret(pipeline *constraint.Pipeline, routes RouteSelector, evaluator *Evaluator) *InsertionHeuristic {
	reducer := NewRegretJobMapReducer(routes, evaluator)
	return NewInsertionHeuristic(AllJobSelector{}, reducer, pipeline)
}
