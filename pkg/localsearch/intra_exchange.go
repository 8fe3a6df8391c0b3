package localsearch

import (
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// IntraRouteExchange picks a random route, pulls one non-locked job back
// out of it, and reinserts it into the same route with a noisy selector:
// most attempts land the job back close to where it started, but the
// noise occasionally accepts a strictly worse position that later turns
// out to open up a better one for a neighbouring job. A reinsertion that
// finds no feasible position at all restores the route exactly as it was.
type IntraRouteExchange struct {
	Evaluate *insertion.Evaluator
	Pipeline *constraint.Pipeline
	// Ratio is the Noise selector's perturbation ratio (e.g. 0.1 for
	// ±10%). Zero falls back to strict Best selection.
	Ratio float64
}

// NewIntraRouteExchange builds an IntraRouteExchange over evaluate/pipeline
// with the given noise ratio.
func NewIntraRouteExchange(evaluate *insertion.Evaluator, pipeline *constraint.Pipeline, ratio float64) *IntraRouteExchange {
	return &IntraRouteExchange{Evaluate: evaluate, Pipeline: pipeline, Ratio: ratio}
}

func (x *IntraRouteExchange) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	random := randomOf(ic)
	if random == nil {
		return
	}
	idx, ok := randomUnlockedRoute(sc, random)
	if !ok {
		return
	}
	rc := sc.Routes[idx]
	job, ok := randomUnlockedJob(rc, random, sc)
	if !ok {
		return
	}

	original := removeForReinsertion(rc, job)

	selector := singleRouteSelector{route: rc, index: idx}
	reducer := insertion.NewPairJobMapReducer(selector, insertion.NewNoise(insertion.Best{}, x.Ratio), x.Evaluate)
	result := reducer.Reduce(ic, []model.Job{job})

	if !result.Success {
		restore(rc, original)
		return
	}
	commit(ic, x.Pipeline, rc, idx, result)
}
