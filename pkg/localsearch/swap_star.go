package localsearch

import (
	"sort"
	"time"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// defaultSwapStarPairCount bounds how many route pairs one SwapStar call
// examines: beyond a handful of proximity-ranked pairs the remaining
// candidates are distant enough that a cross-route swap rarely pays off.
const defaultSwapStarPairCount = 8

// SwapStar exchanges one job between two routes: v currently in ra moves
// into rb and, symmetrically, v' currently in rb moves into ra. Both
// halves must land somewhere feasible for the swap to be kept; route
// pairs are ranked by proximity (cheapest inter-route job-to-job
// distance) and only the closest PairCount pairs are tried, so distant
// routes are compared only when there are no more than PairCount pairs.
type SwapStar struct {
	Evaluate *insertion.Evaluator
	Pipeline *constraint.Pipeline
	// PairCount bounds how many proximity-ranked route pairs one Run call
	// examines. Zero defaults to defaultSwapStarPairCount.
	PairCount int
	// Budget bounds wall-clock time spent on one Run call; callers derive
	// it from a running median of recent generation times so SwapStar
	// never dominates a generation's time budget on its own. Zero means
	// unbounded (examine every sampled pair).
	Budget time.Duration
}

// NewSwapStar builds a SwapStar over evaluate/pipeline with the given
// per-call time budget.
func NewSwapStar(evaluate *insertion.Evaluator, pipeline *constraint.Pipeline, budget time.Duration) *SwapStar {
	return &SwapStar{Evaluate: evaluate, Pipeline: pipeline, Budget: budget}
}

func (s *SwapStar) pairCount() int {
	if s.PairCount > 0 {
		return s.PairCount
	}
	return defaultSwapStarPairCount
}

func (s *SwapStar) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	random := randomOf(ic)
	if random == nil || len(sc.Routes) < 2 {
		return
	}

	var deadline time.Time
	if s.Budget > 0 {
		deadline = time.Now().Add(s.Budget)
	}

	for _, pair := range s.sampleRoutePairs(sc) {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
		s.trySwap(ic, pair[0], pair[1], random)
	}
}

// routePair is a pair of indices into SolutionContext.Routes.
type routePair [2]int

// sampleRoutePairs ranks every route pair by the cheapest distance
// between a job in one and a job in the other, and returns the closest
// ones, up to pairCount.
func (s *SwapStar) sampleRoutePairs(sc *solution.SolutionContext) []routePair {
	n := len(sc.Routes)
	type scored struct {
		pair routePair
		dist float64
	}
	all := make([]scored, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			all = append(all, scored{pair: routePair{i, j}, dist: s.cheapestInterRouteEdge(sc.Routes[i], sc.Routes[j])})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	limit := s.pairCount()
	if limit > len(all) {
		limit = len(all)
	}
	pairs := make([]routePair, limit)
	for i := 0; i < limit; i++ {
		pairs[i] = all[i].pair
	}
	return pairs
}

// cheapestInterRouteEdge is the minimum transport distance between any
// job in ra and any job in rb, under ra's actor's profile.
func (s *SwapStar) cheapestInterRouteEdge(ra, rb *solution.RouteContext) float64 {
	profile := ra.Route.Actor.Vehicle.Profile
	best := -1.0
	for _, a := range ra.Route.TourActivities() {
		if a.Job == nil || a.Place.Location == nil {
			continue
		}
		for _, b := range rb.Route.TourActivities() {
			if b.Job == nil || b.Place.Location == nil {
				continue
			}
			d := s.Evaluate.Cost.Distance(profile, *a.Place.Location, *b.Place.Location, 0)
			if d < 0 {
				continue
			}
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// trySwap exchanges one random unlocked job between ra and rb, keeping
// the exchange only if both halves land somewhere feasible.
func (s *SwapStar) trySwap(ic *solution.InsertionContext, ai, bi int, random rng.Random) {
	sc := ic.Solution
	ra, rb := sc.Routes[ai], sc.Routes[bi]

	v, ok := randomUnlockedJob(ra, random, sc)
	if !ok {
		return
	}
	vPrime, ok := randomUnlockedJob(rb, random, sc)
	if !ok {
		return
	}

	vOriginal := removeForReinsertion(ra, v)
	vPrimeOriginal := removeForReinsertion(rb, vPrime)

	selectRB := singleRouteSelector{route: rb, index: bi}
	selectRA := singleRouteSelector{route: ra, index: ai}
	reduceV := insertion.NewPairJobMapReducer(selectRB, insertion.Best{}, s.Evaluate)
	reduceVPrime := insertion.NewPairJobMapReducer(selectRA, insertion.Best{}, s.Evaluate)

	resultV := reduceV.Reduce(ic, []model.Job{v})
	resultVPrime := reduceVPrime.Reduce(ic, []model.Job{vPrime})

	if !resultV.Success || !resultVPrime.Success {
		restore(ra, vOriginal)
		restore(rb, vPrimeOriginal)
		return
	}

	commit(ic, s.Pipeline, rb, bi, resultV)
	commit(ic, s.Pipeline, ra, ai, resultVPrime)
}
