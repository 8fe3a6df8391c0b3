package hyperheuristic

import (
	"math"
	"sort"
	"time"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Operator is any search step that improves or perturbs a solution in
// place. pkg/ruin.Ruin and pkg/localsearch.Search both already satisfy
// it, so either can be registered with a DynamicSelective without
// adapters.
type Operator interface {
	Run(ic *solution.InsertionContext)
}

// WeightedOperator names a registered Operator; the name exists only
// for logging and estimate inspection, not for the selection logic
// itself.
type WeightedOperator struct {
	Operator Operator
	Name     string
}

// Context gives DynamicSelective the slice of the surrounding
// evolutionary run it needs — the best solution found so far, how far
// through the run's termination condition the run currently is, and a
// source of randomness — without coupling this package to whatever
// owns the run loop.
type Context interface {
	BestKnown() (*solution.InsertionContext, bool)
	Progress() float64
	Random() rng.Random
}

// DynamicSelective chooses which registered Operator to run next by
// maintaining, per starting SearchStateKind (BestKnown or Diverse), a
// learned reward estimate per operator, and updating that estimate
// after every call to Search with a single-step Monte Carlo rule.
type DynamicSelective struct {
	Hierarchy *objective.Hierarchy
	Operators []WeightedOperator

	estimates map[SearchStateKind]*ActionEstimates
	tracker   durationTracker
	calls     int
}

// NewDynamicSelective builds a selector over operators, ranking
// solutions with hierarchy. Every operator starts with a zero reward
// estimate in both states, so the first several calls behave like a
// uniform random policy until the estimates diverge.
func NewDynamicSelective(hierarchy *objective.Hierarchy, operators []WeightedOperator) *DynamicSelective {
	estimates := make(map[SearchStateKind]*ActionEstimates, 2)
	for _, kind := range []SearchStateKind{BestKnown, Diverse} {
		e := newActionEstimates()
		for i := range operators {
			e.Set(SearchAction{HeuristicIndex: i}, 0)
		}
		estimates[kind] = e
	}
	return &DynamicSelective{Hierarchy: hierarchy, Operators: operators, estimates: estimates}
}

// Search clones original, runs one operator chosen by the current
// policy against the clone, classifies the outcome, and folds the
// resulting reward into that operator's estimate for the state
// original started in. The clone is returned regardless of whether it
// improved on original; the caller decides whether to keep it.
func (d *DynamicSelective) Search(ctx Context, original *solution.InsertionContext) *solution.InsertionContext {
	if len(d.Operators) == 0 {
		return original.Clone()
	}
	random := ctx.Random()
	best, hasBest := ctx.BestKnown()

	fitnessOld := d.Hierarchy.Evaluate(original.Solution)
	startKind := Diverse
	var fitnessBest objective.Cost
	if hasBest {
		fitnessBest = d.Hierarchy.Evaluate(best.Solution)
		if fitnessOld.Compare(fitnessBest) == 0 {
			startKind = BestKnown
		}
	}
	estimates := d.estimates[startKind]

	actions := make([]SearchAction, len(d.Operators))
	for i := range d.Operators {
		actions[i] = SearchAction{HeuristicIndex: i}
	}

	progress := ctx.Progress()
	var action SearchAction
	if random.IsHit(annealedExploration(progress)) {
		action = estimates.Random(random, actions)
	} else {
		action = estimates.Weighted(random, actions)
	}

	started := time.Now()
	candidate := original.Clone()
	d.Operators[action.HeuristicIndex].Operator.Run(candidate)
	ratio := d.tracker.ratio(time.Since(started))

	fitnessNew := d.Hierarchy.Evaluate(candidate.Solution)
	kind := classify(hasBest, fitnessBest, fitnessOld, fitnessNew)
	state := SearchState{Kind: kind, Ratio: MedianRatio{Ratio: ratio}}

	estimates.Set(action, monteCarloUpdate(estimates.Get(action), state.Reward(), annealedLearningRate(progress)))

	d.calls++
	if d.calls%50 == 0 {
		d.exchangeEstimates()
	}
	return candidate
}

func classify(hasBest bool, fitnessBest, fitnessOld, fitnessNew objective.Cost) SearchStateKind {
	switch {
	case !hasBest:
		return BestMajorImprovement
	case fitnessNew.Compare(fitnessBest) < 0:
		return classifyImprovementMagnitude(fitnessBest, fitnessNew)
	case fitnessNew.Compare(fitnessOld) < 0:
		return DiverseImprovement
	default:
		return Stagnated
	}
}

// classifyImprovementMagnitude distinguishes a major best-solution
// improvement from a minor one by the relative change in the leading
// (most significant) objective dimension — a one-dimensional stand-in
// for the original's full relative-distance-over-the-whole-vector
// computation.
func classifyImprovementMagnitude(from, to objective.Cost) SearchStateKind {
	f, t := leadingValue(from), leadingValue(to)
	denom := math.Abs(f)
	if denom < 1 {
		denom = 1
	}
	if (f-t)/denom > 0.01 {
		return BestMajorImprovement
	}
	return BestMinorImprovement
}

func leadingValue(c objective.Cost) float64 {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

// exchangeEstimates periodically hands Diverse's learned estimates to
// BestKnown: when BestKnown's top estimate is zero or below while
// Diverse's top estimate is positive, every operator's BestKnown
// estimate is replaced by its Diverse estimate.
func (d *DynamicSelective) exchangeEstimates() {
	bestKnown, diverse := d.estimates[BestKnown], d.estimates[Diverse]
	_, bestValue, okBest := bestKnown.Max()
	_, diverseValue, okDiverse := diverse.Max()
	if !okBest || !okDiverse || bestValue > 0 || diverseValue <= 0 {
		return
	}
	for i := range d.Operators {
		action := SearchAction{HeuristicIndex: i}
		bestKnown.Set(action, diverse.Get(action))
	}
}

// durationTracker keeps a bounded, resorted-on-read sample of recent
// step durations, standing in for a streaming remedian estimator: at
// the sample counts one run produces, resorting a small ring buffer on
// every read is plenty cheap and exactly correct, unlike a remedian's
// approximation.
type durationTracker struct {
	samples []time.Duration
	next    int
}

const durationTrackerCapacity = 31

func (t *durationTracker) ratio(d time.Duration) float64 {
	if len(t.samples) < durationTrackerCapacity {
		t.samples = append(t.samples, d)
	} else {
		t.samples[t.next] = d
		t.next = (t.next + 1) % durationTrackerCapacity
	}
	median := t.median()
	if median <= 0 {
		return 1
	}
	return float64(d) / float64(median)
}

func (t *durationTracker) median() time.Duration {
	sorted := append([]time.Duration(nil), t.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)/2]
}
