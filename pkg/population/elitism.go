package population

import (
	"math"
	"sort"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/objective"
)

// DedupFunc reports whether two fitnesses should be treated as the same
// individual once the population is sorted; the default dedup
// collapses individuals with an identical fitness vector.
type DedupFunc func(a, b objective.Cost) bool

// sameFitness is the default DedupFunc.
func sameFitness(a, b objective.Cost) bool { return a.Compare(b) == 0 }

// Elitism is the simple population: it keeps the MaxSize best
// individuals seen so far, sorted by fitness, and offers a random
// sample (always including the current best) as parents.
type Elitism struct {
	Random        rng.Random
	MaxSize       int
	SelectionSize int

	individuals []Individual
	speedRatio  float64
	dedup       DedupFunc
}

// NewElitism builds an Elitism population that dedups individuals by
// exact fitness equality.
func NewElitism(random rng.Random, maxSize, selectionSize int) *Elitism {
	return NewElitismWithDedup(random, maxSize, selectionSize, sameFitness)
}

// NewElitismWithDedup builds an Elitism population with a custom
// DedupFunc, for callers that want to collapse near-duplicates by some
// looser criterion than exact fitness equality.
func NewElitismWithDedup(random rng.Random, maxSize, selectionSize int, dedup DedupFunc) *Elitism {
	if maxSize <= 0 {
		panic("population: max size must be positive")
	}
	return &Elitism{Random: random, MaxSize: maxSize, SelectionSize: selectionSize, speedRatio: 1, dedup: dedup}
}

func (e *Elitism) Add(ind Individual) bool { return e.AddAll([]Individual{ind}) }

func (e *Elitism) AddAll(inds []Individual) bool {
	if len(inds) == 0 {
		return false
	}
	var bestKnown *objective.Cost
	if len(e.individuals) > 0 {
		b := e.individuals[0].Fitness
		bestKnown = &b
	}

	e.individuals = append(e.individuals, inds...)
	e.sort()
	e.truncate()
	return e.improved(bestKnown)
}

// sort orders individuals best-first and collapses consecutive
// duplicates under dedup, mirroring a stable sort followed by
// Vec::dedup_by.
func (e *Elitism) sort() {
	sort.SliceStable(e.individuals, func(i, j int) bool {
		return e.individuals[i].Fitness.Compare(e.individuals[j].Fitness) < 0
	})
	kept := e.individuals[:0]
	for i, ind := range e.individuals {
		if i > 0 && e.dedup(kept[len(kept)-1].Fitness, ind.Fitness) {
			continue
		}
		kept = append(kept, ind)
	}
	e.individuals = kept
}

func (e *Elitism) truncate() {
	if len(e.individuals) > e.MaxSize {
		e.individuals = e.individuals[:e.MaxSize]
	}
}

func (e *Elitism) improved(bestKnown *objective.Cost) bool {
	if bestKnown == nil {
		return true
	}
	if len(e.individuals) == 0 {
		return true
	}
	return bestKnown.Compare(e.individuals[0].Fitness) != 0
}

// Select returns the current best individual plus SelectionSize-1
// uniformly random individuals (possibly repeating, possibly the best
// again), scaled down when recent generations have run slower than
// usual. An empty population selects nothing.
func (e *Elitism) Select() []Individual {
	if len(e.individuals) == 0 {
		return nil
	}
	size := e.SelectionSize
	if e.speedRatio > 0 && e.speedRatio < 1 {
		scaled := int(math.Round(float64(e.SelectionSize) * e.speedRatio))
		if scaled < 1 {
			scaled = 1
		}
		size = scaled
	}
	if size <= 0 {
		return nil
	}
	out := make([]Individual, 0, size)
	out = append(out, e.individuals[0])
	for len(out) < size {
		idx := e.Random.UniformInt(0, len(e.individuals)-1)
		out = append(out, e.individuals[idx])
	}
	return out
}

func (e *Elitism) Ranked() []Individual { return append([]Individual{}, e.individuals...) }
func (e *Elitism) All() []Individual    { return e.Ranked() }
func (e *Elitism) Size() int            { return len(e.individuals) }
func (e *Elitism) Phase() Phase         { return PhaseExploitation }

func (e *Elitism) OnGeneration(stats Statistics) { e.speedRatio = stats.SpeedRatio }
