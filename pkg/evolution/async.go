//go:build async

package evolution

import (
	"sync"
	"time"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/hyperheuristic"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/population"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// AsyncConfig configures AsyncDriver: everything Config needs, plus
// how many parents a generation searches from concurrently and how
// each of those searches gets its own operator selector.
type AsyncConfig struct {
	Config

	// SelectorFactory builds one independent DynamicSelective per
	// actor instead of sharing Config.Selector across goroutines —
	// DynamicSelective mutates its learned reward estimates on every
	// Search call, so sharing one instance would race. Each actor's
	// estimates stay private to that actor for the run's lifetime,
	// the same isolation a fresh heuristic instance per actor gives
	// it.
	SelectorFactory func() *hyperheuristic.DynamicSelective
	// Actors bounds how many parents are searched concurrently each
	// generation. Values <= 0 are treated as 1.
	Actors int
}

// AsyncDriver is the experimental, non-canonical counterpart to
// Driver: where Driver searches from one selected parent at a time,
// AsyncDriver fans a generation's parents out across goroutines, each
// working an exclusively-owned InsertionContext and Environment clone
// so no actor's randomness draw or learned estimate touches another's.
// Results are folded into the shared Population only after every actor
// in the generation has finished, so Population, like Driver's, is
// never mutated concurrently.
//
// This strategy is not the default: its back-pressure and actor-count
// tuning are not as thoroughly proven as the synchronous driver's
// generation loop, which is why it lives behind a build tag.
type AsyncDriver struct {
	cfg    AsyncConfig
	driver Driver
}

// NewAsyncDriver wraps cfg, defaulting InitialSize and Actors to 1 when
// they are not positive. Every actor calls cfg.SelectorFactory, so a nil
// factory panics on the first actor.
func NewAsyncDriver(cfg AsyncConfig) *AsyncDriver {
	if cfg.InitialSize <= 0 {
		cfg.InitialSize = 1
	}
	if cfg.Actors <= 0 {
		cfg.Actors = 1
	}
	return &AsyncDriver{cfg: cfg, driver: Driver{cfg: cfg.Config}}
}

// Run seeds the initial population, then repeats select-fan-out-fold
// generations until cfg.Termination fires, returning the best solution
// found.
func (d *AsyncDriver) Run() (*solution.InsertionContext, bool) {
	d.driver.startedAt = time.Now()
	d.driver.seedInitialPopulation()

	for !d.cfg.Termination.IsTerminated(&d.driver) {
		d.runGeneration()
	}
	return d.driver.BestKnown()
}

// runGeneration selects parents, then searches from every parent on
// its own goroutine bounded by cfg.Actors concurrently in flight at
// once, folding every resulting offspring into the population once the
// whole batch completes.
func (d *AsyncDriver) runGeneration() {
	started := time.Now()
	parents := d.cfg.Population.Select()
	progress := d.cfg.Termination.Estimate(&d.driver)

	// Seeds are drawn from the shared environment's random source
	// sequentially, in this goroutine, before any actor starts — the
	// shared source is documented as safe only under single-threaded
	// use, so no actor goroutine ever touches it directly.
	seeds := make([]uint64, len(parents))
	for i := range parents {
		seeds[i] = uint64(d.cfg.Environment.Random.Source().Int63())
	}

	sem := make(chan struct{}, d.cfg.Actors)
	results := make(chan population.Individual, len(parents))
	var wg sync.WaitGroup

	for i, parent := range parents {
		if d.cfg.Environment.IsReached() {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(parent population.Individual, seed uint64) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- d.runActor(parent, seed, progress)
		}(parent, seeds[i])
	}
	wg.Wait()
	close(results)

	improved := false
	for ind := range results {
		if d.cfg.Population.Add(ind) {
			improved = true
		}
	}

	d.driver.generation++
	stats := population.Statistics{
		Generation: d.driver.generation,
		Progress:   d.cfg.Termination.Estimate(&d.driver),
	}
	d.cfg.Population.OnGeneration(stats)

	if d.cfg.OnGeneration != nil {
		best, _ := d.driver.BestKnown()
		var bestFitness objective.Cost
		if best != nil {
			bestFitness = d.cfg.Hierarchy.Evaluate(best.Solution)
		}
		d.cfg.OnGeneration(Generation{
			Number:         d.driver.generation,
			Improved:       improved,
			Duration:       time.Since(started),
			BestFitness:    bestFitness,
			PopulationSize: d.cfg.Population.Size(),
		})
	}
}

// runActor runs one actor's search: its own selector, its own seeded
// Environment, and a Solution cloned from parent so no other actor's
// in-flight mutation is visible to it.
func (d *AsyncDriver) runActor(parent population.Individual, seed uint64, progress float64) population.Individual {
	actorEnv := &solution.Environment{
		Random:      rng.NewDefault(seed),
		Quota:       d.cfg.Environment.Quota,
		Parallelism: 1,
	}
	actorCtx := &solution.InsertionContext{
		Problem:     parent.Context.Problem,
		Solution:    parent.Context.Solution.Clone(),
		Environment: actorEnv,
	}

	selector := d.cfg.SelectorFactory()
	candidate := selector.Search(asyncActorContext{driver: &d.driver, env: actorEnv, progress: progress}, actorCtx)
	return population.Individual{Context: candidate, Fitness: d.cfg.Hierarchy.Evaluate(candidate.Solution)}
}

// asyncActorContext adapts one actor's private Environment and a
// generation-start progress snapshot into a hyperheuristic.Context.
// BestKnown reads Population.Ranked(), which only ever returns a fresh
// copy of already-sorted state, so concurrent calls from every actor
// in a generation are safe even though no lock guards it; Progress is
// captured once per generation rather than recomputed per actor, since
// Termination implementations are free to mutate their own state on
// Estimate and are not documented safe for concurrent calls.
type asyncActorContext struct {
	driver   *Driver
	env      *solution.Environment
	progress float64
}

func (a asyncActorContext) BestKnown() (*solution.InsertionContext, bool) { return a.driver.BestKnown() }
func (a asyncActorContext) Progress() float64                             { return a.progress }
func (a asyncActorContext) Random() rng.Random                            { return a.env.Random }
