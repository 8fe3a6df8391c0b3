package evolution

import (
	"time"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/hyperheuristic"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/population"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Generation summarizes one pass of the loop, handed to Config's
// OnGeneration callback for logging/telemetry.
type Generation struct {
	Number         int
	Improved       bool
	Duration       time.Duration
	BestFitness    objective.Cost
	PopulationSize int
}

// Config wires together everything one evolution run needs: the
// problem and random environment, the objective ranking, the
// population implementation, the operator selector, how many initial
// solutions to seed the population with, and when to stop.
type Config struct {
	Problem     *model.Problem
	Environment *solution.Environment
	Hierarchy   *objective.Hierarchy
	Population  population.Population
	Selector    *hyperheuristic.DynamicSelective
	Termination Termination

	// InitialHeuristic builds one solution from scratch; it seeds
	// InitialSize individuals into Population before the generation
	// loop starts.
	InitialHeuristic *insertion.InsertionHeuristic
	InitialSize      int

	OnGeneration func(Generation)
}

// Driver runs Config's generation loop and also implements
// hyperheuristic.Context, so it can be passed directly to Selector.Search.
type Driver struct {
	cfg        Config
	generation int
	startedAt  time.Time
}

// NewDriver wraps cfg, defaulting InitialSize to 1 when it is not
// positive.
func NewDriver(cfg Config) *Driver {
	if cfg.InitialSize <= 0 {
		cfg.InitialSize = 1
	}
	return &Driver{cfg: cfg}
}

// Run seeds the initial population, then repeats select-search-accept
// generations until cfg.Termination fires, returning the best solution
// found.
func (d *Driver) Run() (*solution.InsertionContext, bool) {
	d.startedAt = time.Now()
	d.seedInitialPopulation()

	for !d.cfg.Termination.IsTerminated(d) {
		d.runGeneration()
	}
	return d.BestKnown()
}

func (d *Driver) seedInitialPopulation() {
	for i := 0; i < d.cfg.InitialSize; i++ {
		if d.cfg.Environment.IsReached() {
			return
		}
		ic := solution.NewInsertionContext(d.cfg.Problem, d.cfg.Environment)
		if d.cfg.InitialHeuristic != nil {
			d.cfg.InitialHeuristic.Run(ic)
		}
		d.cfg.Population.Add(population.Individual{
			Context: ic,
			Fitness: d.cfg.Hierarchy.Evaluate(ic.Solution),
		})
	}
}

// runGeneration selects parents, searches from each with Selector, and
// folds every improving-or-not offspring back into the population —
// Selector already decides internally which operator to run and learns
// from the outcome either way, so every offspring is worth offering to
// the population regardless of whether it individually improved.
func (d *Driver) runGeneration() {
	started := time.Now()
	parents := d.cfg.Population.Select()

	improved := false
	for _, parent := range parents {
		if d.cfg.Environment.IsReached() {
			break
		}
		candidate := d.cfg.Selector.Search(d, parent.Context)
		fitness := d.cfg.Hierarchy.Evaluate(candidate.Solution)
		if d.cfg.Population.Add(population.Individual{Context: candidate, Fitness: fitness}) {
			improved = true
		}
	}

	d.generation++
	stats := population.Statistics{
		Generation: d.generation,
		Progress:   d.cfg.Termination.Estimate(d),
	}
	d.cfg.Population.OnGeneration(stats)

	if d.cfg.OnGeneration != nil {
		best, _ := d.BestKnown()
		var bestFitness objective.Cost
		if best != nil {
			bestFitness = d.cfg.Hierarchy.Evaluate(best.Solution)
		}
		d.cfg.OnGeneration(Generation{
			Number:         d.generation,
			Improved:       improved,
			Duration:       time.Since(started),
			BestFitness:    bestFitness,
			PopulationSize: d.cfg.Population.Size(),
		})
	}
}

// BestKnown implements hyperheuristic.Context.
func (d *Driver) BestKnown() (*solution.InsertionContext, bool) {
	ranked := d.cfg.Population.Ranked()
	if len(ranked) == 0 {
		return nil, false
	}
	return ranked[0].Context, true
}

// Progress implements hyperheuristic.Context.
func (d *Driver) Progress() float64 { return d.cfg.Termination.Estimate(d) }

// Random implements hyperheuristic.Context.
func (d *Driver) Random() rng.Random { return d.cfg.Environment.Random }
