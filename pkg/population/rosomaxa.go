package population

import (
	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/objective"
)

// RosomaxaConfig holds Rosomaxa's tunables.
type RosomaxaConfig struct {
	SelectionSize int
	EliteSize     int
	// NodeSize is how many diverse representative individuals Select
	// takes from the exploration-phase network; the network itself holds
	// up to NodeSize*4 cells.
	NodeSize int
	// ExplorationRatio is the fraction of a run's progress (see
	// Statistics.Progress) spent in the exploration phase before
	// Rosomaxa falls back to pure elitism.
	ExplorationRatio float64
	// InitialSize is how many individuals are buffered before the
	// exploration network is built; below this the population behaves
	// like a plain append-only buffer plus elite tracking.
	InitialSize int
}

// DefaultRosomaxaConfig mirrors the reference tuning: an elite archive
// of 2, up to 2 representative individuals taken from the diversity
// network per Select, 90% of a run spent exploring before switching to
// pure exploitation.
func DefaultRosomaxaConfig(selectionSize int) RosomaxaConfig {
	return RosomaxaConfig{
		SelectionSize:    selectionSize,
		EliteSize:        2,
		NodeSize:         2,
		ExplorationRatio: 0.9,
		InitialSize:      4,
	}
}

type rosomaxaPhase int

const (
	rosomaxaInitial rosomaxaPhase = iota
	rosomaxaExploration
	rosomaxaExploitation
)

// Rosomaxa keeps two populations at once: a small Elitism archive that
// always tracks the best solutions found (used for exploitation), and
// a diversity network of representative-but-not-necessarily-best
// solutions (used for exploration). Early in a run it buffers
// individuals until it has enough to build the diversity network; once
// the run's progress passes ExplorationRatio it stops updating the
// network and behaves like plain Elitism.
type Rosomaxa struct {
	Random rng.Random
	Config RosomaxaConfig

	elite   *Elitism
	phase   rosomaxaPhase
	initial []Individual
	network *diversityNetwork
}

// NewRosomaxa builds a Rosomaxa population.
func NewRosomaxa(random rng.Random, config RosomaxaConfig) *Rosomaxa {
	return &Rosomaxa{
		Random: random,
		Config: config,
		elite:  NewElitism(random, max(config.EliteSize, 1), max(config.SelectionSize, 1)),
		phase:  rosomaxaInitial,
	}
}

func (r *Rosomaxa) Add(ind Individual) bool { return r.AddAll([]Individual{ind}) }

func (r *Rosomaxa) AddAll(inds []Individual) bool {
	if len(inds) == 0 {
		return false
	}
	improved := r.elite.AddAll(inds)

	switch r.phase {
	case rosomaxaInitial:
		r.initial = append(r.initial, inds...)
		if len(r.initial) >= r.Config.InitialSize {
			r.network = newDiversityNetwork(r.Random, max(r.Config.NodeSize, 1)*4)
			for _, ind := range r.initial {
				r.network.store(ind)
			}
			r.initial = nil
			r.phase = rosomaxaExploration
		}
	case rosomaxaExploration:
		for _, ind := range inds {
			r.network.store(ind)
		}
	case rosomaxaExploitation:
		// network retirement: exploitation draws solely from elite.
	}
	return improved
}

// Select offers the current elite best plus, while still exploring, a
// sample of the network's diverse representative individuals so the
// next generation's parents are not all clustered around the same
// solution.
func (r *Rosomaxa) Select() []Individual {
	out := r.elite.Select()
	if r.phase == rosomaxaExploration && r.network != nil {
		out = append(out, r.network.sample(r.Config.NodeSize)...)
	}
	return out
}

func (r *Rosomaxa) Ranked() []Individual { return r.elite.Ranked() }

func (r *Rosomaxa) All() []Individual {
	out := r.elite.All()
	if r.network != nil {
		out = append(out, r.network.all()...)
	}
	return out
}

func (r *Rosomaxa) Size() int { return r.elite.Size() }

func (r *Rosomaxa) Phase() Phase {
	if r.phase == rosomaxaExploitation {
		return PhaseExploitation
	}
	return PhaseExploration
}

// OnGeneration feeds speed statistics to the elite archive and switches
// from exploration to exploitation once the run's progress passes
// ExplorationRatio.
func (r *Rosomaxa) OnGeneration(stats Statistics) {
	r.elite.OnGeneration(stats)
	if r.phase == rosomaxaExploration && stats.Progress >= r.Config.ExplorationRatio {
		r.phase = rosomaxaExploitation
		r.network = nil
	}
}

// diversityNetwork is a deliberately simplified stand-in for the
// growing self-organizing map used upstream to spread representative
// solutions across fitness space: instead of a network of nodes that
// grows and splits as training error accumulates, it keeps a fixed
// number of cells, each holding one representative individual, and
// assigns a newly stored individual to a cell by where its fitness
// falls within the range of fitnesses already seen. A cell only
// replaces its occupant with a strictly better individual, so cells
// converge toward locally-best representatives of their fitness
// region rather than globally collapsing onto the single best
// solution the way a plain top-N archive would.
type diversityNetwork struct {
	random   rng.Random
	cells    []Individual
	occupied []bool
	lo, hi   float64
	hasRange bool
}

func newDiversityNetwork(random rng.Random, capacity int) *diversityNetwork {
	if capacity < 1 {
		capacity = 1
	}
	return &diversityNetwork{random: random, cells: make([]Individual, capacity), occupied: make([]bool, capacity)}
}

func (n *diversityNetwork) store(ind Individual) {
	value := leadingValue(ind.Fitness)
	if !n.hasRange {
		n.lo, n.hi, n.hasRange = value, value, true
	} else {
		if value < n.lo {
			n.lo = value
		}
		if value > n.hi {
			n.hi = value
		}
	}

	idx := n.bucketOf(value)
	if !n.occupied[idx] || ind.Fitness.Compare(n.cells[idx].Fitness) < 0 {
		n.cells[idx] = ind
		n.occupied[idx] = true
	}
}

func (n *diversityNetwork) bucketOf(value float64) int {
	span := n.hi - n.lo
	if span <= 0 {
		return 0
	}
	frac := (value - n.lo) / span
	idx := int(frac * float64(len(n.cells)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(n.cells) {
		idx = len(n.cells) - 1
	}
	return idx
}

func (n *diversityNetwork) all() []Individual {
	out := make([]Individual, 0, len(n.cells))
	for i, occ := range n.occupied {
		if occ {
			out = append(out, n.cells[i])
		}
	}
	return out
}

// sample returns up to count occupied cells, chosen uniformly at
// random without replacement.
func (n *diversityNetwork) sample(count int) []Individual {
	candidates := n.all()
	if count >= len(candidates) {
		return candidates
	}
	out := make([]Individual, 0, count)
	picked := make(map[int]bool, count)
	for len(out) < count {
		idx := n.random.UniformInt(0, len(candidates)-1)
		if picked[idx] {
			continue
		}
		picked[idx] = true
		out = append(out, candidates[idx])
	}
	return out
}

func leadingValue(c objective.Cost) float64 {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}
