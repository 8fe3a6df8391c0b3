package population

import (
	"math"
	"sort"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/objective"
)

// paretoFronts splits individuals into successive non-dominated fronts:
// front 0 holds every individual no other individual dominates, front 1
// holds those dominated only by front 0, and so on.
func paretoFronts(individuals []Individual) [][]int {
	n := len(individuals)
	dominatedBy := make([][]int, n)
	domCount := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			switch {
			case individuals[i].Fitness.Dominates(individuals[j].Fitness):
				dominatedBy[i] = append(dominatedBy[i], j)
			case individuals[j].Fitness.Dominates(individuals[i].Fitness):
				domCount[i]++
			}
		}
	}

	var fronts [][]int
	current := make([]int, 0)
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}
	for len(current) > 0 {
		fronts = append(fronts, current)
		next := make([]int, 0)
		for _, i := range current {
			for _, j := range dominatedBy[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}
	return fronts
}

// crowdingDistances scores each individual named by front by how
// isolated it is in objective space from its front-mates, so a
// truncation that must cut a front part-way through keeps the spread
// widest rather than clustering arbitrarily. Boundary individuals on
// each objective get +Inf so they always survive a partial cut.
func crowdingDistances(individuals []Individual, front []int) map[int]float64 {
	distance := make(map[int]float64, len(front))
	for _, i := range front {
		distance[i] = 0
	}
	if len(front) <= 2 {
		for _, i := range front {
			distance[i] = math.Inf(1)
		}
		return distance
	}

	dims := len(individuals[front[0]].Fitness)
	ordered := append([]int{}, front...)
	for m := 0; m < dims; m++ {
		sort.Slice(ordered, func(a, b int) bool {
			return individuals[ordered[a]].Fitness[m] < individuals[ordered[b]].Fitness[m]
		})
		distance[ordered[0]] = math.Inf(1)
		distance[ordered[len(ordered)-1]] = math.Inf(1)
		span := individuals[ordered[len(ordered)-1]].Fitness[m] - individuals[ordered[0]].Fitness[m]
		if span == 0 {
			continue
		}
		for k := 1; k < len(ordered)-1; k++ {
			prev := individuals[ordered[k-1]].Fitness[m]
			next := individuals[ordered[k+1]].Fitness[m]
			distance[ordered[k]] += (next - prev) / span
		}
	}
	return distance
}

// ParetoElitism ranks individuals by Pareto dominance rather than
// Cost's lexicographic order, for callers whose objectives trade off
// against each other rather than forming a strict priority chain.
// Survivors fill front by front; a front that would overflow MaxSize is
// truncated by crowding distance, widest-spread individuals first.
type ParetoElitism struct {
	Random        rng.Random
	MaxSize       int
	SelectionSize int

	individuals []Individual
	ranks       map[int]int
	distances   map[int]float64
	speedRatio  float64
}

func NewParetoElitism(random rng.Random, maxSize, selectionSize int) *ParetoElitism {
	if maxSize <= 0 {
		panic("population: max size must be positive")
	}
	return &ParetoElitism{Random: random, MaxSize: maxSize, SelectionSize: selectionSize, speedRatio: 1}
}

func (p *ParetoElitism) Add(ind Individual) bool { return p.AddAll([]Individual{ind}) }

func (p *ParetoElitism) AddAll(inds []Individual) bool {
	if len(inds) == 0 {
		return false
	}
	before := p.firstFrontKeys()

	p.individuals = append(p.individuals, inds...)
	p.rerank()
	p.truncate()

	if len(before) == 0 {
		return true
	}
	return !p.firstFrontUnchanged(before)
}

// firstFrontKeys fingerprints the current rank-0 front by fitness so a
// later rerank can tell whether the non-dominated front actually moved,
// rather than merely being re-sorted or re-truncated in place.
func (p *ParetoElitism) firstFrontKeys() map[string]bool {
	keys := make(map[string]bool, 4)
	for i, r := range p.ranks {
		if r == 0 {
			keys[costKey(p.individuals[i].Fitness)] = true
		}
	}
	return keys
}

func (p *ParetoElitism) firstFrontUnchanged(before map[string]bool) bool {
	after := p.firstFrontKeys()
	if len(after) != len(before) {
		return false
	}
	for k := range after {
		if !before[k] {
			return false
		}
	}
	return true
}

func costKey(c objective.Cost) string {
	key := make([]byte, 0, len(c)*8)
	for _, v := range c {
		bits := math.Float64bits(v)
		for i := 0; i < 8; i++ {
			key = append(key, byte(bits>>(8*i)))
		}
	}
	return string(key)
}

func (p *ParetoElitism) rerank() {
	fronts := paretoFronts(p.individuals)
	ranks := make(map[int]int, len(p.individuals))
	distances := make(map[int]float64, len(p.individuals))
	for rank, front := range fronts {
		fd := crowdingDistances(p.individuals, front)
		for _, i := range front {
			ranks[i] = rank
			distances[i] = fd[i]
		}
	}
	p.ranks = ranks
	p.distances = distances
}

// truncate keeps the MaxSize individuals with the best (rank,
// -distance) ordering and renumbers ranks/distances to match.
func (p *ParetoElitism) truncate() {
	if len(p.individuals) <= p.MaxSize {
		p.sortIndicesInPlace()
		return
	}
	order := p.orderedIndices()
	order = order[:p.MaxSize]
	kept := make([]Individual, len(order))
	for i, idx := range order {
		kept[i] = p.individuals[idx]
	}
	p.individuals = kept
	p.rerank()
}

func (p *ParetoElitism) orderedIndices() []int {
	order := make([]int, len(p.individuals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if p.ranks[i] != p.ranks[j] {
			return p.ranks[i] < p.ranks[j]
		}
		return p.distances[i] > p.distances[j]
	})
	return order
}

func (p *ParetoElitism) sortIndicesInPlace() {
	order := p.orderedIndices()
	sorted := make([]Individual, len(order))
	for i, idx := range order {
		sorted[i] = p.individuals[idx]
	}
	p.individuals = sorted
	p.rerank()
}

// Select returns a random sample biased toward the first (non-dominated)
// front, always including one of its members when one exists.
func (p *ParetoElitism) Select() []Individual {
	if len(p.individuals) == 0 {
		return nil
	}
	size := p.SelectionSize
	if p.speedRatio > 0 && p.speedRatio < 1 {
		scaled := int(math.Round(float64(p.SelectionSize) * p.speedRatio))
		if scaled < 1 {
			scaled = 1
		}
		size = scaled
	}
	if size <= 0 {
		return nil
	}

	var firstFront []int
	for i, r := range p.ranks {
		if r == 0 {
			firstFront = append(firstFront, i)
		}
	}
	out := make([]Individual, 0, size)
	if len(firstFront) > 0 {
		out = append(out, p.individuals[firstFront[p.Random.UniformInt(0, len(firstFront)-1)]])
	} else {
		out = append(out, p.individuals[0])
	}
	for len(out) < size {
		idx := p.Random.UniformInt(0, len(p.individuals)-1)
		out = append(out, p.individuals[idx])
	}
	return out
}

func (p *ParetoElitism) Ranked() []Individual { return append([]Individual{}, p.individuals...) }
func (p *ParetoElitism) All() []Individual    { return p.Ranked() }
func (p *ParetoElitism) Size() int            { return len(p.individuals) }
func (p *ParetoElitism) Phase() Phase         { return PhaseExploitation }

func (p *ParetoElitism) OnGeneration(stats Statistics) { p.speedRatio = stats.SpeedRatio }
