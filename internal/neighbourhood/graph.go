// Package neighbourhood builds a job-proximity graph over transport costs and
// answers nearest-neighbour and shortest-path queries against it, for use by
// ruin operators that need a geographic or cost-based notion of "nearby".
package neighbourhood

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// scale converts a float transport cost into the int64 edge weight lvlath's
// core.Graph requires, preserving three decimal digits of precision.
const scale = 1000.0

// Graph indexes job locations and exposes proximity queries backed by a
// lvlath core.Graph, connecting every job to its k nearest neighbours by
// transport distance so shortest-path queries stay sparse.
type Graph struct {
	jobs  []model.Job
	ids   map[model.Job]string
	g     *core.Graph
	cost  transport.Cost
	prof  model.Profile
	nearK int
}

// Build constructs a neighbourhood graph over jobs using cost under profile
// for edge weights, connecting each job to its k nearest neighbours.
func Build(jobs []model.Job, cost transport.Cost, profile model.Profile, k int) (*Graph, error) {
	if k < 1 {
		k = 1
	}
	ng := &Graph{
		jobs:  jobs,
		ids:   make(map[model.Job]string, len(jobs)),
		g:     core.NewGraph(core.WithWeighted()),
		cost:  cost,
		prof:  profile,
		nearK: k,
	}

	for i, job := range jobs {
		id := vertexID(i)
		ng.ids[job] = id
		if err := ng.g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("neighbourhood: add vertex %s: %w", id, err)
		}
	}

	dist := make([][]float64, len(jobs))
	for i := range jobs {
		dist[i] = make([]float64, len(jobs))
		for j := range jobs {
			if i == j {
				continue
			}
			dist[i][j] = ng.distance(jobs[i], jobs[j])
		}
	}

	for i := range jobs {
		neighbours := nearestIndices(dist[i], i, k)
		for _, j := range neighbours {
			w := int64(dist[i][j] * scale)
			if w < 0 {
				w = 0
			}
			if _, err := ng.g.AddEdge(vertexID(i), vertexID(j), w); err != nil {
				// Parallel edges from a reciprocal nearest-neighbour pair are
				// expected and harmless; anything else is a real failure.
				if err != core.ErrMultiEdgeNotAllowed {
					return nil, fmt.Errorf("neighbourhood: add edge %d-%d: %w", i, j, err)
				}
			}
		}
	}

	return ng, nil
}

func vertexID(i int) string { return fmt.Sprintf("job-%d", i) }

func (ng *Graph) distance(a, b model.Job) float64 {
	locA, okA := firstLocation(a)
	locB, okB := firstLocation(b)
	if !okA || !okB {
		return math.Inf(1)
	}
	return ng.cost.Distance(ng.prof, locA, locB, 0)
}

func firstLocation(job model.Job) (model.Location, bool) {
	switch j := job.(type) {
	case *model.Single:
		return firstPlaceLocation(j.Places)
	case *model.Multi:
		for _, s := range j.Jobs {
			if loc, ok := firstPlaceLocation(s.Places); ok {
				return loc, true
			}
		}
	}
	return 0, false
}

func firstPlaceLocation(places []model.Place) (model.Location, bool) {
	for _, p := range places {
		if p.Location != nil {
			return *p.Location, true
		}
	}
	return 0, false
}

func nearestIndices(dist []float64, self, k int) []int {
	type pair struct {
		idx int
		d   float64
	}
	pairs := make([]pair, 0, len(dist)-1)
	for j, d := range dist {
		if j == self || math.IsInf(d, 1) {
			continue
		}
		pairs = append(pairs, pair{j, d})
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].d < pairs[b].d })
	if len(pairs) > k {
		pairs = pairs[:k]
	}
	out := make([]int, len(pairs))
	for i, p := range pairs {
		out[i] = p.idx
	}
	return out
}

// Nearest returns up to n jobs nearest to seed by direct transport distance,
// excluding seed itself, ordered nearest-first.
func (ng *Graph) Nearest(seed model.Job, n int) []model.Job {
	seedIdx := -1
	for i, j := range ng.jobs {
		if j == seed {
			seedIdx = i
			break
		}
	}
	if seedIdx < 0 {
		return nil
	}

	type pair struct {
		job model.Job
		d   float64
	}
	pairs := make([]pair, 0, len(ng.jobs)-1)
	for i, j := range ng.jobs {
		if i == seedIdx {
			continue
		}
		d := ng.distance(seed, j)
		if math.IsInf(d, 1) {
			continue
		}
		pairs = append(pairs, pair{j, d})
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].d < pairs[b].d })
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	out := make([]model.Job, len(pairs))
	for i, p := range pairs {
		out[i] = p.job
	}
	return out
}

// ShortestPathDistance returns the neighbourhood-graph shortest path distance
// between two jobs (hopping through the sparse k-NN edges built in Build),
// used by cluster removal's epsilon-neighbourhood estimate when the two jobs
// are not directly linked. Returns math.Inf(1) if unreachable.
func (ng *Graph) ShortestPathDistance(from, to model.Job) (float64, error) {
	fromID, ok := ng.ids[from]
	if !ok {
		return 0, fmt.Errorf("neighbourhood: unknown job %v", from)
	}
	toID, ok := ng.ids[to]
	if !ok {
		return 0, fmt.Errorf("neighbourhood: unknown job %v", to)
	}
	if fromID == toID {
		return 0, nil
	}

	dist, _, err := dijkstra.Dijkstra(ng.g, dijkstra.Source(fromID))
	if err != nil {
		return 0, fmt.Errorf("neighbourhood: dijkstra: %w", err)
	}
	d, ok := dist[toID]
	if !ok || d == math.MaxInt64 {
		return math.Inf(1), nil
	}
	return float64(d) / scale, nil
}

// KthNearestDistances returns, for every job, its distance to its k-th
// nearest neighbour, sorted ascending. Cluster removal uses the curvature
// point of this distribution to auto-estimate an epsilon radius.
func (ng *Graph) KthNearestDistances(k int) []float64 {
	out := make([]float64, 0, len(ng.jobs))
	for i, job := range ng.jobs {
		dist := make([]float64, len(ng.jobs))
		for j := range ng.jobs {
			if i == j {
				dist[j] = math.Inf(1)
				continue
			}
			dist[j] = ng.distance(job, ng.jobs[j])
		}
		sort.Float64s(dist)
		if k-1 < len(dist) && !math.IsInf(dist[k-1], 1) {
			out = append(out, dist[k-1])
		}
	}
	sort.Float64s(out)
	return out
}
