package ruin

import (
	"github.com/vrpsolver/vrpcore/internal/neighbourhood"
	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// AdjustedStringRemoval removes a contiguous "string" of jobs around a
// random seed activity, then propagates to the seed's nearest neighbour
// routes, removing an aligned string from each, until MaxStrings routes
// have contributed or the overall chunk target is reached.
type AdjustedStringRemoval struct {
	Limit      JobRemovalLimit
	Graph      *neighbourhood.Graph
	AvgLength  float64 // average string length in jobs
	MaxStrings int     // max number of routes (including the seed's) touched
	Alpha      float64 // spread of string length around AvgLength, in [0,1)
}

// NewAdjustedStringRemoval builds an AdjustedStringRemoval with explicit
// parameters.
func NewAdjustedStringRemoval(graph *neighbourhood.Graph, avgLength float64, maxStrings int, alpha float64) *AdjustedStringRemoval {
	return &AdjustedStringRemoval{
		Limit:      DefaultJobRemovalLimit(),
		Graph:      graph,
		AvgLength:  avgLength,
		MaxStrings: maxStrings,
		Alpha:      alpha,
	}
}

// DefaultAdjustedStringRemoval matches the composite's conservative
// everyday variant: short strings, few of them touched per call.
func DefaultAdjustedStringRemoval(graph *neighbourhood.Graph) *AdjustedStringRemoval {
	return NewAdjustedStringRemoval(graph, 10, 3, 0.01)
}

// AggressiveAdjustedStringRemoval matches the composite's rare,
// heavy-destruction variant.
func AggressiveAdjustedStringRemoval(graph *neighbourhood.Graph) *AdjustedStringRemoval {
	return NewAdjustedStringRemoval(graph, 30, 12, 0.02)
}

func (a *AdjustedStringRemoval) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	random := randomOf(ic)
	if random == nil || len(sc.Routes) == 0 || a.Graph == nil {
		return
	}
	target := chunkSize(ic, a.Limit)
	if target == 0 {
		return
	}

	_, seed, ok := selectSeedJob(sc, random)
	if !ok {
		return
	}
	seedRoute := routeOf(sc, seed)
	if seedRoute == nil {
		return
	}

	visited := map[*solution.RouteContext]bool{seedRoute: true}
	removed := a.removeStringAround(sc, seedRoute, seed, random)
	strings := 1

	for strings < a.MaxStrings && removed < target {
		advanced := false
		for _, neighbour := range a.Graph.Nearest(seed, target*6) {
			rc := routeOf(sc, neighbour)
			if rc == nil || visited[rc] || isLocked(sc, neighbour) {
				continue
			}
			visited[rc] = true
			removed += a.removeStringAround(sc, rc, neighbour, random)
			strings++
			advanced = true
			break
		}
		if !advanced {
			break
		}
	}
}

// removeStringAround removes a contiguous run of rc's jobs centered
// (with random asymmetry controlled by Alpha) on job, returning the
// count actually removed (locked jobs inside the span are skipped but
// still count toward the span's width).
func (a *AdjustedStringRemoval) removeStringAround(sc *solution.SolutionContext, rc *solution.RouteContext, job model.Job, random rng.Random) int {
	jobs := rc.Route.Jobs()
	idx := indexOfJob(jobs, job)
	if idx < 0 {
		return 0
	}

	lo := int(a.AvgLength * (1 - a.Alpha))
	hi := int(a.AvgLength*(1+a.Alpha)) + 1
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	length := random.UniformInt(lo, hi)
	if length > len(jobs) {
		length = len(jobs)
	}

	before := random.UniformInt(0, length-1)
	start := idx - before
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(jobs) {
		end = len(jobs)
		start = end - length
		if start < 0 {
			start = 0
		}
	}

	removed := 0
	for k := start; k < end; k++ {
		if ruinJob(sc, jobs[k]) {
			removed++
		}
	}
	return removed
}

func indexOfJob(jobs []model.Job, job model.Job) int {
	id := model.JobID(job)
	for i, j := range jobs {
		if model.JobID(j) == id {
			return i
		}
	}
	return -1
}
