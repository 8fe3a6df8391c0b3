package ruin

import (
	"sort"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// WorstJobRemoval ranks every currently assigned, unlocked job by its
// marginal detour saving — how much distance cost disappears if the job
// is removed from its current slot — and removes the top chunkSize worst
// offenders.
type WorstJobRemoval struct {
	Limit JobRemovalLimit
	Cost  transport.Cost
}

func NewWorstJobRemoval(cost transport.Cost, limit JobRemovalLimit) *WorstJobRemoval {
	return &WorstJobRemoval{Limit: limit, Cost: cost}
}

func DefaultWorstJobRemoval(cost transport.Cost) *WorstJobRemoval {
	return &WorstJobRemoval{Limit: DefaultJobRemovalLimit(), Cost: cost}
}

type worstCandidate struct {
	job    model.Job
	saving float64
}

func (w *WorstJobRemoval) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	target := chunkSize(ic, w.Limit)
	if target == 0 {
		return
	}

	candidates := w.rank(sc)
	removed := 0
	for _, c := range candidates {
		if removed >= target {
			return
		}
		if ruinJob(sc, c.job) {
			removed++
		}
	}
}

// rank scores every unlocked job by removal saving, highest saving
// (worst-placed) first.
func (w *WorstJobRemoval) rank(sc *solution.SolutionContext) []worstCandidate {
	var out []worstCandidate
	for _, rc := range sc.Routes {
		acts := rc.Route.Activities
		for i := 1; i < len(acts)-1; i++ {
			a := acts[i]
			if a.Job == nil || isLocked(sc, a.Job) {
				continue
			}
			out = append(out, worstCandidate{job: a.Job, saving: w.detourSaving(rc, acts, i)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].saving > out[j].saving })
	return dedupCandidates(out)
}

// detourSaving estimates the distance cost removed if activity i (with
// neighbours i-1, i+1) is dropped from the route.
func (w *WorstJobRemoval) detourSaving(rc *solution.RouteContext, acts []model.Activity, i int) float64 {
	if w.Cost == nil {
		return 0
	}
	profile := rc.Route.Actor.Vehicle.Profile
	prev, cur, next := acts[i-1], acts[i], acts[i+1]
	if prev.Place.Location == nil || cur.Place.Location == nil || next.Place.Location == nil {
		return 0
	}
	toCur := w.Cost.Distance(profile, *prev.Place.Location, *cur.Place.Location, prev.Schedule.Departure)
	fromCur := w.Cost.Distance(profile, *cur.Place.Location, *next.Place.Location, cur.Schedule.Departure)
	direct := w.Cost.Distance(profile, *prev.Place.Location, *next.Place.Location, prev.Schedule.Departure)
	if transport.Unreachable(toCur) || transport.Unreachable(fromCur) || transport.Unreachable(direct) {
		return 0
	}
	costs := rc.Route.Actor.Vehicle.Costs
	return costs.PerDistance * (toCur + fromCur - direct)
}

// dedupCandidates keeps only the first (highest-saving) occurrence of
// each job: a Multi's Singles each produce their own activity and would
// otherwise rank multiple times for the same removal.
func dedupCandidates(in []worstCandidate) []worstCandidate {
	seen := make(map[any]bool, len(in))
	out := make([]worstCandidate, 0, len(in))
	for _, c := range in {
		id := model.JobID(c.job)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	return out
}
