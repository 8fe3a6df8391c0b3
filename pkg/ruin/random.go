package ruin

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// RandomJobRemoval removes a uniformly random, lock-respecting selection
// of up to chunkSize jobs from wherever they currently sit.
type RandomJobRemoval struct {
	Limit JobRemovalLimit
}

// NewRandomJobRemoval builds a RandomJobRemoval with the given limit.
func NewRandomJobRemoval(limit JobRemovalLimit) *RandomJobRemoval {
	return &RandomJobRemoval{Limit: limit}
}

// DefaultRandomJobRemoval matches the conservative default weight used
// as a small always-on perturbation alongside a composite's main operator.
func DefaultRandomJobRemoval() *RandomJobRemoval {
	return &RandomJobRemoval{Limit: DefaultJobRemovalLimit()}
}

func (r *RandomJobRemoval) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	target := chunkSize(ic, r.Limit)
	removed := 0
	for removed < target {
		_, job, ok := selectSeedJob(sc, randomOf(ic))
		if !ok {
			return
		}
		if ruinJob(sc, job) {
			removed++
		}
	}
}

// RandomRouteRemoval removes every job of a uniformly random selection of
// whole routes, up to chunkSize jobs total.
type RandomRouteRemoval struct {
	Limit JobRemovalLimit
}

func NewRandomRouteRemoval(limit JobRemovalLimit) *RandomRouteRemoval {
	return &RandomRouteRemoval{Limit: limit}
}

func DefaultRandomRouteRemoval() *RandomRouteRemoval {
	return &RandomRouteRemoval{Limit: DefaultJobRemovalLimit()}
}

func (r *RandomRouteRemoval) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	target := chunkSize(ic, r.Limit)
	removed := 0
	attempts := 0
	for removed < target && attempts < len(sc.Routes)+1 {
		rc, ok := randomUnlockedRoute(sc, randomOf(ic))
		if !ok {
			return
		}
		attempts++
		for _, job := range append([]model.Job(nil), rc.Route.Jobs()...) {
			if removed >= target {
				break
			}
			if ruinJob(sc, job) {
				removed++
			}
		}
	}
}
