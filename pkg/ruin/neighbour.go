package ruin

import (
	"github.com/vrpsolver/vrpcore/internal/neighbourhood"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// NeighbourRemoval picks a random seed job, then removes it plus its
// nearest neighbours by transport cost (via the shared neighbourhood
// Graph) until chunkSize jobs have been pulled out.
type NeighbourRemoval struct {
	Limit JobRemovalLimit
	Graph *neighbourhood.Graph
}

func NewNeighbourRemoval(graph *neighbourhood.Graph, limit JobRemovalLimit) *NeighbourRemoval {
	return &NeighbourRemoval{Limit: limit, Graph: graph}
}

func DefaultNeighbourRemoval(graph *neighbourhood.Graph) *NeighbourRemoval {
	return &NeighbourRemoval{Limit: DefaultJobRemovalLimit(), Graph: graph}
}

func (n *NeighbourRemoval) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	target := chunkSize(ic, n.Limit)
	if target == 0 || n.Graph == nil {
		return
	}

	_, seed, ok := selectSeedJob(sc, randomOf(ic))
	if !ok {
		return
	}

	removed := 0
	if ruinJob(sc, seed) {
		removed++
	}
	if removed >= target {
		return
	}

	for _, neighbour := range n.Graph.Nearest(seed, target*4) {
		if removed >= target {
			return
		}
		if ruinJob(sc, neighbour) {
			removed++
		}
	}
}
