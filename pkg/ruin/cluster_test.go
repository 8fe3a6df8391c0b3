package ruin_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/ruin"
)

func TestClusterRemovalRemovesJobsWithinBounds(t *testing.T) {
	jobs := []model.Job{
		singleAt(1), singleAt(2), // a tight pair
		singleAt(8), singleAt(9), // a second tight pair, far from the first
	}
	ic, cost := solvedContext(t, jobs, 11, 5)
	graph := buildGraph(t, jobs, cost, 2)

	op := ruin.NewClusterRemoval(jobs, graph, 2, fixedLimit(2))
	op.Run(ic)

	if len(ic.Solution.Required) == 0 {
		t.Fatal("expected at least one job removed")
	}
	if len(ic.Solution.Required) > len(jobs) {
		t.Fatalf("Required = %d, cannot exceed total jobs %d", len(ic.Solution.Required), len(jobs))
	}
}

func TestClusterRemovalNoopWhenEveryJobIsNoise(t *testing.T) {
	// minPts larger than the whole job set: no point can ever reach core
	// density, so every job is noise and no cluster forms.
	jobs := []model.Job{singleAt(1), singleAt(9)}
	ic, cost := solvedContext(t, jobs, 11, 5)
	graph := buildGraph(t, jobs, cost, 1)

	op := ruin.NewClusterRemoval(jobs, graph, 10, fixedLimit(1))
	op.Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("Required = %d, want 0 (no clusters formed)", len(ic.Solution.Required))
	}
}
