package ruin_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/ruin"
)

func TestAdjustedStringRemovalRemovesContiguousSpan(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2), singleAt(3), singleAt(4), singleAt(5)}
	ic, cost := solvedContext(t, jobs, 7, 4)
	graph := buildGraph(t, jobs, cost, 3)

	op := ruin.NewAdjustedStringRemoval(graph, 2, 1, 0)
	op.Limit = fixedLimit(2)
	op.Run(ic)

	if len(ic.Solution.Required) == 0 {
		t.Fatal("expected at least one job removed")
	}
	if len(ic.Solution.Required) > len(jobs) {
		t.Fatalf("Required = %d, cannot exceed total jobs %d", len(ic.Solution.Required), len(jobs))
	}
}

func TestAdjustedStringRemovalNoopWithoutGraph(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2)}
	ic, _ := solvedContext(t, jobs, 6, 4)

	(&ruin.AdjustedStringRemoval{Limit: fixedLimit(2), AvgLength: 2, MaxStrings: 1}).Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("Required = %d, want 0 (no graph, operator is a no-op)", len(ic.Solution.Required))
	}
}

func TestAdjustedStringRemovalLeavesLockedJobsAssigned(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2), singleAt(3)}
	ic, cost := solvedContext(t, jobs, 6, 4)
	graph := buildGraph(t, jobs, cost, 3)
	ic.Solution.Locked[model.JobID(jobs[1])] = true

	op := ruin.NewAdjustedStringRemoval(graph, 3, 1, 0)
	op.Limit = fixedLimit(3)
	op.Run(ic)

	if !ic.Solution.IsAssigned(jobs[1]) {
		t.Fatal("locked job was removed")
	}
}
