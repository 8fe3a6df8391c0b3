package ruin_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/ruin"
)

func fixedLimit(n int) ruin.JobRemovalLimit {
	return ruin.JobRemovalLimit{Min: n, Max: n, Threshold: 1.0}
}

func TestRandomJobRemovalRemovesExactlyChunkSize(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2), singleAt(3), singleAt(4)}
	ic, _ := solvedContext(t, jobs, 6, 1)

	ruin.NewRandomJobRemoval(fixedLimit(2)).Run(ic)

	if len(ic.Solution.Required) != 2 {
		t.Fatalf("Required = %d, want 2", len(ic.Solution.Required))
	}
}

func TestRandomJobRemovalRespectsLocks(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2)}
	ic, _ := solvedContext(t, jobs, 6, 1)
	ic.Solution.Locked[model.JobID(jobs[0])] = true
	ic.Solution.Locked[model.JobID(jobs[1])] = true

	ruin.NewRandomJobRemoval(fixedLimit(2)).Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("Required = %d, want 0 (every job locked, none removable)", len(ic.Solution.Required))
	}
}

func TestRandomRouteRemovalPullsWholeRoute(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2)}
	ic, _ := solvedContext(t, jobs, 6, 1)

	ruin.NewRandomRouteRemoval(fixedLimit(2)).Run(ic)

	if len(ic.Solution.Required) != 2 {
		t.Fatalf("Required = %d, want 2 (sole route emptied)", len(ic.Solution.Required))
	}
	if len(ic.Solution.Routes[0].Route.Jobs()) != 0 {
		t.Fatalf("route still has %d jobs, want 0", len(ic.Solution.Routes[0].Route.Jobs()))
	}
}
