package localsearch_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/localsearch"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// countingOperator counts how many times it ran and, on its first call
// only, drops one job back to unassigned — a cheap stand-in for a
// mutation that sometimes makes things worse.
type countingOperator struct {
	calls       int
	dropOnFirst bool
}

func (c *countingOperator) Run(ic *solution.InsertionContext) {
	c.calls++
	if c.dropOnFirst && c.calls == 1 {
		rc := ic.Solution.Routes[0]
		jobs := rc.Route.Jobs()
		if len(jobs) == 0 {
			return
		}
		job := jobs[0]
		rc.RemoveJob(job)
		ic.Solution.MarkUnassigned(job, solution.UnassignedReason{Description: "dropped for test"})
	}
}

func TestBranchingAlwaysDelegatesWhenChanceIsZero(t *testing.T) {
	ic, _, _, jobs := threeJobRoute(t, 1)
	inner := &countingOperator{}
	hierarchy := objective.NewHierarchy(objective.UnassignedCount{})

	b := localsearch.NewBranching(inner, hierarchy, 0, 0, 0.5, 1, 1, 1, 10)
	b.Run(ic)

	if inner.calls != 1 {
		t.Fatalf("inner.calls = %d, want 1 (zero branching chance always delegates once)", inner.calls)
	}
	if len(ic.Solution.Unassigned) != 0 || len(ic.Solution.Routes[0].Route.Jobs()) != len(jobs) {
		t.Fatalf("solution changed even though inner is a no-op variant")
	}
}

func TestBranchingForksMultipleTimesWhenChanceIsOne(t *testing.T) {
	ic, _, _, _ := threeJobRoute(t, 1)
	inner := &countingOperator{}
	hierarchy := objective.NewHierarchy(objective.UnassignedCount{})

	b := localsearch.NewBranching(inner, hierarchy, 1, 1, 0.5, 1, 3, 3, 10)
	b.Run(ic)

	if inner.calls != 3 {
		t.Fatalf("inner.calls = %d, want 3 (chance=1 always forks the full chain length)", inner.calls)
	}
}

func TestBranchingSingleGenerationChainRejectsAWorseChild(t *testing.T) {
	ic, _, _, jobs := threeJobRoute(t, 1)
	inner := &countingOperator{dropOnFirst: true}
	hierarchy := objective.NewHierarchy(objective.UnassignedCount{})

	// A single-generation chain's accept-worse probability is
	// 1-(1/1)^steepness = 0, so a strictly worse child can never be
	// kept: the original (better) parent must survive.
	b := localsearch.NewBranching(inner, hierarchy, 1, 1, 0.5, 1, 1, 1, 10)
	b.Run(ic)

	if len(ic.Solution.Unassigned) != 0 {
		t.Fatalf("Unassigned = %d, want 0 (the worse child must be rejected)", len(ic.Solution.Unassigned))
	}
	if got := len(ic.Solution.Routes[0].Route.Jobs()); got != len(jobs) {
		t.Fatalf("route has %d jobs, want %d", got, len(jobs))
	}
}
