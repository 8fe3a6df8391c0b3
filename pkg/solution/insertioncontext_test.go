package solution_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

func TestNewInsertionContextSharesProblemAndEnvironment(t *testing.T) {
	job := &model.Single{}
	problem := newTestProblem(job)
	env := solution.NewEnvironment(rng.NewDefault(1), 4)

	ic := solution.NewInsertionContext(problem, env)

	if ic.Problem != problem {
		t.Fatal("InsertionContext.Problem should be the same pointer as the input problem")
	}
	if ic.Environment != env {
		t.Fatal("InsertionContext.Environment should be the same pointer as the input environment")
	}
	if len(ic.Solution.Required) != 1 {
		t.Fatalf("len(Solution.Required) = %d, want 1", len(ic.Solution.Required))
	}
}

func TestInsertionContextCloneSharesImmutableFieldsDeepCopiesSolution(t *testing.T) {
	job := &model.Single{}
	problem := newTestProblem(job)
	env := solution.NewEnvironment(rng.NewDefault(1), 4)
	ic := solution.NewInsertionContext(problem, env)

	clone := ic.Clone()
	clone.Solution.MarkUnassigned(job, solution.UnassignedReason{Code: 9})

	if clone.Problem != ic.Problem {
		t.Fatal("clone should share the same Problem pointer")
	}
	if clone.Environment != ic.Environment {
		t.Fatal("clone should share the same Environment pointer")
	}
	if len(ic.Solution.Unassigned) != 0 {
		t.Fatal("mutating the clone's Solution must not affect the original's")
	}
}
