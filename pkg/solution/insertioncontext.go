package solution

import "github.com/vrpsolver/vrpcore/pkg/model"

// InsertionContext is the unit of work every search operator reads and
// mutates: the mutable solution workspace, the immutable problem it
// solves, and the shared run environment.
type InsertionContext struct {
	Problem     *model.Problem
	Solution    *SolutionContext
	Environment *Environment
}

// NewInsertionContext builds the starting InsertionContext for problem:
// every job required, every actor free, no routes yet.
func NewInsertionContext(problem *model.Problem, env *Environment) *InsertionContext {
	return &InsertionContext{
		Problem:     problem,
		Solution:    NewSolutionContext(problem),
		Environment: env,
	}
}

// Clone deep-copies the mutable Solution while sharing the immutable
// Problem and Environment, for offspring generation: an InsertionContext
// is exclusively owned by one worker at a time, so offspring are
// deep-copied from parents before mutation.
func (ic *InsertionContext) Clone() *InsertionContext {
	return &InsertionContext{
		Problem:     ic.Problem,
		Solution:    ic.Solution.Clone(),
		Environment: ic.Environment,
	}
}
