// Package insertion implements per-job, per-route, per-position cost
// evaluation and the select-evaluate-reduce-apply driver loop that
// reconstructs a solution after ruin.
package insertion

import (
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/objective"
)

// Placement is one (activity, tour insertion index) pair produced for a
// successful insertion; a Multi job's Success carries one Placement per
// constituent Single, in the order they were placed.
type Placement struct {
	Activity model.Activity
	// Index is the tour position (excluding the shift-start sentinel)
	// RouteContext.InsertAt expects.
	Index int
}

// Result is the tagged Success/Failure variant of an insertion attempt.
// Success is true iff the job was placed; only the fields for the
// matching variant are meaningful.
type Result struct {
	Success bool

	// Success fields.
	Cost       objective.Cost
	Job        model.Job
	Placements []Placement
	RouteIndex int
	Actor      *model.Actor
	IsNewRoute bool

	// Failure fields.
	Code    constraint.Code
	Stopped bool
}

// Failure builds a Failure Result carrying the last observed rejection
// code: when no feasible position exists, the caller reports the last
// code seen across every leg and place tried.
func Failure(job model.Job, code constraint.Code, stopped bool) Result {
	return Result{Job: job, Code: code, Stopped: stopped}
}
