package solution

import (
	"fmt"

	"github.com/vrpsolver/vrpcore/pkg/model"
)

// UnassignedReason records why a job could not be placed: the numeric
// code is the last rejection code observed by the Insertion Evaluator;
// Description is a human-readable gloss for telemetry/logging.
type UnassignedReason struct {
	Code        int
	Description string
}

// SolutionContext is the mutable workspace of one solution attempt:
// routes, the jobs still to be inserted, the jobs given up on, the
// locked jobs, the jobs permanently excluded from consideration, and
// the actor registry.
type SolutionContext struct {
	Routes     []*RouteContext
	Required   []model.Job
	Unassigned map[any]UnassignedReason
	Locked     map[any]bool
	Ignored    []model.Job
	Registry   *Registry

	unassignedJobs map[any]model.Job // JobID -> Job, mirrors Unassigned's keys
	assigned       *bloomFilter      // maybe-assigned filter, see MarkAssigned/MaybeAssigned
}

// NewSolutionContext builds an empty workspace for problem, with every
// job initially required.
func NewSolutionContext(problem *model.Problem) *SolutionContext {
	sc := &SolutionContext{
		Required:       append([]model.Job{}, problem.Plan.Jobs...),
		Unassigned:     make(map[any]UnassignedReason),
		Locked:         make(map[any]bool),
		Registry:       NewRegistry(problem.Fleet),
		unassignedJobs: make(map[any]model.Job),
		assigned:       newBloomFilter(max(len(problem.Plan.Jobs), 1), 0.01),
	}
	for _, lock := range problem.Plan.Locks {
		for _, j := range lock.Jobs() {
			sc.Locked[model.JobID(j)] = true
		}
	}
	return sc
}

func jobKey(j model.Job) string {
	return fmt.Sprintf("%p", model.JobID(j))
}

// MarkAssigned records that job now lives in some route and removes it
// from Required, if present. Called whenever a route gains an activity
// referencing job.
func (sc *SolutionContext) MarkAssigned(j model.Job) {
	sc.assigned.insert(jobKey(j))
	sc.removeFromRequired(j)
}

// MaybeAssigned is a fast, possibly-false-positive pre-check: false means
// job is definitely not assigned anywhere and callers can skip scanning
// Routes entirely.
func (sc *SolutionContext) MaybeAssigned(j model.Job) bool {
	return sc.assigned.maybeContains(jobKey(j))
}

// IsAssigned does the exact check: it returns false when MaybeAssigned
// does, and otherwise scans Routes for an activity referencing job.
func (sc *SolutionContext) IsAssigned(j model.Job) bool {
	if !sc.MaybeAssigned(j) {
		return false
	}
	id := model.JobID(j)
	for _, rc := range sc.Routes {
		for _, a := range rc.Route.Activities {
			if a.Job != nil && model.JobID(a.Job) == id {
				return true
			}
		}
	}
	return false
}

// MoveToRequired transfers every unassigned job back into Required and
// clears Unassigned, the "prepare" step of the Insertion Heuristic
// driver loop.
func (sc *SolutionContext) MoveToRequired() {
	for id, j := range sc.unassignedJobs {
		sc.Required = append(sc.Required, j)
		delete(sc.Unassigned, id)
		delete(sc.unassignedJobs, id)
	}
}

// MarkUnassigned moves job from Required into Unassigned with the given
// reason, removing it from Required if present.
func (sc *SolutionContext) MarkUnassigned(j model.Job, reason UnassignedReason) {
	id := model.JobID(j)
	sc.Unassigned[id] = reason
	sc.unassignedJobs[id] = j
	sc.removeFromRequired(j)
}

// UnassignedJobs returns every job currently recorded as unassigned, for
// constraint modules whose AcceptSolutionState needs to inspect (and
// possibly reclassify) them rather than just their reasons.
func (sc *SolutionContext) UnassignedJobs() []model.Job {
	out := make([]model.Job, 0, len(sc.unassignedJobs))
	for _, j := range sc.unassignedJobs {
		out = append(out, j)
	}
	return out
}

// DropUnassigned removes j from Unassigned without moving it back to
// Required: for jobs that turn out not to have needed assignment at all
// (e.g. an optional break whose policy says to skip it), rather than
// ones that merely failed to place this round.
func (sc *SolutionContext) DropUnassigned(j model.Job) {
	id := model.JobID(j)
	delete(sc.Unassigned, id)
	delete(sc.unassignedJobs, id)
}

func (sc *SolutionContext) removeFromRequired(j model.Job) {
	id := model.JobID(j)
	out := sc.Required[:0]
	for _, r := range sc.Required {
		if model.JobID(r) != id {
			out = append(out, r)
		}
	}
	sc.Required = out
}

// Clone deep-copies the workspace for offspring generation: an
// InsertionContext is exclusively owned by one worker at a time, so
// offspring are deep-copied from parents before mutation.
func (sc *SolutionContext) Clone() *SolutionContext {
	out := &SolutionContext{
		Required:       append([]model.Job{}, sc.Required...),
		Unassigned:     make(map[any]UnassignedReason, len(sc.Unassigned)),
		Locked:         sc.Locked, // immutable across the run, shared
		Ignored:        append([]model.Job{}, sc.Ignored...),
		Registry:       sc.Registry.Clone(),
		unassignedJobs: make(map[any]model.Job, len(sc.unassignedJobs)),
		assigned:       newBloomFilter(max(len(sc.Required)+len(sc.Unassigned), 1), 0.01),
	}
	for k, v := range sc.Unassigned {
		out.Unassigned[k] = v
	}
	for k, v := range sc.unassignedJobs {
		out.unassignedJobs[k] = v
	}
	for _, rc := range sc.Routes {
		clone := rc.Clone()
		out.Routes = append(out.Routes, clone)
		for _, j := range clone.Route.Jobs() {
			out.MarkAssigned(j)
		}
	}
	return out
}
