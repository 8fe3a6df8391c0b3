package constraint

import "github.com/vrpsolver/vrpcore/pkg/model"

// Dims keys owned by the shift-activity materializer. A synthetic job
// produced by ExpandShiftActivities carries exactly one of DimBreakRef /
// DimReloadRef, plus DimShiftOwner naming the actor it is locked to.
const (
	DimBreakRef   = "shift_break_ref"
	DimReloadRef  = "shift_reload_ref"
	DimShiftOwner = "shift_owner"
)

// ExpandShiftActivities returns a copy of problem whose Plan additionally
// requires one job per declared Break and Reload across every actor's
// shift, each locked to its owning actor via model.Lock. Nothing else in
// the insertion path ever turns a declared Break or Reload into a route
// activity — without this, Capacity's reload-interval reset and Breaks'
// satisfied-break check have nothing to observe. Callers that want
// breaks/reloads actually attempted by the Insertion Heuristic call this
// once, before building a solution.InsertionContext; callers that don't
// need them (most existing tests, problems with no declared breaks or
// reloads) can skip it entirely.
func ExpandShiftActivities(problem *model.Problem) *model.Problem {
	jobs := append([]model.Job{}, problem.Plan.Jobs...)
	locks := append([]*model.Lock{}, problem.Plan.Locks...)

	for _, actor := range problem.Fleet.Actors {
		for i := range actor.Detail.Breaks {
			brk := &actor.Detail.Breaks[i]
			job := materializeBreak(brk, actor)
			jobs = append(jobs, job)
			locks = append(locks, lockToActor(actor, job))
		}
		for i := range actor.Detail.Reloads {
			rl := &actor.Detail.Reloads[i]
			job := materializeReload(rl, actor)
			jobs = append(jobs, job)
			locks = append(locks, lockToActor(actor, job))
		}
	}

	return &model.Problem{
		Plan:  model.Plan{Jobs: jobs, Relations: problem.Plan.Relations, Locks: locks},
		Fleet: problem.Fleet,
	}
}

// materializeBreak turns a declared Break into an insertable Single at
// the break's own location (nil for an en-route break, left for the
// Insertion Evaluator's own nil-location handling to reject in that
// case) and duration, tagged so Breaks can recognize it later.
func materializeBreak(brk *model.Break, owner *model.Actor) *model.Single {
	dims := model.NewDimensions().
		Set(DimBreakRef, brk).
		Set(DimShiftOwner, owner)
	return &model.Single{
		Places: []model.Place{{Location: brk.Location, Duration: brk.Duration, Times: brk.Times}},
		Dims:   dims,
	}
}

// materializeReload turns a declared Reload into an insertable Single,
// tagged so Capacity can treat an activity serving it as a load-reset
// point when it splits a route into capacity intervals.
func materializeReload(rl *model.Reload, owner *model.Actor) *model.Single {
	loc := rl.Location
	dims := model.NewDimensions().
		Set(DimReloadRef, rl).
		Set(DimShiftOwner, owner)
	return &model.Single{
		Places: []model.Place{{Location: &loc, Duration: rl.Duration, Times: rl.Times}},
		Dims:   dims,
	}
}

func lockToActor(owner *model.Actor, job model.Job) *model.Lock {
	return &model.Lock{
		Condition: func(a *model.Actor) bool { return a == owner },
		Details:   []model.LockDetail{{Jobs: []model.Job{job}}},
	}
}

// isReloadStop reports whether a is an activity serving a materialized
// Reload job, i.e. a point where Capacity must reset its running load.
func isReloadStop(a model.Activity) bool {
	single, ok := a.Job.(*model.Single)
	if !ok {
		return false
	}
	_, ok = model.Get[*model.Reload](single.Dims, DimReloadRef)
	return ok
}

// breakRefOf reports the declared Break job serves, if job is a
// materialized break Single.
func breakRefOf(job model.Job) (*model.Break, bool) {
	single, ok := job.(*model.Single)
	if !ok {
		return nil, false
	}
	return model.Get[*model.Break](single.Dims, DimBreakRef)
}

// shiftOwnerOf reports the actor a materialized break/reload job is
// locked to.
func shiftOwnerOf(job model.Job) (*model.Actor, bool) {
	single, ok := job.(*model.Single)
	if !ok {
		return nil, false
	}
	return model.Get[*model.Actor](single.Dims, DimShiftOwner)
}
