package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// CodeCapacity is the rejection code for any capacity overrun, shared
// across both capacity dimensions (single or multi).
const CodeCapacity Code = 200

// Capacity maintains per-activity max-past-load and max-future-load,
// rejecting an insertion whose running load would exceed the actor's
// vehicle capacity at any point in the tour, and resets the running load
// at every materialized Reload stop. Generic over the load representation
// so the same module serves both SingleCapacity and MultiCapacity fleets.
type Capacity[C model.Capacity[C]] struct {
	NoAcceptInsertion
	NoAcceptSolutionState
	NoMerge

	VehicleCapacity func(actor *model.Actor) C
}

// NewCapacity builds the module; capacityOf extracts a vehicle's
// capacity from its Dimensions (callers typically close over a known key).
func NewCapacity[C model.Capacity[C]](capacityOf func(actor *model.Actor) C) *Capacity[C] {
	return &Capacity[C]{VehicleCapacity: capacityOf}
}

// demandOf reads the demand a Single declares under its own "demand"
// Dims key.
func demandOf[C model.Capacity[C]](single *model.Single) model.Demand[C] {
	var zero model.Demand[C]
	if single == nil {
		return zero
	}
	if d, ok := model.Get[model.Demand[C]](single.Dims, "demand"); ok {
		return d
	}
	return zero
}

// resolveSingle finds the Single actually responsible for an activity's
// demand. An activity serving a Single job carries that Single directly;
// a Multi's constituent activities all carry the parent Multi as their
// Job instead (so RemoveJob and Route.Jobs' dedup treat the whole Multi
// as one unit), so the specific pickup- or delivery-Single has to be
// recovered by matching the activity's Place back to one of the Multi's
// Singles' declared Places.
func resolveSingle(job model.Job, place model.Place) *model.Single {
	switch j := job.(type) {
	case *model.Single:
		return j
	case *model.Multi:
		for _, s := range j.Jobs {
			for _, p := range s.Places {
				if p.Location == place.Location && p.Duration == place.Duration {
					return s
				}
			}
		}
	}
	return nil
}

func activityDemand[C model.Capacity[C]](a model.Activity) model.Demand[C] {
	var zero model.Demand[C]
	if a.Job == nil {
		return zero
	}
	return demandOf[C](resolveSingle(a.Job, a.Place))
}

func pickupAmount[C model.Capacity[C]](d model.Demand[C]) C {
	return d.PickupStatic.Add(d.PickupDynamic)
}

func deliveryAmount[C model.Capacity[C]](d model.Demand[C]) C {
	return d.DeliveryStatic.Add(d.DeliveryDynamic)
}

// loadInterval is one reload-delimited run of activity indices, both
// ends inclusive, over which load accumulates before resetting.
type loadInterval struct{ lo, hi int }

// reloadIntervals splits acts at every activity serving a materialized
// Reload: such an activity's own past/future load is always zero (it is
// the reset itself), so it is excluded from the runs on either side of
// it rather than included in either one's accumulation.
func reloadIntervals(acts []model.Activity) []loadInterval {
	var runs []loadInterval
	lo := -1
	for i, a := range acts {
		if isReloadStop(a) {
			if lo >= 0 {
				runs = append(runs, loadInterval{lo, i - 1})
			}
			lo = i + 1
			continue
		}
		if lo < 0 {
			lo = i
		}
	}
	if lo >= 0 && lo < len(acts) {
		runs = append(runs, loadInterval{lo, len(acts) - 1})
	}
	return runs
}

// AcceptRouteState computes, for every activity, the load carried away
// from it (max-past-load) and the worst load anywhere from it to the end
// of its reload interval (max-future-load). Per spec, static delivery
// demand rides from the start of its interval (it must already be
// onboard to be dropped off later) and depletes at its own activity;
// static pickup demand only joins at its own activity and rides to the
// interval's end; dynamic demand (a job's own pickup/delivery pair) joins
// at its pickup and leaves at its own delivery, never touching the
// interval baseline.
func (c *Capacity[C]) AcceptRouteState(rc *solution.RouteContext) {
	acts := rc.Route.Activities
	n := len(acts)
	if n == 0 {
		return
	}

	past := make([]C, n)
	future := make([]C, n)

	for _, run := range reloadIntervals(acts) {
		runPastLoad[C](acts, run, past)
		runFutureLoad[C](past, run, future)
	}

	for i := 0; i < n; i++ {
		solution.SetActivity(rc.State, i, keyMaxPastLoad, past[i])
		solution.SetActivity(rc.State, i, keyMaxFutureLoad, future[i])
	}
}

// runPastLoad fills past[run.lo..run.hi]: it starts at the sum of every
// static delivery demand anywhere in the run (all already riding, loaded
// before the run's first stop) and is adjusted by each activity's own
// pickup/delivery amounts walking the run forward.
func runPastLoad[C model.Capacity[C]](acts []model.Activity, run loadInterval, past []C) {
	var baseline C
	for i := run.lo; i <= run.hi; i++ {
		d := activityDemand[C](acts[i])
		baseline = baseline.Add(d.DeliveryStatic)
	}

	running := baseline
	for i := run.lo; i <= run.hi; i++ {
		d := activityDemand[C](acts[i])
		running = running.Add(pickupAmount(d)).Sub(deliveryAmount(d))
		past[i] = running
	}
}

// runFutureLoad fills future[run.lo..run.hi] with the suffix-max of
// past[run.lo..run.hi]: the worst load anywhere from each activity to the
// end of its run.
func runFutureLoad[C model.Capacity[C]](past []C, run loadInterval, future []C) {
	var worst C
	first := true
	for i := run.hi; i >= run.lo; i-- {
		if first {
			worst = past[i]
			first = false
		} else {
			worst = worst.Max(past[i])
		}
		future[i] = worst
	}
}

// HardActivity rejects target if inserting it would push the load past
// either bound: the peak right at target (its own delivery demand must
// already be riding since the interval started, so it is added rather
// than netted against pastLoad, matching how AcceptRouteState folds
// existing deliveries into the baseline) or the worst point later in the
// interval once target's pickup demand rides along with it.
func (c *Capacity[C]) HardActivity(rc *solution.RouteContext, prev, target, next model.Activity) (Code, bool, bool) {
	if target.Job == nil {
		return 0, false, false
	}

	vehicleCap := c.VehicleCapacity(rc.Route.Actor)
	demand := demandOf[C](resolveSingle(target.Job, target.Place))
	pickup := pickupAmount(demand)
	deliver := deliveryAmount(demand)

	pastLoad, _ := solution.GetActivity[C](rc.State, indexOf(rc, prev), keyMaxPastLoad)
	projectedPast := pastLoad.Add(pickup).Add(deliver)
	if !vehicleCap.CanFit(projectedPast) {
		return CodeCapacity, true, false
	}

	futureLoad, _ := solution.GetActivity[C](rc.State, indexOf(rc, next), keyMaxFutureLoad)
	projectedFuture := futureLoad.Add(pickup)
	if !vehicleCap.CanFit(projectedFuture) {
		return CodeCapacity, true, false
	}

	return 0, false, false
}

// indexOf finds a's position in rc.Route.Activities by schedule identity;
// used only as a fallback when the caller doesn't already carry the
// index (the Insertion Evaluator passes real activities from the tour).
func indexOf(rc *solution.RouteContext, a model.Activity) int {
	for i, cand := range rc.Route.Activities {
		if cand.Schedule == a.Schedule && cand.Job == a.Job {
			return i
		}
	}
	return 0
}
