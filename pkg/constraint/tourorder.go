package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// CodeTourOrder is the rejection code for TourOrder's hard variant.
const CodeTourOrder Code = 800

// DimTourOrder is the Dimensions key holding a job's user-declared order
// index (lower sorts earlier); jobs without it are order-unconstrained.
const DimTourOrder = "tour_order"

// TourOrder enforces a user-defined visiting order across activities as
// a hard constraint: target's order index must be >= prev's and <= next's.
// Both a hard-rejecting and a soft-penalizing form are provided; callers
// pick whichever fits a given order dimension's strictness.
type TourOrder struct {
	NoAcceptInsertion
	NoAcceptRouteState
	NoAcceptSolutionState
	NoMerge
}

func (TourOrder) HardActivity(_ *solution.RouteContext, prev, target, next model.Activity) (Code, bool, bool) {
	order, ok := orderOf(target)
	if !ok {
		return 0, false, false
	}
	if po, ok := orderOf(prev); ok && order < po {
		return CodeTourOrder, true, false
	}
	if no, ok := orderOf(next); ok && order > no {
		return CodeTourOrder, true, false
	}
	return 0, false, false
}

// TourOrderPenalty is TourOrder's soft counterpart: instead of rejecting
// an out-of-order insertion outright, it adds a cost proportional to how
// far out of order the activity is, letting the search trade order
// strictness against other objectives.
type TourOrderPenalty struct {
	NoAcceptInsertion
	NoAcceptRouteState
	NoAcceptSolutionState
	NoMerge

	Weight float64
}

func NewTourOrderPenalty(weight float64) *TourOrderPenalty {
	return &TourOrderPenalty{Weight: weight}
}

func (p *TourOrderPenalty) SoftActivity(_ *solution.RouteContext, prev, target, next model.Activity) float64 {
	order, ok := orderOf(target)
	if !ok {
		return 0
	}
	penalty := 0.0
	if po, ok := orderOf(prev); ok && order < po {
		penalty += float64(po - order)
	}
	if no, ok := orderOf(next); ok && order > no {
		penalty += float64(order - no)
	}
	return penalty * p.Weight
}

func orderOf(a model.Activity) (int, bool) {
	if a.Job == nil {
		return 0, false
	}
	return model.Get[int](a.Job.Dimensions(), DimTourOrder)
}
