package objective

import (
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// TourOrder is the whole-solution counterpart to constraint's TourOrder
// module: it sums, across every route, how far each adjacent pair of
// activities sits out of their declared tour_order. Used by a Hierarchy
// that wants to rank solutions by overall order violation rather than
// reject insertions outright.
type TourOrder struct {
	Weight float64
}

// NewTourOrder builds a TourOrder objective with the given weight.
func NewTourOrder(weight float64) *TourOrder {
	return &TourOrder{Weight: weight}
}

func (t *TourOrder) Name() string { return "tour_order" }

func (t *TourOrder) Evaluate(sol *solution.SolutionContext) float64 {
	total := 0.0
	for _, rc := range sol.Routes {
		acts := rc.Route.TourActivities()
		for i := 1; i < len(acts); i++ {
			prevOrder, ok1 := orderOf(acts[i-1])
			curOrder, ok2 := orderOf(acts[i])
			if !ok1 || !ok2 {
				continue
			}
			if curOrder < prevOrder {
				total += float64(prevOrder - curOrder)
			}
		}
	}
	return t.Weight * total
}

func orderOf(a model.Activity) (int, bool) {
	if a.Job == nil {
		return 0, false
	}
	return model.Get[int](a.Job.Dimensions(), constraint.DimTourOrder)
}
