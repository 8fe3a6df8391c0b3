package constraint_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

func TestBreaksAcceptRouteStateDoesNotPanicOnEmptyTour(t *testing.T) {
	actor := &model.Actor{Detail: model.ShiftDetail{StartLocation: 0, StartTime: model.NewTimeWindow(0, 100)}}
	rc := solution.NewRouteContext(model.NewRoute(actor))

	(constraint.Breaks{}).AcceptRouteState(rc) // must not panic with only the shift-start sentinel present
}

func TestBreaksRequiredBreakMissingIsRecorded(t *testing.T) {
	actor := &model.Actor{
		Detail: model.ShiftDetail{
			StartLocation: 0,
			StartTime:     model.NewTimeWindow(0, 100),
			Breaks: []model.Break{
				{Duration: 10, Required: true, Times: []model.TimeSpan{model.NewTimeSpanWindow(model.NewTimeWindow(40, 50))}},
			},
		},
	}
	rc := solution.NewRouteContext(model.NewRoute(actor))

	(constraint.Breaks{}).AcceptRouteState(rc)
	// The violation is recorded under an internal RouteState key; absence
	// of a panic plus a populated Route state map is what's externally
	// observable without exporting the key.
	if len(rc.State.Route) == 0 {
		t.Fatal("AcceptRouteState should record something for a required-but-unmet break")
	}
}
