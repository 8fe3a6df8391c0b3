package constraint_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

func TestTravelLimitsRejectsOverMaxDistance(t *testing.T) {
	maxDist := 100.0
	end := model.Location(1)
	actor := &model.Actor{
		Vehicle: model.Vehicle{Limits: &model.Limits{MaxDistance: &maxDist}},
		Detail: model.ShiftDetail{
			StartLocation: model.Location(0),
			StartTime:     model.NewTimeWindow(0, 1000),
			EndLocation:   &end,
		},
	}
	route := model.NewRoute(actor)
	rc := solution.NewRouteContext(route)

	m := &transport.Matrix{Size: 2, Durations: []float64{0, 10, 10, 0}, Distances: []float64{0, 200, 200, 0}}
	cost, err := transport.NewMatrixTransportCost([]*transport.Matrix{m})
	if err != nil {
		t.Fatal(err)
	}
	tt := constraint.NewTransportTime(cost, transport.DefaultActivityCost{})
	tt.AcceptRouteState(rc)
	rc.MarkFresh()

	_, violated := (constraint.TravelLimits{}).HardRoute(rc, &model.Single{})
	if !violated {
		t.Fatal("a route whose cached total distance exceeds MaxDistance should be rejected")
	}
}

func TestTravelLimitsNoLimitsAlwaysAccepts(t *testing.T) {
	actor := &model.Actor{Detail: model.ShiftDetail{StartLocation: model.Location(0), StartTime: model.NewTimeWindow(0, 100)}}
	rc := solution.NewRouteContext(model.NewRoute(actor))

	if _, violated := (constraint.TravelLimits{}).HardRoute(rc, &model.Single{}); violated {
		t.Fatal("an actor with no Limits should never be rejected by TravelLimits")
	}
}

func TestTravelLimitsTourSizeRejectsOverflow(t *testing.T) {
	maxSize := 1
	actor := &model.Actor{
		Vehicle: model.Vehicle{Limits: &model.Limits{MaxTourSize: &maxSize}},
		Detail:  model.ShiftDetail{StartLocation: model.Location(0), StartTime: model.NewTimeWindow(0, 100)},
	}
	route := model.NewRoute(actor)
	rc := solution.NewRouteContext(route)
	loc := model.Location(1)
	rc.InsertAt(0, model.Activity{Place: model.Place{Location: &loc}, Job: &model.Single{}})
	rc.MarkFresh()

	_, violated, _ := (constraint.TravelLimits{}).HardActivity(rc, model.Activity{}, model.Activity{Job: &model.Single{}}, model.Activity{})
	if !violated {
		t.Fatal("inserting a second activity past MaxTourSize=1 should be rejected")
	}
}
