package constraint_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

func TestReachabilityRejectsUnreachableLeg(t *testing.T) {
	m := &transport.Matrix{Size: 2, Durations: []float64{0, 5, 5, 0}, Distances: []float64{0, -1, -1, 0}}
	cost, err := transport.NewMatrixTransportCost([]*transport.Matrix{m})
	if err != nil {
		t.Fatal(err)
	}
	r := constraint.NewReachability(cost)

	loc0, loc1 := model.Location(0), model.Location(1)
	prev := model.Activity{Place: model.Place{Location: &loc0}}
	target := model.Activity{Place: model.Place{Location: &loc1}}

	_, violated, _ := r.HardActivity(bareRouteContext(), prev, target, model.Activity{})
	if !violated {
		t.Fatal("a negative-distance leg should be rejected as unreachable")
	}
}

func TestReachabilityAcceptsReachableLeg(t *testing.T) {
	m := &transport.Matrix{Size: 2, Durations: []float64{0, 5, 5, 0}, Distances: []float64{0, 10, 10, 0}}
	cost, _ := transport.NewMatrixTransportCost([]*transport.Matrix{m})
	r := constraint.NewReachability(cost)

	loc0, loc1 := model.Location(0), model.Location(1)
	prev := model.Activity{Place: model.Place{Location: &loc0}}
	target := model.Activity{Place: model.Place{Location: &loc1}}

	_, violated, _ := r.HardActivity(bareRouteContext(), prev, target, model.Activity{})
	if violated {
		t.Fatal("a reachable leg should be accepted")
	}
}

func bareRouteContext() *solution.RouteContext {
	actor := &model.Actor{Detail: model.ShiftDetail{StartLocation: model.Location(0), StartTime: model.NewTimeWindow(0, 100)}}
	return solution.NewRouteContext(model.NewRoute(actor))
}
