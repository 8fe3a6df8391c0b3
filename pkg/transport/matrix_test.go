package transport_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

func square(vals ...float64) []float64 { return vals }

func TestMatrixTransportCostRejectsNonSquare(t *testing.T) {
	_, err := transport.NewMatrixTransportCost([]*transport.Matrix{
		{ProfileIndex: 0, Size: 2, Durations: square(1, 2, 3), Distances: square(1, 2, 3, 4)},
	})
	if err == nil {
		t.Fatal("expected an error for a Durations table that isn't size*size")
	}
}

func TestMatrixTransportCostLookup(t *testing.T) {
	m := &transport.Matrix{
		ProfileIndex: 0,
		Size:         2,
		Durations:    square(0, 10, 20, 0),
		Distances:    square(0, 100, 200, 0),
	}
	cost, err := transport.NewMatrixTransportCost([]*transport.Matrix{m})
	if err != nil {
		t.Fatal(err)
	}

	profile := model.Profile{Index: 0, Scale: 1}
	if d := cost.Duration(profile, 0, 1, 0); d != 10 {
		t.Fatalf("Duration(0,1) = %v, want 10", d)
	}
	if d := cost.Distance(profile, 1, 0, 0); d != 200 {
		t.Fatalf("Distance(1,0) = %v, want 200", d)
	}
}

func TestMatrixTransportCostUnknownProfileIsUnreachable(t *testing.T) {
	cost, err := transport.NewMatrixTransportCost(nil)
	if err != nil {
		t.Fatal(err)
	}
	d := cost.Duration(model.Profile{Index: 5}, 0, 1, 0)
	if !transport.Unreachable(d) {
		t.Fatalf("Duration for an unknown profile should be Unreachable, got %v", d)
	}
}

func TestMatrixTransportCostPicksNearestEarlierTimestamp(t *testing.T) {
	ts0, ts100 := 0.0, 100.0
	early := &transport.Matrix{ProfileIndex: 0, Timestamp: &ts0, Size: 2, Durations: square(0, 5, 5, 0), Distances: square(0, 5, 5, 0)}
	late := &transport.Matrix{ProfileIndex: 0, Timestamp: &ts100, Size: 2, Durations: square(0, 50, 50, 0), Distances: square(0, 50, 50, 0)}
	cost, err := transport.NewMatrixTransportCost([]*transport.Matrix{late, early})
	if err != nil {
		t.Fatal(err)
	}

	profile := model.Profile{Index: 0, Scale: 1}
	if d := cost.Duration(profile, 0, 1, 50); d != 5 {
		t.Fatalf("Duration at t=50 = %v, want 5 (still before the t=100 matrix)", d)
	}
	if d := cost.Duration(profile, 0, 1, 150); d != 50 {
		t.Fatalf("Duration at t=150 = %v, want 50 (the t=100 matrix applies)", d)
	}
}

func TestArrivalAppliesProfileScale(t *testing.T) {
	m := &transport.Matrix{ProfileIndex: 0, Size: 2, Durations: square(0, 10, 10, 0), Distances: square(0, 10, 10, 0)}
	cost, _ := transport.NewMatrixTransportCost([]*transport.Matrix{m})
	profile := model.Profile{Index: 0, Scale: 2}

	arrival := transport.Arrival(cost, profile, 0, 1, 100)
	if arrival != 120 {
		t.Fatalf("Arrival = %v, want 120 (departure 100 + duration 10 * scale 2)", arrival)
	}
}

func TestArrivalUnreachableStaysAtDeparture(t *testing.T) {
	cost, _ := transport.NewMatrixTransportCost(nil)
	profile := model.Profile{Index: 9}
	arrival := transport.Arrival(cost, profile, 0, 1, 100)
	if arrival != 100 {
		t.Fatalf("Arrival on an unreachable leg should stay at departure, got %v", arrival)
	}
}
