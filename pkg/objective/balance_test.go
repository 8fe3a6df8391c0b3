package objective_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

func routeWithActivityCount(n int) *solution.RouteContext {
	actor := &model.Actor{Detail: model.ShiftDetail{StartLocation: model.Location(0), StartTime: model.NewTimeWindow(0, 100)}}
	route := model.NewRoute(actor)
	for i := 0; i < n; i++ {
		loc := model.Location(1)
		route.Activities = append(route.Activities, model.Activity{Place: model.Place{Location: &loc}, Job: &model.Single{}})
	}
	return solution.NewRouteContext(route)
}

func TestBalanceZeroForUniformRoutes(t *testing.T) {
	sol := &solution.SolutionContext{Routes: []*solution.RouteContext{
		routeWithActivityCount(3), routeWithActivityCount(3), routeWithActivityCount(3),
	}}
	b := objective.NewBalance(objective.BalanceActivityCount, 1.0)
	if got := b.Evaluate(sol); got != 0 {
		t.Fatalf("Balance over identical route sizes = %v, want 0", got)
	}
}

func TestBalancePositiveForUnevenRoutes(t *testing.T) {
	sol := &solution.SolutionContext{Routes: []*solution.RouteContext{
		routeWithActivityCount(1), routeWithActivityCount(10),
	}}
	b := objective.NewBalance(objective.BalanceActivityCount, 1.0)
	if got := b.Evaluate(sol); got <= 0 {
		t.Fatalf("Balance over uneven route sizes = %v, want > 0", got)
	}
}

func TestBalanceIgnoresSingleActiveRoute(t *testing.T) {
	sol := &solution.SolutionContext{Routes: []*solution.RouteContext{routeWithActivityCount(5)}}
	b := objective.NewBalance(objective.BalanceActivityCount, 1.0)
	if got := b.Evaluate(sol); got != 0 {
		t.Fatalf("Balance with one route = %v, want 0 (variation undefined for n<2)", got)
	}
}
