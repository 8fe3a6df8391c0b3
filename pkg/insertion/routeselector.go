package insertion

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Candidate is one route a job might be inserted into: either an existing
// route (RouteIndex >= 0) or a not-yet-materialized route for the next
// unused actor in some group (NewActor != nil).
type Candidate struct {
	Route      *solution.RouteContext
	RouteIndex int
	NewActor   *model.Actor
}

// RouteSelector returns the candidate routes a job may be inserted into:
// every route already in the solution, plus one fresh candidate per
// actor group that still has an unused representative.
type RouteSelector interface {
	Select(ic *solution.InsertionContext, job model.Job) []Candidate
}

// AllRouteSelector returns every existing route plus a new-route
// candidate per group with spare capacity.
type AllRouteSelector struct{}

func (AllRouteSelector) Select(ic *solution.InsertionContext, _ model.Job) []Candidate {
	sc := ic.Solution
	candidates := make([]Candidate, 0, len(sc.Routes)+len(ic.Problem.Fleet.Groups()))
	for i, rc := range sc.Routes {
		candidates = append(candidates, Candidate{Route: rc, RouteIndex: i})
	}
	for key := range ic.Problem.Fleet.Groups() {
		actor := sc.Registry.NextUnused(key)
		if actor == nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Route:      solution.NewRouteContext(model.NewRoute(actor)),
			RouteIndex: -1,
			NewActor:   actor,
		})
	}
	return candidates
}
