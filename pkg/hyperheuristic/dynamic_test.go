package hyperheuristic_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/hyperheuristic"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/objective"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// noopOperator leaves the solution untouched.
type noopOperator struct{}

func (noopOperator) Run(*solution.InsertionContext) {}

// dropLastActivityOperator removes the last tour activity of route 0,
// if any, so tests can force a "worse than before" outcome without
// depending on the constraint/transport stack.
type dropLastActivityOperator struct{}

func (dropLastActivityOperator) Run(ic *solution.InsertionContext) {
	sc := ic.Solution
	if len(sc.Routes) == 0 {
		return
	}
	rc := sc.Routes[0]
	tour := rc.Route.TourActivities()
	if len(tour) == 0 {
		return
	}
	last := tour[len(tour)-1]
	sc.Required = append(sc.Required, last.Job)
	rc.RemoveJob(last.Job)
}

type fakeContext struct {
	best     *solution.InsertionContext
	hasBest  bool
	progress float64
	random   rng.Random
}

func (c fakeContext) BestKnown() (*solution.InsertionContext, bool) { return c.best, c.hasBest }
func (c fakeContext) Progress() float64                             { return c.progress }
func (c fakeContext) Random() rng.Random                            { return c.random }

func emptyRouteContext(seed uint64) *solution.InsertionContext {
	actor := &model.Actor{Vehicle: model.Vehicle{Profile: model.Profile{Scale: 1}}}
	problem := &model.Problem{Fleet: model.NewFleet([]*model.Actor{actor})}
	env := solution.NewEnvironment(rng.NewDefault(seed), 1)
	ic := solution.NewInsertionContext(problem, env)
	rc := solution.NewRouteContext(model.NewRoute(actor))
	ic.Solution.Routes = []*solution.RouteContext{rc}
	return ic
}

func TestDynamicSelectiveReturnsAClonedCandidate(t *testing.T) {
	hierarchy := objective.NewHierarchy(objective.TotalCost{})
	selector := hyperheuristic.NewDynamicSelective(hierarchy, []hyperheuristic.WeightedOperator{
		{Operator: noopOperator{}, Name: "noop"},
	})

	original := emptyRouteContext(1)
	ctx := fakeContext{progress: 0.1, random: rng.NewDefault(1)}

	candidate := selector.Search(ctx, original)
	if candidate == original {
		t.Fatal("Search must return a clone, not the original context")
	}
}

func TestDynamicSelectiveRepeatedSearchesKeepReturningClones(t *testing.T) {
	hierarchy := objective.NewHierarchy(objective.TotalCost{})
	operators := []hyperheuristic.WeightedOperator{
		{Operator: dropLastActivityOperator{}, Name: "drop"},
		{Operator: noopOperator{}, Name: "noop"},
	}
	selector := hyperheuristic.NewDynamicSelective(hierarchy, operators)

	random := rng.NewDefault(42)
	ctx := fakeContext{progress: 0.5, random: random}

	for i := 0; i < 200; i++ {
		original := emptyRouteContext(uint64(i + 1))
		if candidate := selector.Search(ctx, original); candidate == original {
			t.Fatalf("Search call %d returned the original context, want a clone", i)
		}
	}
	// The reward/estimate internals are unexported, so this checks only
	// that many Search calls, across estimate updates and periodic
	// exchanges, run without panicking and keep returning clones.
}

func TestDynamicSelectiveWithNoOperatorsReturnsAClone(t *testing.T) {
	hierarchy := objective.NewHierarchy(objective.TotalCost{})
	selector := hyperheuristic.NewDynamicSelective(hierarchy, nil)

	original := emptyRouteContext(1)
	ctx := fakeContext{progress: 0, random: rng.NewDefault(1)}

	candidate := selector.Search(ctx, original)
	if candidate == original {
		t.Fatal("Search must return a clone even with no registered operators")
	}
}
