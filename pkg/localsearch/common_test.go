package localsearch_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// lineTransport builds an n-location matrix where distance/duration
// between i and j is 10*|i-j|.
func lineTransport(t *testing.T, n int) transport.Cost {
	t.Helper()
	vals := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			vals[i*n+j] = float64(10 * d)
		}
	}
	m := &transport.Matrix{Size: n, Durations: append([]float64{}, vals...), Distances: append([]float64{}, vals...)}
	cost, err := transport.NewMatrixTransportCost([]*transport.Matrix{m})
	if err != nil {
		t.Fatal(err)
	}
	return cost
}

func singleAt(loc model.Location) *model.Single {
	l := loc
	return &model.Single{Places: []model.Place{{Location: &l, Duration: 1}}}
}

// actorAt builds an actor whose shift starts and ends at the same
// location, with no time-window or capacity restrictions.
func actorAt(loc model.Location) *model.Actor {
	end := loc
	return &model.Actor{
		Vehicle: model.Vehicle{Profile: model.Profile{Scale: 1}},
		Detail: model.ShiftDetail{
			StartLocation: loc,
			StartTime:     model.NewTimeWindow(0, 1000),
			EndLocation:   &end,
		},
	}
}

// routeOf builds a RouteContext for actor visiting jobs at locs, in order.
func routeOf(actor *model.Actor, jobs []model.Job, locs []model.Location) *solution.RouteContext {
	route := model.NewRoute(actor)
	mid := make([]model.Activity, len(jobs))
	for i, job := range jobs {
		l := locs[i]
		mid[i] = model.Activity{Place: model.Place{Location: &l, Duration: 1}, Job: job}
	}
	acts := make([]model.Activity, 0, len(route.Activities)+len(mid))
	acts = append(acts, route.Activities[0])
	acts = append(acts, mid...)
	acts = append(acts, route.Activities[1:]...)
	route.Activities = acts
	return solution.NewRouteContext(route)
}

// twoRouteContext builds an InsertionContext with two single-job routes,
// one per actor, over a cost matrix big enough to hold every location
// used, plus the pipeline/evaluator pair a localsearch operator needs.
func twoRouteContext(t *testing.T, seed uint64) (ic *solution.InsertionContext, evaluator *insertion.Evaluator, pipeline *constraint.Pipeline, jobA, jobB model.Job) {
	t.Helper()
	cost := lineTransport(t, 12)
	activity := transport.DefaultActivityCost{}
	pipeline = constraint.NewPipeline(constraint.NewTransportTime(cost, activity))

	actorA, actorB := actorAt(0), actorAt(10)
	jobA, jobB = singleAt(1), singleAt(11)
	rcA := routeOf(actorA, []model.Job{jobA}, []model.Location{1})
	rcB := routeOf(actorB, []model.Job{jobB}, []model.Location{11})

	problem := &model.Problem{
		Plan:  model.Plan{Jobs: []model.Job{jobA, jobB}},
		Fleet: model.NewFleet([]*model.Actor{actorA, actorB}),
	}
	env := solution.NewEnvironment(rng.NewDefault(seed), 1)
	ic = solution.NewInsertionContext(problem, env)
	ic.Solution.Routes = []*solution.RouteContext{rcA, rcB}
	ic.Solution.Required = nil
	ic.Solution.Registry.MarkUsed(actorA)
	ic.Solution.Registry.MarkUsed(actorB)
	ic.Solution.MarkAssigned(jobA)
	ic.Solution.MarkAssigned(jobB)

	evaluator = insertion.NewEvaluator(pipeline, cost, activity, insertion.AllLegs{})
	return ic, evaluator, pipeline, jobA, jobB
}
