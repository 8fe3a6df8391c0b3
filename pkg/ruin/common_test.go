package ruin_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/internal/neighbourhood"
	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

// lineTransport builds an n-location matrix where distance/duration
// between i and j is 10*|i-j|, durations equal to distances (Scale=1).
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

func singleActorProblem(t *testing.T, jobs []model.Job, end model.Location) *model.Problem {
	t.Helper()
	endLoc := end
	actor := &model.Actor{
		Vehicle: model.Vehicle{Profile: model.Profile{Scale: 1}},
		Detail: model.ShiftDetail{
			StartLocation: 0,
			StartTime:     model.NewTimeWindow(0, 1000),
			EndLocation:   &endLoc,
		},
	}
	return &model.Problem{
		Plan:  model.Plan{Jobs: jobs},
		Fleet: model.NewFleet([]*model.Actor{actor}),
	}
}

func newContext(t *testing.T, problem *model.Problem, seed uint64) *solution.InsertionContext {
	t.Helper()
	env := solution.NewEnvironment(rng.NewDefault(seed), 1)
	return solution.NewInsertionContext(problem, env)
}

// solvedContext builds a single-actor problem over jobs, a transport cost
// over locations 0..n-1, and runs the construction heuristic to place
// every job before handing the context to a ruin operator under test.
func solvedContext(t *testing.T, jobs []model.Job, locationCount int, seed uint64) (*solution.InsertionContext, transport.Cost) {
	t.Helper()
	cost := lineTransport(t, locationCount)
	activity := transport.DefaultActivityCost{}
	pipeline := constraint.NewPipeline(constraint.NewTransportTime(cost, activity))
	problem := singleActorProblem(t, jobs, model.Location(locationCount-1))
	ic := newContext(t, problem, seed)

	evaluator := insertion.NewEvaluator(pipeline, cost, activity, insertion.AllLegs{})
	reducer := insertion.NewPairJobMapReducer(insertion.AllRouteSelector{}, insertion.Best{}, evaluator)
	heuristic := insertion.NewInsertionHeuristic(insertion.AllJobSelector{}, reducer, pipeline)
	heuristic.Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("setup: Required = %d, want 0 (every job placed before ruin)", len(ic.Solution.Required))
	}
	return ic, cost
}

func buildGraph(t *testing.T, jobs []model.Job, cost transport.Cost, k int) *neighbourhood.Graph {
	t.Helper()
	g, err := neighbourhood.Build(jobs, cost, model.Profile{Scale: 1}, k)
	if err != nil {
		t.Fatal(err)
	}
	return g
}
