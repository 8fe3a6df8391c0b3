package insertion_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/internal/rng"
	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/insertion"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
	"github.com/vrpsolver/vrpcore/pkg/transport"
)

func singleFleetProblem(t *testing.T, jobs []model.Job) *model.Problem {
	t.Helper()
	end := model.Location(3)
	actor := &model.Actor{
		Vehicle: model.Vehicle{Profile: model.Profile{Scale: 1}},
		Detail: model.ShiftDetail{
			StartLocation: 0,
			StartTime:     model.NewTimeWindow(0, 1000),
			EndLocation:   &end,
		},
	}
	return &model.Problem{
		Plan:  model.Plan{Jobs: jobs},
		Fleet: model.NewFleet([]*model.Actor{actor}),
	}
}

func newContext(t *testing.T, problem *model.Problem) *solution.InsertionContext {
	t.Helper()
	env := solution.NewEnvironment(rng.NewDefault(7), 1)
	return solution.NewInsertionContext(problem, env)
}

func TestInsertionHeuristicPlacesAllRequiredJobs(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2)}
	problem := singleFleetProblem(t, jobs)
	ic := newContext(t, problem)

	cost := lineTransport(t)
	activity := transport.DefaultActivityCost{}
	pipeline := constraint.NewPipeline(constraint.NewTransportTime(cost, activity))
	evaluator := insertion.NewEvaluator(pipeline, cost, activity, insertion.AllLegs{})
	reducer := insertion.NewPairJobMapReducer(insertion.AllRouteSelector{}, insertion.Best{}, evaluator)
	heuristic := insertion.NewInsertionHeuristic(insertion.AllJobSelector{}, reducer, pipeline)

	heuristic.Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("Required = %d, want 0 (every job placed)", len(ic.Solution.Required))
	}
	if len(ic.Solution.Unassigned) != 0 {
		t.Fatalf("Unassigned = %d, want 0", len(ic.Solution.Unassigned))
	}
	if len(ic.Solution.Routes) != 1 {
		t.Fatalf("Routes = %d, want 1", len(ic.Solution.Routes))
	}
	for _, job := range jobs {
		if !ic.Solution.IsAssigned(job) {
			t.Errorf("job %v not assigned", job)
		}
	}
}

func TestInsertionHeuristicMarksUnassignedWhenNoRouteFits(t *testing.T) {
	jobs := []model.Job{singleAt(1)}
	problem := singleFleetProblem(t, jobs)
	ic := newContext(t, problem)

	cost := lineTransport(t)
	activity := transport.DefaultActivityCost{}
	pipeline := constraint.NewPipeline(
		constraint.NewTransportTime(cost, activity),
		rejectEverythingModule{},
	)
	evaluator := insertion.NewEvaluator(pipeline, cost, activity, insertion.AllLegs{})
	reducer := insertion.NewPairJobMapReducer(insertion.AllRouteSelector{}, insertion.Best{}, evaluator)
	heuristic := insertion.NewInsertionHeuristic(insertion.AllJobSelector{}, reducer, pipeline)

	heuristic.Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("Required = %d, want 0 (job given up on, not stuck)", len(ic.Solution.Required))
	}
	if len(ic.Solution.Unassigned) != 1 {
		t.Fatalf("Unassigned = %d, want 1", len(ic.Solution.Unassigned))
	}
}

func TestAllRouteSelectorOffersExistingAndNewRoutes(t *testing.T) {
	jobs := []model.Job{singleAt(1)}
	problem := singleFleetProblem(t, jobs)
	ic := newContext(t, problem)

	candidates := insertion.AllRouteSelector{}.Select(ic, jobs[0])
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1 (single free actor, no existing routes yet)", len(candidates))
	}
	if candidates[0].NewActor == nil {
		t.Fatal("expected the sole candidate to be a new-route candidate")
	}
	if candidates[0].RouteIndex != -1 {
		t.Fatalf("RouteIndex = %d, want -1 for a new-route candidate", candidates[0].RouteIndex)
	}
}

func TestRecreateWithRegretAssignsEveryJob(t *testing.T) {
	// One actor and two jobs at locations 1 and 2: the regret heuristic
	// must commit a job each round until both are assigned.
	jobs := []model.Job{singleAt(1), singleAt(2)}
	problem := singleFleetProblem(t, jobs)
	ic := newContext(t, problem)

	cost := lineTransport(t)
	activity := transport.DefaultActivityCost{}
	pipeline := constraint.NewPipeline(constraint.NewTransportTime(cost, activity))
	evaluator := insertion.NewEvaluator(pipeline, cost, activity, insertion.AllLegs{})
	heuristic := insertion.NewRecreateWithRegret(pipeline, insertion.AllRouteSelector{}, evaluator)

	heuristic.Run(ic)

	if len(ic.Solution.Required) != 0 {
		t.Fatalf("Required = %d, want 0", len(ic.Solution.Required))
	}
	for _, job := range jobs {
		if !ic.Solution.IsAssigned(job) {
			t.Errorf("job %v not assigned", job)
		}
	}
}

func TestGapsJobSelectorDropsFraction(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2), singleAt(3)}
	problem := singleFleetProblem(t, jobs)
	ic := newContext(t, problem)

	selected := insertion.GapsJobSelector{Ratio: 0.5}.Select(ic)
	if len(selected) >= len(jobs) {
		t.Fatalf("GapsJobSelector kept %d of %d jobs, want fewer", len(selected), len(jobs))
	}
	if len(selected) == 0 {
		t.Fatal("GapsJobSelector dropped every job, want at least one kept")
	}
}

func TestBlinkJobSelectorBoundsBatchSize(t *testing.T) {
	jobs := []model.Job{singleAt(1), singleAt(2), singleAt(3)}
	problem := singleFleetProblem(t, jobs)
	ic := newContext(t, problem)

	selected := insertion.BlinkJobSelector{Limit: 1}.Select(ic)
	if len(selected) != 1 {
		t.Fatalf("BlinkJobSelector returned %d jobs, want 1", len(selected))
	}
}
