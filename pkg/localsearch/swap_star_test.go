package localsearch_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/localsearch"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

func TestSwapStarExchangesJobsBetweenRoutes(t *testing.T) {
	ic, evaluator, pipeline, jobA, jobB := twoRouteContext(t, 7)

	op := localsearch.NewSwapStar(evaluator, pipeline, 0)
	op.Run(ic)

	sc := ic.Solution
	if len(sc.Routes) != 2 {
		t.Fatalf("Routes = %d, want 2", len(sc.Routes))
	}
	if !jobIn(sc.Routes[0], jobB) {
		t.Errorf("expected jobB to have moved into route 0")
	}
	if !jobIn(sc.Routes[1], jobA) {
		t.Errorf("expected jobA to have moved into route 1")
	}
}

func TestSwapStarSkipsWhenARouteIsFullyLocked(t *testing.T) {
	ic, evaluator, pipeline, jobA, jobB := twoRouteContext(t, 7)
	ic.Solution.Locked[model.JobID(jobA)] = true

	op := localsearch.NewSwapStar(evaluator, pipeline, 0)
	op.Run(ic)

	sc := ic.Solution
	if !jobIn(sc.Routes[0], jobA) {
		t.Errorf("locked jobA should never leave route 0")
	}
	if !jobIn(sc.Routes[1], jobB) {
		t.Errorf("jobB should stay put once jobA (its only possible partner) is locked")
	}
}

func TestSwapStarNoopWithFewerThanTwoRoutes(t *testing.T) {
	ic, evaluator, pipeline, jobA, _ := twoRouteContext(t, 7)
	ic.Solution.Routes = ic.Solution.Routes[:1]

	op := localsearch.NewSwapStar(evaluator, pipeline, 0)
	op.Run(ic)

	if !jobIn(ic.Solution.Routes[0], jobA) {
		t.Errorf("single-route solution must be left untouched")
	}
}

func jobIn(rc *solution.RouteContext, job model.Job) bool {
	id := model.JobID(job)
	for _, j := range rc.Route.Jobs() {
		if model.JobID(j) == id {
			return true
		}
	}
	return false
}
