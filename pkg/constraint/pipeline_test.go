package constraint_test

import (
	"testing"

	"github.com/vrpsolver/vrpcore/pkg/constraint"
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

type fakeHardRoute struct {
	constraint.NoAcceptInsertion
	constraint.NoAcceptRouteState
	constraint.NoAcceptSolutionState
	constraint.NoMerge
	code     constraint.Code
	violated bool
}

func (f fakeHardRoute) HardRoute(*solution.RouteContext, model.Job) (constraint.Code, bool) {
	return f.code, f.violated
}

type fakeSoftRoute struct {
	constraint.NoAcceptInsertion
	constraint.NoAcceptRouteState
	constraint.NoAcceptSolutionState
	constraint.NoMerge
	cost float64
}

func (f fakeSoftRoute) SoftRoute(*solution.RouteContext, model.Job) float64 { return f.cost }

func newBareRouteContext() *solution.RouteContext {
	actor := &model.Actor{Detail: model.ShiftDetail{StartLocation: model.Location(0), StartTime: model.NewTimeWindow(0, 100)}}
	return solution.NewRouteContext(model.NewRoute(actor))
}

func TestPipelineHardRouteShortCircuitsOnFirstViolation(t *testing.T) {
	p := constraint.NewPipeline(
		fakeHardRoute{code: 1, violated: false},
		fakeHardRoute{code: 2, violated: true},
		fakeHardRoute{code: 3, violated: true},
	)

	code, violated := p.HardRoute(newBareRouteContext(), &model.Single{})
	if !violated || code != 2 {
		t.Fatalf("HardRoute = (%d, %v), want (2, true) from the first violating module", code, violated)
	}
}

func TestPipelineHardRouteAcceptsWhenNoModuleObjects(t *testing.T) {
	p := constraint.NewPipeline(fakeHardRoute{violated: false}, fakeHardRoute{violated: false})

	_, violated := p.HardRoute(newBareRouteContext(), &model.Single{})
	if violated {
		t.Fatal("HardRoute should accept when every module accepts")
	}
}

func TestPipelineSoftRouteSumsEveryModule(t *testing.T) {
	p := constraint.NewPipeline(fakeSoftRoute{cost: 5}, fakeSoftRoute{cost: 2.5})

	got := p.SoftRoute(newBareRouteContext(), &model.Single{})
	if got != 7.5 {
		t.Fatalf("SoftRoute = %v, want 7.5", got)
	}
}

func TestPipelineIgnoresModulesNotImplementingAVariant(t *testing.T) {
	// fakeSoftRoute does not implement HardRouteConstraint; the pipeline
	// must skip it rather than panicking on a failed type assertion.
	p := constraint.NewPipeline(fakeSoftRoute{cost: 1})

	if _, violated := p.HardRoute(newBareRouteContext(), &model.Single{}); violated {
		t.Fatal("a module with no HardRoute variant should never contribute a violation")
	}
}
