package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// NoAcceptInsertion is embedded by modules with no per-insertion cache.
type NoAcceptInsertion struct{}

func (NoAcceptInsertion) AcceptInsertion(*solution.SolutionContext, int, model.Job) {}

// NoAcceptRouteState is embedded by modules with no per-route cache.
type NoAcceptRouteState struct{}

func (NoAcceptRouteState) AcceptRouteState(*solution.RouteContext) {}

// NoAcceptSolutionState is embedded by modules with no cross-route cache.
type NoAcceptSolutionState struct{}

func (NoAcceptSolutionState) AcceptSolutionState(*solution.SolutionContext) {}

// NoMerge is embedded by modules that never fold two jobs into one.
type NoMerge struct{}

func (NoMerge) Merge(model.Job, model.Job) (model.Job, Code, bool) { return nil, 0, false }
