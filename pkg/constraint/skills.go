package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// CodeSkills is the rejection code when a vehicle's skills don't satisfy
// a job's skill requirement.
const CodeSkills Code = 300

// SkillSet is the requirement shape stored under model.DimSkills on a
// job: AllOf must be a subset of the vehicle's skills, OneOf must
// intersect it, NoneOf must not.
type SkillSet struct {
	AllOf  []string
	OneOf  []string
	NoneOf []string
}

// Skills hard-rejects a job for a vehicle whose own skill set (also
// stored under model.DimSkills, on the Vehicle's Dimensions) does not
// satisfy the job's requirement.
type Skills struct {
	NoAcceptInsertion
	NoAcceptRouteState
	NoAcceptSolutionState
	NoMerge
}

func (Skills) HardRoute(rc *solution.RouteContext, job model.Job) (Code, bool) {
	req, ok := model.Get[SkillSet](job.Dimensions(), model.DimSkills)
	if !ok {
		return 0, false // job declares no skill requirement
	}
	have := model.GetOr[[]string](rc.Route.Actor.Vehicle.Dims, model.DimSkills, nil)
	set := make(map[string]bool, len(have))
	for _, s := range have {
		set[s] = true
	}

	for _, s := range req.AllOf {
		if !set[s] {
			return CodeSkills, true
		}
	}
	if len(req.OneOf) > 0 {
		any := false
		for _, s := range req.OneOf {
			if set[s] {
				any = true
				break
			}
		}
		if !any {
			return CodeSkills, true
		}
	}
	for _, s := range req.NoneOf {
		if set[s] {
			return CodeSkills, true
		}
	}
	return 0, false
}
