package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Pipeline aggregates Modules in registration order and evaluates them as
// one composite constraint: hard checks short-circuit on first violation,
// soft costs sum across every module that contributes one.
type Pipeline struct {
	Modules []Module
}

// NewPipeline builds a Pipeline evaluating modules in the given order.
func NewPipeline(modules ...Module) *Pipeline {
	return &Pipeline{Modules: modules}
}

// HardRoute returns the first violation reported by any module, or
// (0, false) if every module accepts the job for this route.
func (p *Pipeline) HardRoute(rc *solution.RouteContext, job model.Job) (Code, bool) {
	for _, m := range p.Modules {
		if hr, ok := m.(HardRouteConstraint); ok {
			if code, violated := hr.HardRoute(rc, job); violated {
				return code, true
			}
		}
	}
	return 0, false
}

// HardActivity returns the first violation reported by any module.
func (p *Pipeline) HardActivity(rc *solution.RouteContext, prev, target, next model.Activity) (code Code, violated, stopped bool) {
	for _, m := range p.Modules {
		if ha, ok := m.(HardActivityConstraint); ok {
			if code, violated, stopped := ha.HardActivity(rc, prev, target, next); violated {
				return code, true, stopped
			}
		}
	}
	return 0, false, false
}

// SoftRoute sums every module's route-level cost delta.
func (p *Pipeline) SoftRoute(rc *solution.RouteContext, job model.Job) float64 {
	total := 0.0
	for _, m := range p.Modules {
		if sr, ok := m.(SoftRouteConstraint); ok {
			total += sr.SoftRoute(rc, job)
		}
	}
	return total
}

// SoftActivity sums every module's activity-level cost delta.
func (p *Pipeline) SoftActivity(rc *solution.RouteContext, prev, target, next model.Activity) float64 {
	total := 0.0
	for _, m := range p.Modules {
		if sa, ok := m.(SoftActivityConstraint); ok {
			total += sa.SoftActivity(rc, prev, target, next)
		}
	}
	return total
}

// AcceptInsertion notifies every module that job committed into routeIdx.
func (p *Pipeline) AcceptInsertion(sol *solution.SolutionContext, routeIdx int, job model.Job) {
	for _, m := range p.Modules {
		m.AcceptInsertion(sol, routeIdx, job)
	}
}

// AcceptRouteState recomputes every module's cache for rc if it is stale,
// then clears the stale flag.
func (p *Pipeline) AcceptRouteState(rc *solution.RouteContext) {
	if !rc.Stale() {
		return
	}
	for _, m := range p.Modules {
		m.AcceptRouteState(rc)
	}
	rc.MarkFresh()
}

// AcceptSolutionState recomputes every module's cross-route cache, after
// first bringing every stale route up to date.
func (p *Pipeline) AcceptSolutionState(sol *solution.SolutionContext) {
	for _, rc := range sol.Routes {
		p.AcceptRouteState(rc)
	}
	for _, m := range p.Modules {
		m.AcceptSolutionState(sol)
	}
}

// Merge asks each module in turn whether it can fold candidate into
// source, returning the first module's answer that can.
func (p *Pipeline) Merge(source, candidate model.Job) (model.Job, Code, bool) {
	for _, m := range p.Modules {
		if merged, code, ok := m.Merge(source, candidate); ok {
			return merged, code, true
		}
	}
	return nil, 0, false
}
