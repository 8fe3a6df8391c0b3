package objective

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// DimValue is the Dimensions key a job's collectible value is stored
// under, read by Value.
const DimValue = "value"

// ValueFunc computes a job's value given the actor serving it, so value
// can depend on who picks it up (original_source's ActorValueFn) as well
// as on the job alone (SimpleValueFn). A ValueFunc ignoring actor covers
// the simple case.
type ValueFunc func(actor *model.Actor, job model.Job) float64

// DimensionValue is the default ValueFunc: reads DimValue off the job's
// own Dimensions, ignoring which actor serves it.
func DimensionValue(_ *model.Actor, job model.Job) float64 {
	return model.GetOr(job.Dimensions(), DimValue, 0.0)
}

// Value maximizes the total value of served jobs by minimizing its
// negation (spec objectives rank lower-is-better, per original_source's
// TotalValue::maximize which negates the sum for the same reason).
type Value struct {
	ValueFunc ValueFunc
}

// NewValue builds a Value objective reading each job's value via fn; a
// nil fn defaults to DimensionValue.
func NewValue(fn ValueFunc) *Value {
	if fn == nil {
		fn = DimensionValue
	}
	return &Value{ValueFunc: fn}
}

func (v *Value) Name() string { return "total_value" }

func (v *Value) Evaluate(sol *solution.SolutionContext) float64 {
	total := 0.0
	for _, rc := range sol.Routes {
		actor := rc.Route.Actor
		for _, job := range rc.Route.Jobs() {
			total += v.ValueFunc(actor, job)
		}
	}
	return -total
}
