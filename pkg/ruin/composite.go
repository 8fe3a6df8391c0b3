package ruin

import "github.com/vrpsolver/vrpcore/pkg/solution"

// gated is one ruin operator paired with the probability it fires once
// its group has been picked: every operator in the chosen group is
// independently gated by its own coin flip, so a group can run more than
// one operator per call.
type gated struct {
	op          Ruin
	probability float64
}

// RuinGroup is a set of independently-gated operators plus the group's
// own selection weight.
type RuinGroup struct {
	Weight    float64
	Operators []gated
}

// WeightedOp pairs a Ruin operator with its in-group firing probability.
type WeightedOp struct {
	Op     Ruin
	Weight float64
}

// NewRuinGroup builds a RuinGroup with the given overall selection
// weight and per-operator firing probabilities.
func NewRuinGroup(groupWeight float64, ops ...WeightedOp) RuinGroup {
	group := RuinGroup{Weight: groupWeight}
	for _, op := range ops {
		group.Operators = append(group.Operators, gated{op: op.Op, probability: op.Weight})
	}
	return group
}

// CompositeRuin picks one group by weight, then independently rolls
// every operator in that group against its own firing probability and
// runs each one that passes, in order. This is the operator normally
// handed to the evolution driver: individual operators are rarely used
// standalone.
type CompositeRuin struct {
	Groups []RuinGroup
}

// NewCompositeRuin builds a CompositeRuin over the given groups.
func NewCompositeRuin(groups ...RuinGroup) *CompositeRuin {
	return &CompositeRuin{Groups: groups}
}

func (c *CompositeRuin) Run(ic *solution.InsertionContext) {
	random := randomOf(ic)
	if random == nil || len(ic.Solution.Routes) == 0 || len(c.Groups) == 0 {
		return
	}

	weights := make([]float64, len(c.Groups))
	for i, g := range c.Groups {
		weights[i] = g.Weight
	}
	group := c.Groups[random.Weighted(weights)]

	for _, o := range group.Operators {
		if o.probability > random.UniformReal(0, 1) {
			o.op.Run(ic)
		}
	}
}
