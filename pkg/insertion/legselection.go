package insertion

import (
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// Leg is one candidate insertion position: the activities immediately
// before and after it in the route's current Activities slice, and the
// tour index RouteContext.InsertAt expects for inserting there.
type Leg struct {
	PrevIndex int
	Index     int // tour position, excluding the shift-start sentinel
}

// LegSelection decides whether the evaluator scans every leg of a route
// or samples a subset, trading thoroughness for speed under quota
// pressure.
type LegSelection interface {
	Legs(rc *solution.RouteContext, env *solution.Environment) []Leg
}

// AllLegs scans every consecutive activity pair — the exhaustive default.
type AllLegs struct{}

func (AllLegs) Legs(rc *solution.RouteContext, _ *solution.Environment) []Leg {
	acts := rc.Route.Activities
	if len(acts) < 2 {
		return nil
	}
	legs := make([]Leg, 0, len(acts)-1)
	for i := 0; i < len(acts)-1; i++ {
		legs = append(legs, Leg{PrevIndex: i, Index: i})
	}
	return legs
}

// SampledLegs scans a random subset of size at most N, used when quota
// pressure makes scanning every position too slow.
type SampledLegs struct {
	N int
}

// NewSampledLegs builds a SampledLegs policy sampling up to n legs.
func NewSampledLegs(n int) SampledLegs {
	if n < 1 {
		n = 1
	}
	return SampledLegs{N: n}
}

func (s SampledLegs) Legs(rc *solution.RouteContext, env *solution.Environment) []Leg {
	all := AllLegs{}.Legs(rc, env)
	if len(all) <= s.N {
		return all
	}
	if env == nil || env.Random == nil {
		return all[:s.N]
	}
	picked := make([]Leg, 0, s.N)
	remaining := append([]Leg{}, all...)
	for i := 0; i < s.N && len(remaining) > 0; i++ {
		idx := env.Random.UniformInt(0, len(remaining)-1)
		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return picked
}
