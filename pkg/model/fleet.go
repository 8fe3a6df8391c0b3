package model

// Fleet is the pool of Actors available to the solver, plus an index of
// actor groups keyed by capability tuple for fast equivalence checks.
type Fleet struct {
	Actors []*Actor
	groups map[GroupKey][]*Actor
}

// NewFleet builds a Fleet and its actor-group index.
func NewFleet(actors []*Actor) *Fleet {
	f := &Fleet{Actors: actors, groups: make(map[GroupKey][]*Actor)}
	for _, a := range actors {
		k := a.Key()
		f.groups[k] = append(f.groups[k], a)
	}
	return f
}

// Groups returns the distinct actor-group keys, each with at least one
// representative actor.
func (f *Fleet) Groups() map[GroupKey][]*Actor {
	return f.groups
}

// Representative returns one actor for the given group key, or nil.
func (f *Fleet) Representative(k GroupKey) *Actor {
	actors := f.groups[k]
	if len(actors) == 0 {
		return nil
	}
	return actors[0]
}
