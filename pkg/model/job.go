package model

// Place is one alternative location a Single job may be served at: an
// optional location, a service duration, and the time spans during which
// service may start.
type Place struct {
	Location *Location
	Duration float64
	Times    []TimeSpan
}

// Job is the tagged variant type: Single or Multi. Jobs compare by
// pointer identity, never by structural equality — two handles
// refer to the same job iff they are the same *Single or *Multi value.
// Callers that need a map key use JobID(), not the job's contents.
type Job interface {
	jobMarker()
	// Dimensions returns the job's attribute bag (demand, skills, value, ...).
	Dimensions() Dimensions
}

// JobID returns a stable identity for a Job usable as a map key. It is the
// job's own pointer value, reinterpreted as a key type — never derived
// from job contents, so two structurally-identical-but-distinct jobs never
// collide and the same job always maps to itself.
func JobID(j Job) any {
	switch v := j.(type) {
	case *Single:
		return v
	case *Multi:
		return v
	default:
		panic("model: unknown Job implementation")
	}
}

// Single is a job with one or more alternative Places (equivalent
// drop-off/pickup spots), a demand and a dimension bag.
type Single struct {
	Places []Place
	Demand Demand[MultiCapacity]
	Dims   Dimensions
}

func (*Single) jobMarker()             {}
func (s *Single) Dimensions() Dimensions { return s.Dims }

// PermutationGenerator lazily yields permitted orderings of a Multi's
// Singles, as index sequences into Multi.Jobs. Implementations bound the
// number of permutations they emit (default sample size <= 3).
type PermutationGenerator interface {
	// Permutations returns up to limit index permutations of
	// [0, n) in the order they should be tried.
	Permutations(n, limit int) [][]int
}

// Multi is an ordered sequence of Singles that must be served together,
// in one of the orders its PermutationGenerator allows. A Multi is either
// fully assigned (all Singles in one route) or fully unassigned — it is
// identity-shared across the system, so every holder of a *Multi observes
// the same assignment state.
type Multi struct {
	Jobs        []*Single
	Permutation PermutationGenerator
	Dims        Dimensions
}

func (*Multi) jobMarker()              {}
func (m *Multi) Dimensions() Dimensions { return m.Dims }

// StrictOrderPermutation is the default PermutationGenerator: only the
// declared order is permitted.
type StrictOrderPermutation struct{}

func (StrictOrderPermutation) Permutations(n, _ int) [][]int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return [][]int{order}
}
