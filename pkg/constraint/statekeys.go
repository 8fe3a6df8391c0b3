package constraint

import "github.com/vrpsolver/vrpcore/pkg/solution"

// State keys are namespaced by module so that no two modules' caches
// collide: each module owns its keys and never reads another module's.
// Travel Limits is the one documented exception: it deliberately reads
// Transport/Time's per-route totals rather than recomputing them, since
// module registration order already establishes that dependency.
const (
	keyLatestArrival solution.StateKey = iota // Transport/Time, per-activity
	keyEarliestArrival
	keyTotalDistance // Transport/Time, per-route
	keyTotalDuration

	keyMaxPastLoad // Capacity, per-activity
	keyMaxFutureLoad

	keySkillSet // reserved for Skills; Skills neither reads nor writes it
)
