package solution

import "github.com/vrpsolver/vrpcore/pkg/model"

// RouteContext is a model.Route plus its cached per-activity and
// per-route state. Any mutation to the route sets Stale; the
// constraint Pipeline's AcceptRouteState recomputes the cache through
// every module and then calls MarkFresh.
type RouteContext struct {
	Route *model.Route
	State *Store
	stale bool
}

// NewRouteContext wraps a freshly created route. The state starts empty
// and stale, so the constraint pipeline populates it on first use.
func NewRouteContext(route *model.Route) *RouteContext {
	rc := &RouteContext{Route: route}
	rc.State = NewStore(len(route.Activities))
	rc.stale = true
	return rc
}

// Stale reports whether the route mutated since the state was last
// recomputed.
func (rc *RouteContext) Stale() bool { return rc.stale }

// MarkStale flags the route as needing a state recompute. Called by any
// operation that mutates Activities (insert, remove, reorder).
func (rc *RouteContext) MarkStale() {
	rc.stale = true
	rc.State.Resize(len(rc.Route.Activities))
}

// MarkFresh clears the stale flag once every constraint module has
// recomputed its cache via accept_route_state.
func (rc *RouteContext) MarkFresh() { rc.stale = false }

// InsertAt inserts an activity at tour-position index (as returned by the
// Insertion Evaluator, i.e. excluding the shift-start sentinel) and marks
// the route stale.
func (rc *RouteContext) InsertAt(index int, a model.Activity) {
	acts := rc.Route.Activities
	pos := index + 1 // +1 to skip the shift-start sentinel
	acts = append(acts, model.Activity{})
	copy(acts[pos+1:], acts[pos:])
	acts[pos] = a
	rc.Route.Activities = acts
	rc.MarkStale()
}

// RemoveJob removes every activity serving job from the route and marks
// it stale. Returns the number of activities removed (>1 only for a Multi
// whose Singles each occupy one activity).
func (rc *RouteContext) RemoveJob(job model.Job) int {
	id := model.JobID(job)
	acts := rc.Route.Activities[:0:0]
	acts = append(acts, rc.Route.Activities...)
	removed := 0
	filtered := acts[:0]
	for _, a := range acts {
		if a.Job != nil && model.JobID(a.Job) == id {
			removed++
			continue
		}
		filtered = append(filtered, a)
	}
	rc.Route.Activities = filtered
	if removed > 0 {
		rc.MarkStale()
	}
	return removed
}

// Clone deep-copies the route and a fresh (stale) state store, for
// offspring generation from a parent InsertionContext: offspring are
// deep-copied from parents before mutation.
func (rc *RouteContext) Clone() *RouteContext {
	actorCopy := *rc.Route.Actor
	acts := make([]model.Activity, len(rc.Route.Activities))
	copy(acts, rc.Route.Activities)
	route := &model.Route{Actor: &actorCopy, Activities: acts}
	return NewRouteContext(route)
}
