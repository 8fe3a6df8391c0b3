package solution

import (
	"sync"

	"github.com/vrpsolver/vrpcore/pkg/model"
)

// Registry tracks which Actors are already scheduling a route versus
// still free, and resolves actor-group representatives to concrete
// actors on demand. It is an in-memory atomic slot reservation: here a
// single process owns the whole solution, so a mutex suffices where a
// distributed scheduler would need an optimistic-concurrency API call.
type Registry struct {
	mu     sync.Mutex
	fleet  *model.Fleet
	used   map[*model.Actor]bool
	nextIn map[model.GroupKey]int // not read or written; NextUnused scans the group instead
}

// NewRegistry starts with every actor free.
func NewRegistry(fleet *model.Fleet) *Registry {
	return &Registry{
		fleet:  fleet,
		used:   make(map[*model.Actor]bool),
		nextIn: make(map[model.GroupKey]int),
	}
}

// MarkUsed records that actor now owns a route.
func (r *Registry) MarkUsed(actor *model.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.used[actor] = true
}

// MarkFree records that actor no longer owns a route (its route was
// removed entirely).
func (r *Registry) MarkFree(actor *model.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.used, actor)
}

// IsUsed reports whether actor currently owns a route.
func (r *Registry) IsUsed(actor *model.Actor) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used[actor]
}

// NextUnused returns the next actor in group k that is not currently
// used, or nil if every actor in that group is busy. It does not itself
// mark the actor used — callers do that only once insertion succeeds,
// so a group's next actor is marked used only on success.
func (r *Registry) NextUnused(k model.GroupKey) *model.Actor {
	r.mu.Lock()
	defer r.mu.Unlock()
	actors := r.fleet.Groups()[k]
	for _, a := range actors {
		if !r.used[a] {
			return a
		}
	}
	return nil
}

// Clone deep-copies the used-actor set for offspring generation.
func (r *Registry) Clone() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := NewRegistry(r.fleet)
	for a, v := range r.used {
		out.used[a] = v
	}
	return out
}
