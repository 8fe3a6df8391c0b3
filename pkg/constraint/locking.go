package constraint

import (
	"github.com/vrpsolver/vrpcore/pkg/model"
	"github.com/vrpsolver/vrpcore/pkg/solution"
)

// CodeLocking is the rejection code for any lock violation.
const CodeLocking Code = 400

// Locking enforces model.Lock: a locked job may only be inserted into a
// route whose actor satisfies the lock's Condition, and Strict-ordered
// LockDetails must remain exactly adjacent.
type Locking struct {
	NoAcceptInsertion
	NoAcceptRouteState
	NoAcceptSolutionState
	NoMerge

	lockOf map[any]*model.Lock       // JobID -> owning lock
	detail map[any]*model.LockDetail // JobID -> owning detail within that lock
}

// NewLocking indexes every job named by every lock, for O(1) lookup
// during insertion.
func NewLocking(locks []*model.Lock) *Locking {
	l := &Locking{lockOf: make(map[any]*model.Lock), detail: make(map[any]*model.LockDetail)}
	for _, lock := range locks {
		for di := range lock.Details {
			d := &lock.Details[di]
			for _, job := range d.Jobs {
				l.lockOf[model.JobID(job)] = lock
				l.detail[model.JobID(job)] = d
			}
		}
	}
	return l
}

func (l *Locking) HardRoute(rc *solution.RouteContext, job model.Job) (Code, bool) {
	lock, ok := l.lockOf[model.JobID(job)]
	if !ok {
		return 0, false
	}
	if lock.Condition != nil && !lock.Condition(rc.Route.Actor) {
		return CodeLocking, true
	}
	return 0, false
}

// HardActivity enforces that a Strict-ordered detail's jobs remain
// exactly adjacent: a job from such a detail may only be inserted
// directly next to its declared neighbour in the sequence.
func (l *Locking) HardActivity(rc *solution.RouteContext, prev, target, next model.Activity) (Code, bool, bool) {
	if target.Job == nil {
		return 0, false, false
	}
	d, ok := l.detail[model.JobID(target.Job)]
	if !ok || d.Order != model.LockOrderStrict {
		return 0, false, false
	}
	pos := indexInDetail(d, target.Job)
	if pos > 0 {
		wantPrev := model.JobID(d.Jobs[pos-1])
		if prev.Job == nil || model.JobID(prev.Job) != wantPrev {
			return CodeLocking, true, false
		}
	}
	if pos < len(d.Jobs)-1 {
		wantNext := model.JobID(d.Jobs[pos+1])
		if next.Job == nil || model.JobID(next.Job) != wantNext {
			return CodeLocking, true, false
		}
	}
	return 0, false, false
}

func indexInDetail(d *model.LockDetail, job model.Job) int {
	id := model.JobID(job)
	for i, j := range d.Jobs {
		if model.JobID(j) == id {
			return i
		}
	}
	return -1
}
