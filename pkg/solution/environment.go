package solution

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vrpsolver/vrpcore/internal/rng"
)

// Quota answers "should the caller abort now", checked at generation
// boundaries and at hot points inside expensive operators.
// Implementations must be safe to call concurrently from every worker in
// the inner map-reduce.
type Quota interface {
	IsReached() bool
}

// TimeQuota reports reached once Deadline has passed. Zero Deadline means
// no time limit.
type TimeQuota struct {
	Deadline time.Time
}

func NewTimeQuota(budget time.Duration) *TimeQuota {
	if budget <= 0 {
		return &TimeQuota{}
	}
	return &TimeQuota{Deadline: time.Now().Add(budget)}
}

func (q *TimeQuota) IsReached() bool {
	return !q.Deadline.IsZero() && time.Now().After(q.Deadline)
}

// ContextQuota is reached once the wrapped context is done, letting an
// external caller cancel a run.
type ContextQuota struct {
	ctx context.Context
}

func NewContextQuota(ctx context.Context) *ContextQuota { return &ContextQuota{ctx: ctx} }

func (q *ContextQuota) IsReached() bool {
	select {
	case <-q.ctx.Done():
		return true
	default:
		return false
	}
}

// CompositeQuota is reached once any of its members is.
type CompositeQuota struct {
	Quotas []Quota
}

func (q *CompositeQuota) IsReached() bool {
	for _, sub := range q.Quotas {
		if sub.IsReached() {
			return true
		}
	}
	return false
}

// CounterQuota caps the number of IsReached-gated attempts, used by
// operators that bound a fixed pair count rather than a time budget.
type CounterQuota struct {
	remaining int64
}

func NewCounterQuota(n int) *CounterQuota {
	return &CounterQuota{remaining: int64(n)}
}

func (q *CounterQuota) IsReached() bool {
	return atomic.LoadInt64(&q.remaining) <= 0
}

// Consume decrements the counter by one and returns whether it was still
// positive before the decrement.
func (q *CounterQuota) Consume() bool {
	return atomic.AddInt64(&q.remaining, -1) >= 0
}

// Environment bundles the run-wide knobs every InsertionContext shares:
// the random source, the active quota, and requested parallelism.
type Environment struct {
	Random      rng.Random
	Quota       Quota
	Parallelism int
}

// NewEnvironment builds an Environment with the caller's parallelism
// (raised to 1 when lower) and no quota.
func NewEnvironment(random rng.Random, parallelism int) *Environment {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Environment{Random: random, Parallelism: parallelism}
}

// IsReached is a nil-safe convenience: an Environment with no Quota never
// reports reached.
func (e *Environment) IsReached() bool {
	return e.Quota != nil && e.Quota.IsReached()
}
