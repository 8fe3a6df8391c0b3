// Package rng provides the Random abstraction every search operator
// draws from: uniform int/real draws, weighted Bernoulli/categorical
// sampling, and a handle to the underlying generator for library calls
// that want it directly. The default implementation wraps
// golang.org/x/exp/rand, the same package used elsewhere in this module
// for tournament selection and mutation coin-flips.
package rng

import "golang.org/x/exp/rand"

// Random is the interface every search operator draws randomness from,
// so that a deterministic fake can replace it in tests.
type Random interface {
	// UniformInt returns a value in [lo, hi], inclusive.
	UniformInt(lo, hi int) int
	// UniformReal returns a value in [lo, hi).
	UniformReal(lo, hi float64) float64
	// IsHit reports success with probability p, in [0,1].
	IsHit(p float64) bool
	// Weighted picks an index proportional to the given non-negative
	// weights. Panics if weights is empty; if the weights sum to zero or
	// less, every index is equally likely.
	Weighted(weights []float64) int
	// Source exposes the underlying *rand.Rand for library calls
	// (e.g. sort.Slice shuffles, third-party samplers) that want a
	// rand.Source or rand.Rand directly rather than going through this
	// interface method by method.
	Source() *rand.Rand
}

// Default wraps golang.org/x/exp/rand.Rand, seeded explicitly so a run is
// repeatable end-to-end under single-threaded execution.
type Default struct {
	r *rand.Rand
}

// NewDefault seeds a new generator.
func NewDefault(seed uint64) *Default {
	return &Default{r: rand.New(rand.NewSource(seed))}
}

func (d *Default) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + d.r.Intn(hi-lo+1)
}

func (d *Default) UniformReal(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + d.r.Float64()*(hi-lo)
}

func (d *Default) IsHit(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return d.r.Float64() < p
}

func (d *Default) Weighted(weights []float64) int {
	if len(weights) == 0 {
		panic("rng: Weighted called with no weights")
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return d.r.Intn(len(weights))
	}
	pick := d.r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if pick < acc {
			return i
		}
	}
	return len(weights) - 1
}

func (d *Default) Source() *rand.Rand { return d.r }

// Clone returns an independent generator seeded from a draw of d, so
// that each parallel worker gets its own stream rather than sharing one
// behind a synchronized adapter.
func (d *Default) Clone() *Default {
	return NewDefault(uint64(d.r.Int63()))
}
