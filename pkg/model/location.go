// Package model defines the immutable problem and solution domain types:
// locations, time windows, jobs, vehicles, fleets, locks and routes.
//
// Types here are read-only once constructed; mutation lives one layer up,
// in package solution, which wraps a Route in mutable per-activity state.
package model

// Location is an opaque, nonnegative index into the transport matrices.
// It carries no coordinate information itself — the core never
// interprets geography, only matrix positions.
type Location int

// Profile pairs a transport-matrix index with a per-vehicle scale factor,
// so that different vehicle classes can share a matrix but apply a
// different speed multiplier.
type Profile struct {
	Index int
	Scale float64
}

// Unreachable is the sentinel distance/duration used by MatrixTransportCost
// to mark an entry with no feasible path. It propagates through the
// constraint pipeline as "constraint-violating infinity".
const Unreachable = -1
