// Package rng provides the explicit random source threaded through generation,
// pricing and combat so every run can be replayed from a seed.
package rng

import "math/rand/v2"

// Source is the subset of *rand.Rand the simulation draws from.
type Source interface {
	// IntN returns a uniform int in [0, n). Panics if n <= 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// New returns a deterministic PCG-backed generator for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a uniform int in the closed range [lo, hi].
// It returns lo when hi <= lo.
func Between(r Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Chance reports whether an event with probability p happens.
func Chance(r Source, p float64) bool {
	return r.Float64() < p
}

// Shuffle permutes ids in place (Fisher-Yates).
func Shuffle(r Source, ids []int) {
	for i := len(ids) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// Pick returns a uniform element of items. items must be non-empty.
func Pick[T any](r Source, items []T) T {
	return items[r.IntN(len(items))]
}
