// SPDX-License-Identifier: MIT
// Package: optmath/sample
//
// sample.go - primitive uniform draws shared by every generator.
//
// Contract:
//   - Every helper draws from the caller's stream only; the package holds no
//     state, so draw order is exactly call order and a fixed seed replays the
//     same quantities on any platform.
//   - Bounds come from resolved parameters or balancer postconditions, both
//     of which guarantee lo <= hi; a violated precondition here is a
//     programmer error and panics (user input never reaches this layer
//     unvalidated).
//   - Integer draws are INCLUSIVE of both endpoints; float draws cover
//     [lo, hi).

// Package sample provides the uniform draw primitives of the quantity and
// structural samplers: inclusive integer draws, float draws, Bernoulli
// trials, vector helpers and a bounded retry loop.
package sample

import "math/rand"

// IntBetween draws uniformly from the inclusive range [lo, hi].
// Panics when lo > hi (programmer error; resolved intervals are ordered).
func IntBetween(r *rand.Rand, lo, hi int64) int64 {
	if lo > hi {
		panic("sample: IntBetween: lo > hi")
	}
	if lo == hi {
		return lo // no stream consumption for a degenerate range
	}
	return lo + r.Int63n(hi-lo+1)
}

// Float draws uniformly from [lo, hi). Panics when lo > hi.
func Float(r *rand.Rand, lo, hi float64) float64 {
	if lo > hi {
		panic("sample: Float: lo > hi")
	}
	if lo == hi {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Bernoulli reports one trial with success probability p.
// Panics when p is outside [0, 1].
func Bernoulli(r *rand.Rand, p float64) bool {
	if p < 0 || p > 1 {
		panic("sample: Bernoulli: p outside [0, 1]")
	}
	return r.Float64() < p
}

// Ints draws n independent inclusive integers from [lo, hi], in index order.
func Ints(r *rand.Rand, n int, lo, hi int64) []int64 {
	if n < 0 {
		panic("sample: Ints: negative n")
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = IntBetween(r, lo, hi)
	}
	return out
}

// Floats draws n independent floats from [lo, hi), in index order.
func Floats(r *rand.Rand, n int, lo, hi float64) []float64 {
	if n < 0 {
		panic("sample: Floats: negative n")
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = Float(r, lo, hi)
	}
	return out
}
