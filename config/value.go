// SPDX-License-Identifier: MIT
// Package: optmath/config
//
// value.go - Configuration and its Value cells (fixed scalar | closed range).
//
// Contract (strict):
//   - A Value is either Fixed(v) or Range(lo, hi); nothing else exists.
//   - Constructors store verbatim; ALL validation happens in Resolve so that a
//     malformed range fails fast at resolution time, before any sampling.
//   - Config is a plain map and therefore mutable by the caller until handed
//     to a generator; generators treat it as read-only from then on.

package config

// Value is one configuration cell: a fixed scalar or an inclusive [lo, hi]
// range. The zero Value is Range(0, 0), i.e. the degenerate range at zero.
type Value struct {
	lo, hi float64
	fixed  bool
}

// Fixed returns a Value that resolves to exactly v.
// Complexity: O(1).
func Fixed(v float64) Value {
	return Value{lo: v, hi: v, fixed: true}
}

// Range returns a Value spanning the inclusive interval [lo, hi].
// No validation here; Resolve rejects lo > hi before any draw.
// Complexity: O(1).
func Range(lo, hi float64) Value {
	return Value{lo: lo, hi: hi}
}

// IsFixed reports whether the Value was built with Fixed.
func (v Value) IsFixed() bool { return v.fixed }

// Bounds returns the stored interval; for a Fixed value both ends equal v.
func (v Value) Bounds() (lo, hi float64) { return v.lo, v.hi }

// Config maps recognized parameter names to Values. A nil or empty Config
// means "schema defaults for every key".
type Config map[string]Value
