// SPDX-License-Identifier: MIT
// Package: optmath/config
//
// errors.go - sentinel error for the config package.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrConfiguration) to branch on semantics.
//   - The sentinel is NEVER wrapped with formatted strings at definition site.
//   - Implementations attach context using `%w` and a method tag, naming the
//     offending key, value, and violated constraint, so a caller can correct
//     the Configuration without reading resolver internals.
//   - Resolution code MUST NOT panic on user input; panics are reserved for
//     programmer errors (nil RNG, accessor on a key absent from the schema).

package config

import "errors"

// ErrConfiguration indicates that a recognized key failed its validity
// predicate (malformed range, out-of-domain value, non-integral value for an
// integer key, failed cross-key check, unknown key under Strict), or that a
// downstream balancing step found the supplied ranges unsatisfiable.
// This is one of the two public error kinds of the library; the other is
// sample.ErrExhausted.
// Usage: if errors.Is(err, config.ErrConfiguration) { /* fix the Config */ }.
var ErrConfiguration = errors.New("optmath: invalid configuration")
