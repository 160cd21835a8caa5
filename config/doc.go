// Package config - user-facing parameter layer of the generators.
//
// A Config maps parameter names to Values; a Value is either a fixed number
// or an inclusive [min, max] range. Each problem family publishes a Schema
// (typed keys, defaults, validity domains, cross-key checks), and Resolve
// normalizes a Config against a Schema into an immutable Resolved snapshot:
// unknown keys and malformed ranges fail fast BEFORE any random draw, ranged
// scalar keys are drawn uniformly in schema order from the caller's stream,
// and interval-kinded keys stay as pairs for the quantity sampler.
//
// Error policy:
//   - Every rejected input wraps ErrConfiguration and names the offending
//     key; match with errors.Is(err, config.ErrConfiguration).
//   - Resolved accessors (Int, Float, Interval, ...) panic on a missing key
//     or kind mismatch: schema drift is a programmer error, not user input.
//
// Determinism: for a fixed Schema, Config and stream state the resolved
// snapshot is identical on every platform; Resolve consumes the stream only
// for true ranges (lo < hi) of scalar kinds, in Schema.Keys order.
package config
