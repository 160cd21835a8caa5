// SPDX-License-Identifier: MIT
// Package: optmath/config
//
// resolve.go - Configuration -> ResolvedParameters, the only validation
// boundary of the generation pipeline.
//
// Contract (strict):
//   - Validation precedes sampling: unknown-key scan and well-formedness of
//     every supplied Value run BEFORE the first draw, so a Config with
//     min > max fails with the stream untouched.
//   - Draws happen in Schema.Keys order; a degenerate range [v, v] copies v
//     without consuming the stream (identical to Fixed(v) by construction).
//   - No silent clamping anywhere: every violation returns an error wrapping
//     ErrConfiguration that names the key, the value, and the constraint.
//   - Resolve never panics on user input. It panics only on a nil RNG, which
//     is a programmer error (gen.Options always supplies a stream).
//
// Determinism:
//   - For a fixed seed and equal Config/Schema, the same scalars resolve on
//     every platform: stable key order, stable draw order, no map iteration.

package config

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Mode selects how Resolve treats keys absent from the Schema.
type Mode uint8

const (
	// Strict rejects unrecognized keys (default; catches key typos).
	Strict Mode = iota
	// Lenient ignores unrecognized keys.
	Lenient
)

const methodResolve = "Resolve"

// entry is the resolved form of one key.
type entry struct {
	kind   Kind
	lo, hi float64 // scalar kinds store the scalar in both fields
}

// Resolved is the immutable snapshot of concrete parameters for one
// instance. It is created once per generation run and consumed read-only by
// all later stages.
type Resolved struct {
	problem string
	vals    map[string]entry
}

// Resolve normalizes cfg against the schema into a Resolved snapshot,
// drawing ranged scalars uniformly from r. See the file contract for the
// validation order. A nil cfg resolves every key to its default.
//
// Complexity: O(len(cfg) + len(s.Keys) + len(s.Checks)).
func Resolve(cfg Config, s Schema, r *rand.Rand, mode Mode) (*Resolved, error) {
	if r == nil {
		// Programmer error: the resolver owns no fallback stream.
		panic("config: Resolve: nil rng")
	}

	// 1) Strictness scan over supplied keys (sorted for stable messages).
	if mode == Strict {
		if err := rejectUnknown(cfg, s); err != nil {
			return nil, err
		}
	}

	// 2) Well-formedness of every supplied Value, before any draw.
	var (
		k      Key
		v      Value
		ok     bool
		lo, hi float64
	)
	for _, k = range s.Keys {
		if v, ok = cfg[k.Name]; !ok {
			continue
		}
		lo, hi = v.Bounds()
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return nil, fmt.Errorf("%s: key %q: non-finite bound (lo=%v, hi=%v): %w",
				methodResolve, k.Name, lo, hi, ErrConfiguration)
		}
		if lo > hi {
			return nil, fmt.Errorf("%s: key %q: min=%v > max=%v: %w",
				methodResolve, k.Name, lo, hi, ErrConfiguration)
		}
	}

	// 3) Resolution in schema order; 4) per-key domain checks as we go.
	res := &Resolved{problem: s.Problem, vals: make(map[string]entry, len(s.Keys))}
	for _, k = range s.Keys {
		if v, ok = cfg[k.Name]; !ok {
			v = k.Def
		}
		e, err := resolveKey(k, v, r)
		if err != nil {
			return nil, err
		}
		res.vals[k.Name] = e
	}

	// 5) Cross-key checks in declaration order.
	for _, c := range s.Checks {
		if c.Fn == nil {
			continue
		}
		if err := c.Fn(res); err != nil {
			return nil, fmt.Errorf("%s: check %q: %s: %w",
				methodResolve, c.Name, err.Error(), ErrConfiguration)
		}
	}

	return res, nil
}

// rejectUnknown returns an ErrConfiguration wrap naming every supplied key
// the schema does not recognize, in sorted order.
func rejectUnknown(cfg Config, s Schema) error {
	if len(cfg) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(s.Keys))
	for _, k := range s.Keys {
		known[k.Name] = struct{}{}
	}
	var unknown []string
	for name := range cfg {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: unknown key(s) %s for problem %q: %w",
		methodResolve, strings.Join(unknown, ", "), s.Problem, ErrConfiguration)
}

// resolveKey turns one (Key, Value) pair into an entry, drawing from r when
// a scalar kind was configured as a true range.
func resolveKey(k Key, v Value, r *rand.Rand) (entry, error) {
	lo, hi := v.Bounds()

	// Defaults must be well-formed too (schema author error surfaces here).
	if lo > hi {
		return entry{}, fmt.Errorf("%s: key %q: min=%v > max=%v: %w",
			methodResolve, k.Name, lo, hi, ErrConfiguration)
	}

	// Integer kinds demand integral bounds; no silent truncation.
	if k.Kind.integral() {
		if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
			return entry{}, fmt.Errorf("%s: key %q: non-integral value (lo=%v, hi=%v) for %s key: %w",
				methodResolve, k.Name, lo, hi, k.Kind, ErrConfiguration)
		}
	}

	if k.Kind.interval() {
		// Interval kinds keep the pair (a fixed value degenerates to [v, v]).
		if err := checkDomain(k, lo); err != nil {
			return entry{}, err
		}
		if err := checkDomain(k, hi); err != nil {
			return entry{}, err
		}
		return entry{kind: k.Kind, lo: lo, hi: hi}, nil
	}

	// Scalar kinds: copy fixed/degenerate values, draw true ranges.
	var scalar float64
	switch {
	case lo == hi:
		scalar = lo
	case k.Kind == Int:
		span := int64(hi) - int64(lo)
		scalar = float64(int64(lo) + r.Int63n(span+1))
	default:
		scalar = lo + r.Float64()*(hi-lo)
	}
	if err := checkDomain(k, scalar); err != nil {
		return entry{}, err
	}
	return entry{kind: k.Kind, lo: scalar, hi: scalar}, nil
}

// checkDomain enforces the key's hard validity domain on one resolved value.
func checkDomain(k Key, v float64) error {
	min, max := k.Min, k.Max
	if k.Kind == Probability {
		min, max = 0, 1
	} else if max == 0 {
		max = math.Inf(1)
	}
	if v < min || v > max {
		return fmt.Errorf("%s: key %q: value %v outside domain [%v, %v]: %w",
			methodResolve, k.Name, v, min, max, ErrConfiguration)
	}
	return nil
}

// Problem returns the schema's problem name.
func (r *Resolved) Problem() string { return r.problem }

// Has reports whether the snapshot holds the named key.
func (r *Resolved) Has(name string) bool {
	_, ok := r.vals[name]
	return ok
}

// Int returns the resolved integer scalar for name.
// Panics if the key is absent or not Int-kinded (programmer error: the
// accessor set must mirror the schema).
func (r *Resolved) Int(name string) int {
	return int(r.Int64(name))
}

// Int64 returns the resolved integer scalar for name as int64.
func (r *Resolved) Int64(name string) int64 {
	e := r.must(name)
	if e.kind != Int {
		panic(fmt.Sprintf("config: Int64(%q): key is %s, not int", name, e.kind))
	}
	return int64(e.lo)
}

// Float returns the resolved real scalar for name. Int, Float and
// Probability kinds are all readable as floats.
func (r *Resolved) Float(name string) float64 {
	e := r.must(name)
	if e.kind.interval() {
		panic(fmt.Sprintf("config: Float(%q): key is %s, not scalar", name, e.kind))
	}
	return e.lo
}

// IntInterval returns the inclusive integer pair for name.
func (r *Resolved) IntInterval(name string) (lo, hi int64) {
	e := r.must(name)
	if e.kind != IntInterval {
		panic(fmt.Sprintf("config: IntInterval(%q): key is %s, not int-interval", name, e.kind))
	}
	return int64(e.lo), int64(e.hi)
}

// Interval returns the inclusive real pair for name; both interval kinds are
// readable as float intervals.
func (r *Resolved) Interval(name string) (lo, hi float64) {
	e := r.must(name)
	if !e.kind.interval() {
		panic(fmt.Sprintf("config: Interval(%q): key is %s, not interval", name, e.kind))
	}
	return e.lo, e.hi
}

// Snapshot returns a JSON-friendly copy of the snapshot: scalars as float64,
// intervals as [2]float64. The map is fresh on every call.
func (r *Resolved) Snapshot() map[string]any {
	out := make(map[string]any, len(r.vals))
	for name, e := range r.vals {
		if e.kind.interval() {
			out[name] = [2]float64{e.lo, e.hi}
		} else {
			out[name] = e.lo
		}
	}
	return out
}

// must returns the entry for name or panics (programmer error).
func (r *Resolved) must(name string) entry {
	e, ok := r.vals[name]
	if !ok {
		panic(fmt.Sprintf("config: no key %q in resolved parameters for %q", name, r.problem))
	}
	return e
}
