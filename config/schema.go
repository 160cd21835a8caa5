// SPDX-License-Identifier: MIT
// Package: optmath/config
//
// schema.go - typed per-problem parameter schemas.
//
// Design:
//   - Each problem package declares one Schema: the full set of recognized
//     keys with kind, default, and hard validity domain, plus named cross-key
//     Checks. This replaces the duck-typed parameter dictionaries of ad hoc
//     generators with a structure the resolver can verify exhaustively.
//   - Key order in Schema.Keys is the resolution order and therefore part of
//     the determinism contract: a fixed seed consumes the stream identically
//     on every platform.
//
// AI-Hints:
//   - Scalar kinds (Int, Float, Probability) resolve a Range to ONE drawn
//     scalar; interval kinds (IntInterval, FloatInterval) keep the pair for
//     per-entity draws by the quantity sampler.
//   - Key.Max == 0 means "unbounded above"; no catalog key has a hard upper
//     bound of zero. Probability forces the domain [0, 1] regardless.
//   - Put relations between keys (e.g. n_suppliers + n_customers < n_nodes)
//     into Checks; they run once, after all keys resolved.

package config

// Kind declares how a key's Value is resolved and typed.
type Kind uint8

const (
	// Int resolves to a single integer scalar.
	Int Kind = iota
	// Float resolves to a single real scalar.
	Float
	// Probability resolves to a single real scalar in [0, 1].
	Probability
	// IntInterval stays an inclusive integer pair [lo, hi].
	IntInterval
	// FloatInterval stays an inclusive real pair [lo, hi].
	FloatInterval
)

// String renders the kind for error messages.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Probability:
		return "probability"
	case IntInterval:
		return "int-interval"
	case FloatInterval:
		return "float-interval"
	default:
		return "unknown"
	}
}

// interval reports whether the kind keeps a pair after resolution.
func (k Kind) interval() bool { return k == IntInterval || k == FloatInterval }

// integral reports whether the kind demands integer values/bounds.
func (k Kind) integral() bool { return k == Int || k == IntInterval }

// Key is one recognized configuration key.
type Key struct {
	// Name is the configuration key ("n_items", "weight_range", ...).
	Name string
	// Kind selects resolution and typing rules.
	Kind Kind
	// Def is the documented default, used when the Config omits the key.
	Def Value
	// Min is the hard domain lower bound. The zero value keeps the common
	// non-negativity requirement; set it explicitly for keys allowing
	// negative values (e.g. correlation bounds).
	Min float64
	// Max is the hard domain upper bound; 0 means unbounded above.
	Max float64
}

// Check is a named cross-key validity predicate, evaluated after every key
// resolved. Fn returns a descriptive error (plain fmt.Errorf) on violation;
// the resolver wraps it with ErrConfiguration and the check name.
type Check struct {
	Name string
	Fn   func(r *Resolved) error
}

// Schema is the complete typed description of one problem class's
// configuration surface.
type Schema struct {
	// Problem is the canonical problem name ("knapsack", "vrptw", ...).
	Problem string
	// Keys in resolution order (deterministic stream consumption).
	Keys []Key
	// Checks in evaluation order.
	Checks []Check
}
