// SPDX-License-Identifier: MIT
// Package: optmath/balance
//
// balance.go - sum-shaping strategies: exact partition, supply/demand
// equalization, total raising.
//
// Contract:
//   - Every strategy has a provable postcondition, stated on the function;
//     generators rely on those postconditions instead of re-checking.
//   - A certificate the configured quantities cannot satisfy is a user
//     error: the strategy returns a config.ErrConfiguration wrap naming the
//     quantities. Structural misuse (nil stream, nonsense part counts) is a
//     programmer error and panics.
//   - In-place strategies mutate their slice argument and touch nothing
//     else; draw order inside Partition is front-to-back, one draw per
//     non-final part.

// Package balance implements the feasibility strategies shared by the
// generators: exact-sum partition, supply/demand equalization, capacity
// raising and big-M derivation.
package balance

import (
	"fmt"
	"math/rand"

	"github.com/optsuite/OptMATH/config"
)

const (
	methodPartition  = "Partition"
	methodEqualize   = "Equalize"
	methodRaiseTotal = "RaiseTotal"
)

// Partition splits total into parts random shares, each at least min.
//
// Part i (i < parts-1) draws uniformly from [min, remaining-(parts-1-i)*min];
// the final part takes the remainder. Postcondition: the shares sum exactly
// to total and every share is >= min. Returns a config.ErrConfiguration wrap
// when total < parts*min; panics on parts < 1, min < 0 or a nil stream.
func Partition(r *rand.Rand, total int64, parts int, min int64) ([]int64, error) {
	switch {
	case r == nil:
		panic("balance: Partition: nil rng")
	case parts < 1:
		panic("balance: Partition: parts < 1")
	case min < 0:
		panic("balance: Partition: min < 0")
	}
	if total < int64(parts)*min {
		return nil, fmt.Errorf("%s: total=%d < parts=%d * min=%d: %w",
			methodPartition, total, parts, min, config.ErrConfiguration)
	}

	out := make([]int64, parts)
	remaining := total
	for i := 0; i < parts-1; i++ {
		// Leave at least min for every part still to come.
		hi := remaining - int64(parts-1-i)*min
		share := min
		if hi > min {
			share = min + r.Int63n(hi-min+1)
		}
		out[i] = share
		remaining -= share
	}
	out[parts-1] = remaining
	return out, nil
}

// Equalize reshapes adjust in place until its sum equals target's sum.
//
// A surplus is shrunk front-to-back with a floor of zero per element; a
// deficit is added wholly to adjust[0]. Postcondition: exact sum equality.
// Returns a config.ErrConfiguration wrap when adjust is empty (or drained)
// while the sums still differ.
func Equalize(adjust, target []int64) error {
	var sumA, sumT int64
	for _, v := range adjust {
		sumA += v
	}
	for _, v := range target {
		sumT += v
	}
	diff := sumA - sumT
	if diff == 0 {
		return nil
	}
	if len(adjust) == 0 {
		return fmt.Errorf("%s: empty adjustable side, sums differ by %d: %w",
			methodEqualize, diff, config.ErrConfiguration)
	}
	if diff < 0 {
		adjust[0] += -diff
		return nil
	}
	for i := range adjust {
		cut := adjust[i]
		if cut > diff {
			cut = diff
		}
		adjust[i] -= cut
		diff -= cut
		if diff == 0 {
			return nil
		}
	}
	// Only reachable when target's sum is negative, which resolved
	// non-negative quantities cannot produce.
	return fmt.Errorf("%s: surplus %d not absorbable at floor 0: %w",
		methodEqualize, diff, config.ErrConfiguration)
}

// RaiseTotal raises xs in place until its sum is at least target, spreading
// the deficit evenly with the remainder on the lowest indices.
//
// Postcondition: sum(xs) >= target. A no-op when the sum already suffices.
// Returns a config.ErrConfiguration wrap when xs is empty and target > 0.
func RaiseTotal(xs []int64, target int64) error {
	var sum int64
	for _, v := range xs {
		sum += v
	}
	deficit := target - sum
	if deficit <= 0 {
		return nil
	}
	if len(xs) == 0 {
		return fmt.Errorf("%s: no entries to raise toward target %d: %w",
			methodRaiseTotal, target, config.ErrConfiguration)
	}
	n := int64(len(xs))
	each, rem := deficit/n, deficit%n
	for i := range xs {
		xs[i] += each
		if int64(i) < rem {
			xs[i]++
		}
	}
	return nil
}
