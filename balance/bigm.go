// SPDX-License-Identifier: MIT
// Package: optmath/balance
//
// bigm.go - scalar floor raising and big-M derivation.
//
// Big-M constants are derived from the worst-case activation of the
// conditional constraint they deactivate; the inputs come from the sampled
// data, so the constant scales with the configuration instead of being a
// hard-coded ceiling.

package balance

import "gonum.org/v1/gonum/floats"

// AtLeast returns x raised to floor if needed.
func AtLeast(x, floor int64) int64 {
	if x < floor {
		return floor
	}
	return x
}

// AtLeastFloat returns x raised to floor if needed.
func AtLeastFloat(x, floor float64) float64 {
	if x < floor {
		return floor
	}
	return x
}

// RaiseMax raises the maximum element of xs to target in place, touching
// nothing when the maximum already reaches it. Panics on an empty slice.
func RaiseMax(xs []float64, target float64) {
	if len(xs) == 0 {
		panic("balance: RaiseMax: empty slice")
	}
	i := floats.MaxIdx(xs)
	if xs[i] < target {
		xs[i] = target
	}
}

// BigM derives a big-M constant from the exact worst-case activation of a
// conditional constraint: margin * max(worst, 0). Margin 1 is exact; larger
// margins add slack. Panics when margin < 1 (a smaller constant could cut
// off feasible activations).
func BigM(worst, margin float64) float64 {
	if margin < 1 {
		panic("balance: BigM: margin < 1")
	}
	if worst <= 0 {
		return 0
	}
	return margin * worst
}
