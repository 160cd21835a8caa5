// SPDX-License-Identifier: MIT
// Package: optmath/sample
//
// retry.go - bounded structural redraw and the exhaustion sentinel.

package sample

import (
	"errors"
	"fmt"
)

// ErrExhausted reports that a bounded structural redraw spent its whole
// budget without producing a valid draw. Wrapped errors name the draw and
// the budget; match with errors.Is.
var ErrExhausted = errors.New("optmath: sampling exhausted")

// Retry runs attempt up to budget times and returns nil on the first success.
// When every attempt fails it returns an ErrExhausted wrap naming what.
// Panics when budget < 1 (programmer error; retry budgets are schema-checked
// to be positive).
func Retry(budget int, what string, attempt func() bool) error {
	if budget < 1 {
		panic("sample: Retry: budget < 1")
	}
	for i := 0; i < budget; i++ {
		if attempt() {
			return nil
		}
	}
	return fmt.Errorf("Retry: %s: budget %d exhausted: %w", what, budget, ErrExhausted)
}
