// SPDX-License-Identifier: MIT
// Package: optmath/gen
//
// errors.go - package sentinel.

package gen

import "errors"

// ErrDraft reports a structurally inconsistent Draft handed to Assemble:
// duplicate or dangling names, mismatched table lengths, missing model.
// Generator code that triggers it has a bug; user configuration cannot.
var ErrDraft = errors.New("optmath: inconsistent draft")
