// SPDX-License-Identifier: MIT
// Package: optmath/model
//
// errors.go - package sentinels.
//
// Error policy:
//   - ErrInvalidModel covers semantic defects of an assembled formulation
//     (dangling variable references, duplicate names, non-finite numbers).
//   - ErrLPSyntax covers malformed LP text during parsing, always wrapped
//     with the 1-based line number.
//   - Builder methods panic on programmer misuse (duplicate variable names,
//     inverted bounds) instead of deferring to Validate.

package model

import "errors"

var (
	// ErrInvalidModel - the formulation breaks a structural invariant.
	ErrInvalidModel = errors.New("model: invalid model")

	// ErrLPSyntax - the LP text cannot be parsed.
	ErrLPSyntax = errors.New("model: malformed LP")
)
