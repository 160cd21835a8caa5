// SPDX-License-Identifier: MIT
// Package: optmath/gen
//
// generator.go - the one-operation surface shared by all problem families.

package gen

// Generator produces instances of one problem family. Implementations are
// cheap to construct; all validation and sampling happens inside
// GenerateInstance, which either returns a complete immutable Instance or
// an error and nothing else (no partial results).
type Generator interface {
	// Problem names the family ("knapsack", "vrptw", ...).
	Problem() string

	// GenerateInstance runs one full sampling pipeline pass.
	GenerateInstance() (*Instance, error)
}
