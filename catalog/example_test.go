// SPDX-License-Identifier: MIT
// Package: optmath/catalog
//
// example_test.go - registry walkthroughs.

package catalog_test

import (
	"fmt"

	"github.com/optsuite/OptMATH/catalog"
	"github.com/optsuite/OptMATH/gen"
)

// ExampleNames lists every registered problem class in sorted order.
func ExampleNames() {
	for _, name := range catalog.Names() {
		fmt.Println(name)
	}
	// Output:
	// assign
	// binpack
	// diet
	// facility
	// knapsack
	// landing
	// lotsizing
	// portfolio
	// setcover
	// supplychain
	// transport
	// tsp
	// vrptw
}

// ExampleNew constructs a generator by name and generates one instance
// with schema defaults. The recorded seed makes the run replayable.
func ExampleNew() {
	g, err := catalog.New("knapsack", nil, gen.WithSeed(7))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	inst, err := g.GenerateInstance()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(inst.Problem(), "seed", inst.Seed())
	// Output:
	// knapsack seed 7
}
