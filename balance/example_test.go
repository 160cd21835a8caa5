// SPDX-License-Identifier: MIT
// Package: optmath/balance
//
// example_test.go - runnable strategy walkthroughs.

package balance_test

import (
	"fmt"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/rng"
)

// ExampleEqualize balances a drawn supply vector against fixed demands.
// The surplus of 40 is absorbed front to back, so only the first origin
// shrinks; a deficit would instead be added wholly to the first origin.
func ExampleEqualize() {
	supplies := []int64{40, 30, 30} // sum 100
	demands := []int64{20, 25, 15}  // sum 60

	if err := balance.Equalize(supplies, demands); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(supplies)
	// Output:
	// [0 30 30]
}

// ExampleRaiseTotal lifts drawn capacities until they cover total demand.
// The deficit of 10 is spread evenly, remainder on the lowest indices.
func ExampleRaiseTotal() {
	capacities := []int64{30, 30, 30}

	if err := balance.RaiseTotal(capacities, 100); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(capacities)
	// Output:
	// [34 33 33]
}

// ExamplePartition splits a total into random shares that provably sum
// back to the total, each share at least the configured minimum.
func ExamplePartition() {
	shares, err := balance.Partition(rng.FromSeed(7), 1000, 4, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var sum int64
	for _, s := range shares {
		sum += s
	}
	fmt.Println(len(shares), "shares summing to", sum)
	// Output:
	// 4 shares summing to 1000
}
