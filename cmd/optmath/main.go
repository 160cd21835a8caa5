// SPDX-License-Identifier: MIT
// Package: optmath/cmd/optmath
//
// main.go - process entry: signal-aware context, root dispatch.

// The optmath command generates seeded instances of classical optimization
// problems, singly or as whole datasets, from the generator catalog.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
