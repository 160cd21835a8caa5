// SPDX-License-Identifier: MIT
// Package: optmath/cmd/optmath
//
// cmd_list.go - problem catalog listing.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optsuite/OptMATH/catalog"
	"github.com/optsuite/OptMATH/config"
)

func newListCmd() *cobra.Command {
	var keys bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered problem classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range catalog.Names() {
				fmt.Fprintln(out, name)
				if !keys {
					continue
				}
				schema, err := catalog.Schema(name)
				if err != nil {
					return err
				}
				for _, k := range schema.Keys {
					fmt.Fprintf(out, "  %-20s %-14s default %-12s domain %s\n",
						k.Name, k.Kind, formatValue(k.Def), formatDomain(k))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keys, "keys", false, "show each problem's configuration keys")
	return cmd
}

// formatValue renders a default in the --set syntax: "50" or "1:500".
func formatValue(v config.Value) string {
	lo, hi := v.Bounds()
	if v.IsFixed() {
		return fmt.Sprintf("%g", lo)
	}
	return fmt.Sprintf("%g:%g", lo, hi)
}

// formatDomain renders the hard bounds of a key; Max 0 means unbounded.
func formatDomain(k config.Key) string {
	if k.Kind == config.Probability {
		return "[0, 1]"
	}
	if k.Max == 0 {
		return fmt.Sprintf(">= %g", k.Min)
	}
	return fmt.Sprintf("[%g, %g]", k.Min, k.Max)
}
