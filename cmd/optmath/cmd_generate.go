// SPDX-License-Identifier: MIT
// Package: optmath/cmd/optmath
//
// cmd_generate.go - single-instance generation to stdout or a file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optsuite/OptMATH/catalog"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
)

func newGenerateCmd() *cobra.Command {
	var (
		problem string
		seed    int64
		sets    []string
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one instance of a problem class",
		Example: `  optmath generate --problem knapsack
  optmath generate --problem vrptw --seed 42 --set n_customers=8 --set demand_range=1:20
  optmath generate --problem diet --format json --out diet.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := bindFlags(cmd, "seed", "format", "out")

			format := v.GetString("format")
			if format != "lp" && format != "json" {
				return fmt.Errorf("generate: unknown format %q (want lp or json)", format)
			}

			cfg := config.Config{}
			for _, s := range sets {
				key, raw, found := strings.Cut(s, "=")
				if !found || key == "" {
					return fmt.Errorf("generate: --set %q: want key=value", s)
				}
				val, err := config.ParseValue(raw)
				if err != nil {
					return fmt.Errorf("generate: --set %q: %w", s, err)
				}
				cfg[key] = val
			}

			var opts []gen.Option
			if v.IsSet("seed") {
				opts = append(opts, gen.WithSeed(v.GetInt64("seed")))
			}

			g, err := catalog.New(problem, cfg, opts...)
			if err != nil {
				return err
			}
			inst, err := g.GenerateInstance()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if path := v.GetString("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("generate: %w", err)
				}
				defer f.Close()
				w = f
			}

			if format == "json" {
				raw, err := json.MarshalIndent(inst, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%s\n", raw)
				return err
			}
			return inst.WriteLP(w)
		},
	}

	cmd.Flags().StringVarP(&problem, "problem", "p", "", "problem class to generate (see: optmath list)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (omit for a fresh random seed)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a configuration key, key=value or key=min:max (repeatable)")
	cmd.Flags().StringVar(&format, "format", "lp", "output format: lp or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("problem")
	return cmd
}
