// SPDX-License-Identifier: MIT
// Package: optmath/cmd/optmath
//
// cmd_dataset.go - batch generation from a YAML spec.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optsuite/OptMATH/dataset"
)

func newDatasetCmd() *cobra.Command {
	var (
		specPath string
		outDir   string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate a whole dataset from a YAML spec",
		Example: `  optmath dataset --spec bench.yaml --out ./bench
  optmath dataset --spec bench.yaml --out ./bench --workers 4 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := bindFlags(cmd, "spec", "out", "workers")

			workers := v.GetInt("workers")
			if workers < 0 {
				return fmt.Errorf("dataset: workers %d: want >= 1, or 0 for one per CPU", workers)
			}

			spec, err := dataset.LoadSpec(v.GetString("spec"))
			if err != nil {
				return err
			}

			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			opts := []dataset.BuilderOption{dataset.WithLogger(log)}
			if workers > 0 {
				opts = append(opts, dataset.WithWorkers(workers))
			}

			out := v.GetString("out")
			m, err := dataset.NewBuilder(out, opts...).Build(cmd.Context(), spec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d instances to %s (run %s)\n",
				len(m.Instances), out, m.Run)
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "dataset spec file (YAML)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent generators (0 = one per CPU)")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
