// SPDX-License-Identifier: MIT
// Package: optmath/cmd/optmath
//
// root.go - root command, shared flags and the CLI logger.
//
// Contract:
//  - Subcommands stay thin: build a Config, call the library, print. All
//    validation and generation semantics live in the library packages.
//  - Every value flag also resolves from the environment (OPTMATH_SEED,
//    OPTMATH_FORMAT, ...); an explicit flag wins over the environment.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix namespaces the environment variables read by bindFlags.
const envPrefix = "optmath"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "optmath",
		Short: "Seeded generators for classical optimization benchmarks",
		Long: `optmath samples concrete instances of classical MILP and combinatorial
optimization problems (knapsack, facility location, vehicle routing, ...)
from parameterized random generators. Every instance is pinned to a seed,
exported as CPLEX-style LP text or structured JSON, and reproducible
byte for byte.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.AddCommand(newListCmd(), newGenerateCmd(), newDatasetCmd())
	return root
}

// bindFlags layers the named flags of cmd over OPTMATH_* environment
// variables. Returned viper reads flag-if-set, else env, else flag default.
func bindFlags(cmd *cobra.Command, names ...string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, name := range names {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return v
}

// newLogger builds the CLI logger: console output on stderr, warnings only
// unless --verbose lifts it to debug.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
