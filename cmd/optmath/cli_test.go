// SPDX-License-Identifier: MIT
// Package: optmath/cmd/optmath
//
// cli_test.go - end-to-end command runs through the cobra tree.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/catalog"
	"github.com/optsuite/OptMATH/config"
)

// execute runs the CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "list")
	require.NoError(t, err)
	require.Equal(t, catalog.Names(), strings.Split(strings.TrimSpace(out), "\n"))
}

func TestList_Keys(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "list", "--keys")
	require.NoError(t, err)
	require.Contains(t, out, "knapsack\n")
	require.Contains(t, out, "n_items")
	require.Contains(t, out, "default 3:30")
	require.Contains(t, out, "probability")
	require.Contains(t, out, "[0, 1]")
}

func TestGenerate_LPToStdout(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "generate", "--problem", "knapsack", "--seed", "7", "--set", "n_items=5")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "\\ problem: knapsack\n\\ seed: 7\n"))
	require.Contains(t, out, "Maximize")
	require.Contains(t, out, "select_4")
	require.NotContains(t, out, "select_5")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "End"))
}

func TestGenerate_JSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inst.json")
	out, err := execute(t, "generate", "--problem", "tsp", "--seed", "3", "--format", "json", "--out", path)
	require.NoError(t, err)
	require.Empty(t, out)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap struct {
		Problem string `json:"problem"`
		Seed    int64  `json:"seed"`
	}
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Equal(t, "tsp", snap.Problem)
	require.Equal(t, int64(3), snap.Seed)
}

func TestGenerate_SeedFromEnv(t *testing.T) {
	t.Setenv("OPTMATH_SEED", "11")

	out, err := execute(t, "generate", "--problem", "knapsack")
	require.NoError(t, err)
	require.Contains(t, out, "\\ seed: 11\n")

	// An explicit flag wins over the environment.
	out, err = execute(t, "generate", "--problem", "knapsack", "--seed", "5")
	require.NoError(t, err)
	require.Contains(t, out, "\\ seed: 5\n")
}

func TestGenerate_Rejections(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name    string
		args    []string
		wantErr error
		substr  string
	}{
		{
			name:    "unknown problem",
			args:    []string{"generate", "--problem", "sudoku"},
			wantErr: catalog.ErrUnknownProblem,
			substr:  "sudoku",
		},
		{
			name:   "set without value",
			args:   []string{"generate", "--problem", "knapsack", "--set", "n_items"},
			substr: "key=value",
		},
		{
			name:    "set with non-numeric value",
			args:    []string{"generate", "--problem", "knapsack", "--set", "n_items=lots"},
			wantErr: config.ErrConfiguration,
			substr:  "n_items=lots",
		},
		{
			name:    "set with reversed range",
			args:    []string{"generate", "--problem", "knapsack", "--set", "n_items=30:3"},
			wantErr: config.ErrConfiguration,
			substr:  "n_items",
		},
		{
			name:   "unknown format",
			args:   []string{"generate", "--problem", "knapsack", "--format", "mps"},
			substr: "unknown format",
		},
		{
			name:   "missing problem flag",
			args:   []string{"generate"},
			substr: "problem",
		},
	}
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
			require.ErrorContains(t, err, tc.substr)
		})
	}
}

func TestDataset_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	specPath := filepath.Join(dir, "bench.yaml")
	specText := "name: bench\nseed: 42\njobs:\n" +
		"  - problem: knapsack\n    count: 2\n    config:\n      n_items: 6\n" +
		"  - problem: tsp\n    count: 1\n    format: both\n"
	require.NoError(t, os.WriteFile(specPath, []byte(specText), 0o644))

	outDir := filepath.Join(dir, "out")
	out, err := execute(t, "dataset", "--spec", specPath, "--out", outDir, "--workers", "2")
	require.NoError(t, err)
	require.Contains(t, out, "wrote 3 instances")

	for _, f := range []string{"manifest.yaml", "knapsack_0_0000.lp", "knapsack_0_0001.lp", "tsp_1_0000.lp", "tsp_1_0000.json"} {
		_, err := os.Stat(filepath.Join(outDir, f))
		require.NoError(t, err, "missing %s", f)
	}
}

func TestDataset_Rejections(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "dataset", "--spec", "none.yaml", "--out", "x", "--workers", "-1")
	require.ErrorContains(t, err, "workers")

	_, err = execute(t, "dataset", "--spec", filepath.Join(t.TempDir(), "missing.yaml"), "--out", "x")
	require.ErrorContains(t, err, "LoadSpec")
}
