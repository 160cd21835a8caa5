// SPDX-License-Identifier: MIT
// Package: optmath/knapsack
//
// knapsack_test.go - capacity derivation, bounds, determinism, fail-fast
// configuration errors.

package knapsack_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/knapsack"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

func TestGenerateInstance_CapacityFromRatio(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		"n_items":        config.Fixed(50),
		"weight_range":   config.Range(1, 500),
		"capacity_ratio": config.Fixed(0.7),
	}
	inst, err := knapsack.New(cfg, gen.WithSeed(7)).GenerateInstance()
	require.NoError(t, err)

	weights := inst.IntColumn("weight")
	require.Len(t, weights, 50)
	var total float64
	for _, w := range weights {
		require.GreaterOrEqual(t, w, int64(1))
		require.LessOrEqual(t, w, int64(500))
		total += float64(w)
	}

	capacity := inst.Params()["capacity"].(float64)
	require.Greater(t, capacity, 0.0)
	require.InDelta(t, 0.7*total, capacity, 0.5, "capacity is the rounded ratio of the weight total")

	values := inst.IntColumn("value")
	require.Len(t, values, 50)
	for _, v := range values {
		require.GreaterOrEqual(t, v, int64(10))
		require.LessOrEqual(t, v, int64(300))
	}
}

func TestGenerateInstance_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_items": config.Range(5, 30)}
	a, err := knapsack.New(cfg, gen.WithSeed(42)).GenerateInstance()
	require.NoError(t, err)
	b, err := knapsack.New(cfg, gen.WithSeed(42)).GenerateInstance()
	require.NoError(t, err)

	var lpA, lpB bytes.Buffer
	require.NoError(t, a.WriteLP(&lpA))
	require.NoError(t, b.WriteLP(&lpB))
	require.Equal(t, lpA.String(), lpB.String())

	jsA, err := json.Marshal(a)
	require.NoError(t, err)
	jsB, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, jsA, jsB)

	c, err := knapsack.New(cfg, gen.WithSeed(43)).GenerateInstance()
	require.NoError(t, err)
	var lpC bytes.Buffer
	require.NoError(t, c.WriteLP(&lpC))
	require.NotEqual(t, lpA.String(), lpC.String(), "different seeds diverge")
}

func TestGenerateInstance_MinAboveMaxFailsFast(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"weight_range": config.Range(100, 50)}
	inst, err := knapsack.New(cfg, gen.WithSeed(1)).GenerateInstance()
	require.Nil(t, inst)
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.NotErrorIs(t, err, sample.ErrExhausted)
	require.Contains(t, err.Error(), "weight_range")
	require.Contains(t, err.Error(), "knapsack.GenerateInstance")
}

func TestGenerateInstance_UnknownKeyStrictByDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_item": config.Fixed(5)} // typo
	_, err := knapsack.New(cfg, gen.WithSeed(1)).GenerateInstance()
	require.ErrorIs(t, err, config.ErrConfiguration)

	inst, err := knapsack.New(cfg, gen.WithSeed(1), gen.WithLenient()).GenerateInstance()
	require.NoError(t, err)
	require.NotNil(t, inst)
}

func TestGenerateInstance_ZeroRatioRejected(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"capacity_ratio": config.Fixed(0)}
	_, err := knapsack.New(cfg, gen.WithSeed(3)).GenerateInstance()
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.Contains(t, err.Error(), "capacity_ratio")
}

func TestGenerateInstance_Formulation(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_items": config.Fixed(4)}
	inst, err := knapsack.New(cfg, gen.WithSeed(9)).GenerateInstance()
	require.NoError(t, err)

	m := inst.Model()
	require.Equal(t, model.Maximize, m.Dir())
	require.Equal(t, 4, m.NumVars())
	require.Equal(t, 1, m.NumConstrs())

	row := m.Constr(0)
	require.Equal(t, "capacity", row.Name)
	require.Equal(t, model.LE, row.Sense)
	require.Len(t, row.Terms, 4)
	require.Equal(t, inst.Params()["capacity"].(float64), row.RHS)

	for i := 0; i < 4; i++ {
		def := m.Def(model.Var(i))
		require.Equal(t, model.Binary, def.Type)
	}

	// Objective coefficients are exactly the item values.
	values := inst.IntColumn("value")
	coeffs := m.ObjCoeffs()
	for i, v := range values {
		name := m.Def(model.Var(i)).Name
		require.Equal(t, float64(v), coeffs[name])
	}
}
