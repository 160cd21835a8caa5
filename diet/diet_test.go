// SPDX-License-Identifier: MIT
// Package: optmath/diet
//
// diet_test.go - requirement windows, reachability rejection, model shape.

package diet_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/diet"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
)

func mustGenerate(t *testing.T, cfg config.Config, opts ...gen.Option) *gen.Instance {
	t.Helper()
	inst, err := diet.New(cfg, opts...).GenerateInstance()
	require.NoError(t, err)
	return inst
}

func TestGenerateInstance_RequirementWindows(t *testing.T) {
	t.Parallel()

	for _, seed := range []int64{1, 8, 42, 1000} {
		inst := mustGenerate(t, nil, gen.WithSeed(seed))

		minReq := inst.IntColumn("min_requirement")
		maxReq := inst.IntColumn("max_requirement")
		require.Equal(t, len(minReq), len(maxReq))
		for i := range minReq {
			require.GreaterOrEqual(t, minReq[i], int64(3))
			require.LessOrEqual(t, minReq[i], int64(15))
			require.GreaterOrEqual(t, maxReq[i], minReq[i])
			require.LessOrEqual(t, maxReq[i]-minReq[i], int64(25))
		}
	}
}

func TestGenerateInstance_UnreachableRequirementRejected(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		"n_nutrients":    config.Fixed(2),
		"nutrient_range": config.Range(0, 0),
	}
	_, err := diet.New(cfg, gen.WithSeed(4)).GenerateInstance()
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.ErrorContains(t, err, "nutrient_0")
}

func TestGenerateInstance_ModelShape(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		"n_nutrients": config.Fixed(3),
		"n_foods":     config.Fixed(5),
	}
	inst := mustGenerate(t, cfg, gen.WithSeed(11))
	m := inst.Model()

	require.Equal(t, model.Minimize, m.Dir())
	require.Equal(t, 5, m.NumVars())
	require.Equal(t, 6, m.NumConstrs())

	for j := 0; j < 5; j++ {
		v, ok := m.Lookup(fmt.Sprintf("buy_%d", j))
		require.True(t, ok)
		def := m.Def(v)
		require.Equal(t, model.Continuous, def.Type)
		require.Equal(t, 0.0, def.Lo)
		require.Equal(t, 10.0, def.Hi)
	}

	content, _ := inst.Pair("content")
	minReq := inst.IntColumn("min_requirement")
	maxReq := inst.IntColumn("max_requirement")
	for i := 0; i < 3; i++ {
		lo := m.Constr(2 * i)
		hi := m.Constr(2*i + 1)
		require.Equal(t, fmt.Sprintf("nutrient_%d_min", i), lo.Name)
		require.Equal(t, fmt.Sprintf("nutrient_%d_max", i), hi.Name)
		require.Equal(t, model.GE, lo.Sense)
		require.Equal(t, model.LE, hi.Sense)
		require.Equal(t, float64(minReq[i]), lo.RHS)
		require.Equal(t, float64(maxReq[i]), hi.RHS)
		require.Len(t, lo.Terms, 5)
		require.Len(t, hi.Terms, 5)
		for j := 0; j < 5; j++ {
			want := float64(content.Ints[i*5+j])
			require.Equal(t, want, lo.Terms[j].Coef)
			require.Equal(t, want, hi.Terms[j].Coef)
		}
	}
}

func TestGenerateInstance_ObjectiveIsCost(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_foods": config.Fixed(4)}
	inst := mustGenerate(t, cfg, gen.WithSeed(23))
	m := inst.Model()

	cost := inst.IntColumn("cost")
	obj := m.ObjCoeffs()
	require.Len(t, obj, 4)
	for j := 0; j < 4; j++ {
		require.Equal(t, float64(cost[j]), obj[fmt.Sprintf("buy_%d", j)])
	}
}

func TestGenerateInstance_Reproducible(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(91)).WriteLP(&a))
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(91)).WriteLP(&b))
	require.Equal(t, a.String(), b.String())
}

func TestGenerateInstance_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"reversed costs", config.Config{"cost_range": config.Range(10, 1)}},
		{"unknown key", config.Config{"n_food": config.Fixed(4)}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := diet.New(tc.cfg, gen.WithSeed(1)).GenerateInstance()
			require.ErrorIs(t, err, config.ErrConfiguration)
		})
	}
}
