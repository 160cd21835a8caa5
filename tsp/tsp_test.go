// SPDX-License-Identifier: MIT
// Package: optmath/tsp
//
// tsp_test.go - distance structure, degree rows, MTZ shape.

package tsp_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/tsp"
)

func mustGenerate(t *testing.T, cfg config.Config, opts ...gen.Option) *gen.Instance {
	t.Helper()
	inst, err := tsp.New(cfg, opts...).GenerateInstance()
	require.NoError(t, err)
	return inst
}

func TestGenerateInstance_DistanceMatrix(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_cities": config.Fixed(6)}
	inst := mustGenerate(t, cfg, gen.WithSeed(42))

	dist, ok := inst.Pair("distance")
	require.True(t, ok)
	require.Equal(t, 6, dist.Rows)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i == j {
				require.Zero(t, dist.Ints[i*6+j])
			} else {
				require.GreaterOrEqual(t, dist.Ints[i*6+j], int64(10))
				require.LessOrEqual(t, dist.Ints[i*6+j], int64(1000))
			}
		}
	}
}

func TestGenerateInstance_ModelShape(t *testing.T) {
	t.Parallel()

	const n = 5
	cfg := config.Config{"n_cities": config.Fixed(n)}
	inst := mustGenerate(t, cfg, gen.WithSeed(7))
	m := inst.Model()

	require.Equal(t, model.Minimize, m.Dir())
	require.Equal(t, n*(n-1)+(n-1), m.NumVars())
	require.Equal(t, 2*n+(n-1)*(n-2), m.NumConstrs())

	// Ordering variables span [1, n-1]; city 0 has none.
	_, ok := m.Lookup("u_0")
	require.False(t, ok)
	for i := 1; i < n; i++ {
		v, ok := m.Lookup(fmt.Sprintf("u_%d", i))
		require.True(t, ok)
		def := m.Def(v)
		require.Equal(t, model.Continuous, def.Type)
		require.Equal(t, 1.0, def.Lo)
		require.Equal(t, float64(n-1), def.Hi)
	}

	for i := 0; i < 2*n; i++ {
		c := m.Constr(i)
		require.Equal(t, model.EQ, c.Sense)
		require.Equal(t, 1.0, c.RHS)
		require.Len(t, c.Terms, n-1)
		for _, term := range c.Terms {
			require.Equal(t, 1.0, term.Coef)
		}
	}
}

func TestGenerateInstance_MTZRow(t *testing.T) {
	t.Parallel()

	const n = 4
	cfg := config.Config{"n_cities": config.Fixed(n)}
	inst := mustGenerate(t, cfg, gen.WithSeed(3))
	m := inst.Model()

	found := false
	for i := 0; i < m.NumConstrs(); i++ {
		c := m.Constr(i)
		if c.Name != "mtz_1_2" {
			continue
		}
		found = true
		require.Equal(t, model.LE, c.Sense)
		require.Equal(t, float64(n-1), c.RHS)
		coefs := map[string]float64{}
		for _, term := range c.Terms {
			coefs[m.Def(term.V).Name] = term.Coef
		}
		require.Equal(t, 1.0, coefs["u_1"])
		require.Equal(t, -1.0, coefs["u_2"])
		require.Equal(t, float64(n), coefs["route_1_2"])
	}
	require.True(t, found)
}

func TestGenerateInstance_ObjectiveIsDistance(t *testing.T) {
	t.Parallel()

	const n = 4
	cfg := config.Config{"n_cities": config.Fixed(n)}
	inst := mustGenerate(t, cfg, gen.WithSeed(19))
	m := inst.Model()

	dist, _ := inst.Pair("distance")
	obj := m.ObjCoeffs()
	require.Len(t, obj, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				require.Equal(t, float64(dist.Ints[i*n+j]), obj[fmt.Sprintf("route_%d_%d", i, j)])
			}
		}
	}
}

func TestGenerateInstance_TwoCities(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_cities": config.Fixed(2)}
	inst := mustGenerate(t, cfg, gen.WithSeed(1))
	m := inst.Model()

	// Two route arcs, one ordering variable, no MTZ pairs.
	require.Equal(t, 3, m.NumVars())
	require.Equal(t, 4, m.NumConstrs())
}

func TestGenerateInstance_Reproducible(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(27)).WriteLP(&a))
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(27)).WriteLP(&b))
	require.Equal(t, a.String(), b.String())
}

func TestGenerateInstance_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"single city", config.Config{"n_cities": config.Fixed(1)}},
		{"reversed distances", config.Config{"distance_range": config.Range(1000, 10)}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tsp.New(tc.cfg, gen.WithSeed(1)).GenerateInstance()
			require.ErrorIs(t, err, config.ErrConfiguration)
		})
	}
}
