// SPDX-License-Identifier: MIT
// Package: optmath/portfolio
//
// portfolio_test.go - covariance assembly, feasibility repairs, quad row.

package portfolio_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/portfolio"
)

func mustGenerate(t *testing.T, cfg config.Config, opts ...gen.Option) *gen.Instance {
	t.Helper()
	inst, err := portfolio.New(cfg, opts...).GenerateInstance()
	require.NoError(t, err)
	return inst
}

func TestGenerateInstance_CorrelationStructure(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_assets": config.Fixed(8)}
	inst := mustGenerate(t, cfg, gen.WithSeed(42))

	corr, ok := inst.Pair("correlation")
	require.True(t, ok)
	const n = 8
	for i := 0; i < n; i++ {
		require.Equal(t, 1.0, corr.Floats[i*n+i])
		for j := 0; j < n; j++ {
			require.Equal(t, corr.Floats[i*n+j], corr.Floats[j*n+i])
			if i != j {
				require.GreaterOrEqual(t, corr.Floats[i*n+j], -0.2)
				require.LessOrEqual(t, corr.Floats[i*n+j], 0.8)
			}
		}
	}
}

func TestGenerateInstance_CovarianceFromVolatilities(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_assets": config.Fixed(5)}
	inst := mustGenerate(t, cfg, gen.WithSeed(7))

	vol := inst.FloatColumn("volatility")
	corr, _ := inst.Pair("correlation")
	cov, _ := inst.Pair("covariance")
	const n = 5
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := corr.Floats[i*n+j] * vol[i] * vol[j]
			require.InDelta(t, want, cov.Floats[i*n+j], 1e-12)
		}
	}
}

func TestGenerateInstance_WeightBoundRaisedToBudget(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		"n_assets":      config.Fixed(10),
		"weight_bounds": config.Range(0.0, 0.05),
	}
	inst := mustGenerate(t, cfg, gen.WithSeed(3))

	require.InDelta(t, 0.1, inst.Params()["weight_hi"].(float64), 1e-15)
	m := inst.Model()
	for i := 0; i < 10; i++ {
		v, ok := m.Lookup(fmt.Sprintf("weight_%d", i))
		require.True(t, ok)
		require.InDelta(t, 0.1, m.Def(v).Hi, 1e-15)
	}
}

func TestGenerateInstance_MaxReturnReachesTarget(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		"n_assets":      config.Fixed(6),
		"target_return": config.Fixed(0.15),
	}
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		inst := mustGenerate(t, cfg, gen.WithSeed(seed))
		best := 0.0
		for _, ret := range inst.FloatColumn("expected_return") {
			if ret > best {
				best = ret
			}
		}
		require.GreaterOrEqual(t, best, 0.15)
	}
}

func TestGenerateInstance_ModelShape(t *testing.T) {
	t.Parallel()

	const n = 4
	cfg := config.Config{"n_assets": config.Fixed(n)}
	inst := mustGenerate(t, cfg, gen.WithSeed(11))
	m := inst.Model()

	require.Equal(t, model.Minimize, m.Dir())
	require.Equal(t, n+1, m.NumVars())
	require.Equal(t, 3, m.NumConstrs())

	obj := m.ObjCoeffs()
	require.Equal(t, map[string]float64{"risk_var": 1}, obj)

	cov, _ := inst.Pair("covariance")
	risk := m.Constr(0)
	require.Equal(t, "risk", risk.Name)
	require.Equal(t, model.EQ, risk.Sense)
	require.Zero(t, risk.RHS)
	require.Len(t, risk.Terms, 1)
	require.Equal(t, -1.0, risk.Terms[0].Coef)
	require.Len(t, risk.Quad, n*(n+1)/2)
	k := 0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			q := risk.Quad[k]
			k++
			want := cov.Floats[i*n+j]
			if i != j {
				want *= 2
			}
			require.InDelta(t, want, q.Coef, 1e-12)
		}
	}

	budget := m.Constr(1)
	require.Equal(t, "budget", budget.Name)
	require.Equal(t, model.EQ, budget.Sense)
	require.Equal(t, 1.0, budget.RHS)
	require.Len(t, budget.Terms, n)

	returns := inst.FloatColumn("expected_return")
	ret := m.Constr(2)
	require.Equal(t, "return", ret.Name)
	require.Equal(t, model.GE, ret.Sense)
	require.Equal(t, 0.10, ret.RHS)
	for i, term := range ret.Terms {
		require.Equal(t, returns[i], term.Coef)
	}
}

func TestGenerateInstance_RoundTripKeepsQuadRow(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_assets": config.Fixed(3)}
	inst := mustGenerate(t, cfg, gen.WithSeed(29))

	var buf bytes.Buffer
	require.NoError(t, inst.Model().WriteLP(&buf))
	parsed, err := model.ParseLP(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Equal(t, inst.Model().NumVars(), parsed.NumVars())
	require.Equal(t, inst.Model().NumConstrs(), parsed.NumConstrs())
	require.Len(t, parsed.Constr(0).Quad, 6)
}

func TestGenerateInstance_Reproducible(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(61)).WriteLP(&a))
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(61)).WriteLP(&b))
	require.Equal(t, a.String(), b.String())
}

func TestGenerateInstance_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    config.Config
		substr string
	}{
		{
			"unreachable target",
			config.Config{"target_return": config.Fixed(0.2)},
			"target_return",
		},
		{
			"weight floor above budget",
			config.Config{"n_assets": config.Fixed(4), "weight_bounds": config.Range(0.4, 0.5)},
			"weight_bounds",
		},
		{
			"correlation outside unit range",
			config.Config{"correlation_range": config.Range(-1.5, 0.5)},
			"correlation_range",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := portfolio.New(tc.cfg, gen.WithSeed(1)).GenerateInstance()
			require.ErrorIs(t, err, config.ErrConfiguration)
			require.ErrorContains(t, err, tc.substr)
		})
	}
}
