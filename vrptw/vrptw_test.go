// SPDX-License-Identifier: MIT
// Package: optmath/vrptw
//
// vrptw_test.go - window structure, capacity repair, derived constants.

package vrptw_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/vrptw"
)

func mustGenerate(t *testing.T, cfg config.Config, opts ...gen.Option) *gen.Instance {
	t.Helper()
	inst, err := vrptw.New(cfg, opts...).GenerateInstance()
	require.NoError(t, err)
	return inst
}

func TestGenerateInstance_DepotAndWindows(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_customers": config.Fixed(6)}
	inst := mustGenerate(t, cfg, gen.WithSeed(42))

	n, ok := inst.SetSize("node")
	require.True(t, ok)
	require.Equal(t, 7, n)

	demand := inst.IntColumn("demand")
	twLo := inst.IntColumn("tw_lo")
	twHi := inst.IntColumn("tw_hi")
	service := inst.IntColumn("service_time")

	require.Zero(t, demand[0])
	require.Zero(t, twLo[0])
	require.Zero(t, twHi[0])
	require.Zero(t, service[0])
	for i := 1; i < n; i++ {
		require.GreaterOrEqual(t, demand[i], int64(1))
		require.LessOrEqual(t, demand[i], int64(10))
		require.GreaterOrEqual(t, twHi[i]-twLo[i], int64(10))
		require.LessOrEqual(t, twHi[i]-twLo[i], int64(20))
	}

	dist, ok := inst.Pair("distance")
	require.True(t, ok)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				require.Zero(t, dist.Ints[i*n+j])
			} else {
				require.GreaterOrEqual(t, dist.Ints[i*n+j], int64(1))
				require.LessOrEqual(t, dist.Ints[i*n+j], int64(50))
			}
		}
	}
}

func TestGenerateInstance_CapacityCoversLargestDemand(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		"n_customers":      config.Fixed(5),
		"demand_range":     config.Range(5, 10),
		"vehicle_capacity": config.Fixed(1),
	}
	for _, seed := range []int64{1, 2, 3, 4} {
		inst := mustGenerate(t, cfg, gen.WithSeed(seed))
		capacity := int64(inst.Params()["capacity"].(float64))
		for _, d := range inst.IntColumn("demand") {
			require.GreaterOrEqual(t, capacity, d)
		}
	}
}

func TestGenerateInstance_DerivedConstantsCoverWorstCase(t *testing.T) {
	t.Parallel()

	cfg := config.Config{"n_customers": config.Range(4, 8)}
	for _, seed := range []int64{10, 20, 30} {
		inst := mustGenerate(t, cfg, gen.WithSeed(seed))

		twLo := inst.IntColumn("tw_lo")
		twHi := inst.IntColumn("tw_hi")
		service := inst.IntColumn("service_time")
		demand := inst.IntColumn("demand")
		dist, _ := inst.Pair("distance")

		worstDeparture, maxDist, maxDemand := int64(0), int64(0), int64(0)
		minLo := twLo[1]
		for i := 1; i < len(twLo); i++ {
			if d := twHi[i] + service[i]; d > worstDeparture {
				worstDeparture = d
			}
			if twLo[i] < minLo {
				minLo = twLo[i]
			}
			if demand[i] > maxDemand {
				maxDemand = demand[i]
			}
		}
		for _, d := range dist.Ints {
			if d > maxDist {
				maxDist = d
			}
		}

		params := inst.Params()
		mTime := params["m_time"].(float64)
		mLoad := params["m_load"].(float64)
		capacity := params["capacity"].(float64)
		require.GreaterOrEqual(t, mTime, float64(worstDeparture+maxDist-minLo))
		require.GreaterOrEqual(t, mLoad, capacity+float64(maxDemand))
	}
}

func TestGenerateInstance_ModelShape(t *testing.T) {
	t.Parallel()

	const nCust = 4
	cfg := config.Config{"n_customers": config.Fixed(nCust)}
	inst := mustGenerate(t, cfg, gen.WithSeed(7))
	m := inst.Model()

	nNodes := nCust + 1
	require.Equal(t, model.Minimize, m.Dir())
	require.Equal(t, nNodes*(nNodes-1)+2*nCust, m.NumVars())
	// outdeg, flow, capacity and two window rows per customer plus a
	// schedule and a transfer row per ordered customer pair.
	require.Equal(t, 5*nCust+2*nCust*(nCust-1), m.NumConstrs())

	dist, _ := inst.Pair("distance")
	service := inst.IntColumn("service_time")
	mTime := inst.Params()["m_time"].(float64)
	for i := 0; i < m.NumConstrs(); i++ {
		c := m.Constr(i)
		if c.Name != "schedule_1_2" {
			continue
		}
		require.Equal(t, model.LE, c.Sense)
		require.Equal(t, mTime-float64(dist.Ints[1*nNodes+2])-float64(service[1]), c.RHS)
		coefs := map[string]float64{}
		for _, term := range c.Terms {
			coefs[m.Def(term.V).Name] = term.Coef
		}
		require.Equal(t, mTime, coefs["route_1_2"])
		require.Equal(t, 1.0, coefs["time_1"])
		require.Equal(t, -1.0, coefs["time_2"])
	}

	obj := m.ObjCoeffs()
	require.Len(t, obj, nNodes*(nNodes-1))
	for i := 0; i < nNodes; i++ {
		for j := 0; j < nNodes; j++ {
			if i != j {
				name := fmt.Sprintf("route_%d_%d", i, j)
				require.Equal(t, float64(dist.Ints[i*nNodes+j]), obj[name])
			}
		}
	}
}

func TestGenerateInstance_Reproducible(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(123)).WriteLP(&a))
	require.NoError(t, mustGenerate(t, nil, gen.WithSeed(123)).WriteLP(&b))
	require.Equal(t, a.String(), b.String())
}

func TestGenerateInstance_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"reversed demand range", config.Config{"demand_range": config.Range(10, 1)}},
		{"zero demand floor", config.Config{"demand_range": config.Range(0, 10)}},
		{"zero capacity", config.Config{"vehicle_capacity": config.Fixed(0)}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := vrptw.New(tc.cfg, gen.WithSeed(1)).GenerateInstance()
			require.ErrorIs(t, err, config.ErrConfiguration)
		})
	}
}
