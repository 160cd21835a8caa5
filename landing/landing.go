// SPDX-License-Identifier: MIT
// Package: optmath/landing
//
// landing.go - aircraft landing scheduling instance generator.
//
// Pipeline order: resolve, draw target times (aircraft id order; earliest
// and latest are computed from the target, not drawn), then early penalties,
// late penalties, then pairwise separations (row-major, diagonal skipped).
//
// Each ordered pair gets the exact deactivation constant
// M_ij = latest_i - earliest_j, the worst feasible value of land_i - land_j,
// so no fixed big-M constant appears anywhere.

// Package landing generates aircraft landing instances: each aircraft gets a
// target time inside the operating window with a +-30 tolerance band,
// deviation penalties in both directions, and pairwise separation
// requirements sequenced by binary precedence variables.
package landing

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "landing"

// tolerance bounds the earliest/latest offsets around the target time.
const tolerance = 30

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_aircraft", Kind: config.Int, Def: config.Range(2, 30), Min: 2},
			{Name: "time_window", Kind: config.IntInterval, Def: config.Range(10, 300), Min: 0},
			{Name: "penalty_range", Kind: config.IntInterval, Def: config.Range(10, 100), Min: 0},
			{Name: "separation_range", Kind: config.IntInterval, Def: config.Range(1, 5), Min: 0},
		},
	}
}

// Generator produces aircraft landing instances.
type Generator struct {
	cfg  config.Config
	opts gen.Options
}

// New returns a generator over cfg (nil means schema defaults).
func New(cfg config.Config, opts ...gen.Option) *Generator {
	return &Generator{cfg: cfg, opts: gen.ResolveOptions(opts...)}
}

// Problem implements gen.Generator.
func (g *Generator) Problem() string { return problemName }

// GenerateInstance implements gen.Generator.
func (g *Generator) GenerateInstance() (*gen.Instance, error) {
	seed, r := g.opts.Session()
	res, err := config.Resolve(g.cfg, Schema(), r, g.opts.Mode())
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}

	n := res.Int("n_aircraft")
	wLo, wHi := res.IntInterval("time_window")
	pLo, pHi := res.IntInterval("penalty_range")
	sLo, sHi := res.IntInterval("separation_range")

	target := make([]int64, n)
	earliest := make([]int64, n)
	latest := make([]int64, n)
	for i := 0; i < n; i++ {
		target[i] = sample.IntBetween(r, wLo, wHi)
		earliest[i] = target[i] - tolerance
		if earliest[i] < wLo {
			earliest[i] = wLo
		}
		latest[i] = target[i] + tolerance
		if latest[i] > wHi {
			latest[i] = wHi
		}
	}
	earlyPenalty := sample.Ints(r, n, pLo, pHi)
	latePenalty := sample.Ints(r, n, pLo, pHi)

	separation := make([]int64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				separation[i*n+j] = sample.IntBetween(r, sLo, sHi)
			}
		}
	}

	// Exact per-pair deactivation constants (derived, not drawn).
	bigM := make([]int64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				bigM[i*n+j] = latest[i] - earliest[j]
			}
		}
	}

	m := model.New(model.Minimize)
	land := make([]model.Var, n)
	early := make([]model.Var, n)
	late := make([]model.Var, n)
	for i := 0; i < n; i++ {
		land[i] = m.AddCont(fmt.Sprintf("land_%d", i), 0, posInf)
		early[i] = m.AddCont(fmt.Sprintf("early_%d", i), 0, posInf)
		late[i] = m.AddCont(fmt.Sprintf("late_%d", i), 0, posInf)
		m.Obj(early[i], float64(earlyPenalty[i]))
		m.Obj(late[i], float64(latePenalty[i]))
	}
	before := make([]model.Var, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				before[i*n+j] = m.AddBinary(fmt.Sprintf("before_%d_%d", i, j))
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.AddConstr(fmt.Sprintf("order_%d_%d", i, j),
				[]model.Term{{V: before[i*n+j], Coef: 1}, {V: before[j*n+i], Coef: 1}},
				model.EQ, 1)
		}
	}
	// land_j >= land_i + sep_ij*before_ij - M_ij*before_ji, as a <= 0 row.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			m.AddConstr(fmt.Sprintf("sep_%d_%d", i, j),
				[]model.Term{
					{V: land[i], Coef: 1},
					{V: land[j], Coef: -1},
					{V: before[i*n+j], Coef: float64(separation[i*n+j])},
					{V: before[j*n+i], Coef: -float64(bigM[i*n+j])},
				},
				model.LE, 0)
		}
	}
	for i := 0; i < n; i++ {
		m.AddConstr(fmt.Sprintf("window_lo_%d", i),
			[]model.Term{{V: land[i], Coef: 1}}, model.GE, float64(earliest[i]))
		m.AddConstr(fmt.Sprintf("window_hi_%d", i),
			[]model.Term{{V: land[i], Coef: 1}}, model.LE, float64(latest[i]))
	}
	for i := 0; i < n; i++ {
		m.AddConstr(fmt.Sprintf("early_bound_%d", i),
			[]model.Term{{V: early[i], Coef: 1}, {V: land[i], Coef: 1}},
			model.GE, float64(target[i]))
		m.AddConstr(fmt.Sprintf("late_bound_%d", i),
			[]model.Term{{V: late[i], Coef: 1}, {V: land[i], Coef: -1}},
			model.GE, -float64(target[i]))
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("aircraft", n)
	d.AddIntTable("target", "aircraft", target)
	d.AddIntTable("earliest", "aircraft", earliest)
	d.AddIntTable("latest", "aircraft", latest)
	d.AddIntTable("early_penalty", "aircraft", earlyPenalty)
	d.AddIntTable("late_penalty", "aircraft", latePenalty)
	d.AddIntPairs("separation", "aircraft", "aircraft", n, n, separation)
	d.AddIntPairs("big_m", "aircraft", "aircraft", n, n, bigM)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
