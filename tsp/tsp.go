// SPDX-License-Identifier: MIT
// Package: optmath/tsp
//
// tsp.go - asymmetric traveling salesman instance generator.
//
// Pipeline order: resolve, then the distance matrix row-major over all
// ordered city pairs, diagonal skipped, never drawn.
//
// Subtour elimination uses the MTZ ordering variables u_1..u_{n-1} with
// bounds [1, n-1] carried on the variables themselves, not as rows.
// City 0 anchors the tour and has no ordering variable.
package tsp

import (
	"fmt"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "tsp"

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_cities", Kind: config.Int, Def: config.Range(3, 20), Min: 2},
			{Name: "distance_range", Kind: config.IntInterval, Def: config.Range(10, 1000), Min: 1},
		},
	}
}

// Generator produces traveling salesman instances.
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

	n := res.Int("n_cities")
	dLo, dHi := res.IntInterval("distance_range")

	distance := make([]int64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				distance[i*n+j] = sample.IntBetween(r, dLo, dHi)
			}
		}
	}

	m := model.New(model.Minimize)
	route := make([]model.Var, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				route[i*n+j] = m.AddBinary(fmt.Sprintf("route_%d_%d", i, j))
				m.Obj(route[i*n+j], float64(distance[i*n+j]))
			}
		}
	}
	u := make([]model.Var, n)
	for i := 1; i < n; i++ {
		u[i] = m.AddCont(fmt.Sprintf("u_%d", i), 1, float64(n-1))
	}

	for i := 0; i < n; i++ {
		terms := make([]model.Term, 0, n-1)
		for j := 0; j < n; j++ {
			if i != j {
				terms = append(terms, model.Term{V: route[i*n+j], Coef: 1})
			}
		}
		m.AddConstr(fmt.Sprintf("depart_%d", i), terms, model.EQ, 1)
	}
	for j := 0; j < n; j++ {
		terms := make([]model.Term, 0, n-1)
		for i := 0; i < n; i++ {
			if i != j {
				terms = append(terms, model.Term{V: route[i*n+j], Coef: 1})
			}
		}
		m.AddConstr(fmt.Sprintf("visit_%d", j), terms, model.EQ, 1)
	}
	// u_i - u_j + n*route_i_j <= n-1 breaks every tour missing city 0.
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i == j {
				continue
			}
			m.AddConstr(fmt.Sprintf("mtz_%d_%d", i, j),
				[]model.Term{
					{V: u[i], Coef: 1},
					{V: u[j], Coef: -1},
					{V: route[i*n+j], Coef: float64(n)},
				},
				model.LE, float64(n-1))
		}
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("city", n)
	d.AddIntPairs("distance", "city", "city", n, n, distance)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
