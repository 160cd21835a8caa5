// SPDX-License-Identifier: MIT
// Package: optmath/transport
//
// transport.go - balanced transportation instance generator.
//
// Pipeline order: resolve, draw supplies (origin id order), demands
// (destination id order), unit costs (row-major origin x destination), then
// equalize the supply side onto the demand total.

// Package transport generates balanced transportation instances: a complete
// bipartite shipping network whose supply total equals its demand total
// exactly, so the classical equality-form LP is feasible by construction.
package transport

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "transport"

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_origins", Kind: config.Int, Def: config.Range(3, 5), Min: 1},
			{Name: "n_destinations", Kind: config.Int, Def: config.Range(3, 5), Min: 1},
			{Name: "supply_range", Kind: config.IntInterval, Def: config.Range(10, 100), Min: 0},
			{Name: "demand_range", Kind: config.IntInterval, Def: config.Range(10, 100), Min: 0},
			{Name: "cost_range", Kind: config.IntInterval, Def: config.Range(1, 10), Min: 0},
		},
	}
}

// Generator produces balanced transportation instances.
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

	nOrig := res.Int("n_origins")
	nDest := res.Int("n_destinations")
	sLo, sHi := res.IntInterval("supply_range")
	dLo, dHi := res.IntInterval("demand_range")
	cLo, cHi := res.IntInterval("cost_range")

	supplies := sample.Ints(r, nOrig, sLo, sHi)
	demands := sample.Ints(r, nDest, dLo, dHi)
	costs := sample.Ints(r, nOrig*nDest, cLo, cHi)

	// Demands stay as drawn; the supply side absorbs the imbalance.
	if err := balance.Equalize(supplies, demands); err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}

	m := model.New(model.Minimize)
	ship := make([]model.Var, nOrig*nDest)
	for i := 0; i < nOrig; i++ {
		for j := 0; j < nDest; j++ {
			k := i*nDest + j
			ship[k] = m.AddCont(fmt.Sprintf("ship_%d_%d", i, j), 0, posInf)
			m.Obj(ship[k], float64(costs[k]))
		}
	}
	for i := 0; i < nOrig; i++ {
		terms := make([]model.Term, nDest)
		for j := 0; j < nDest; j++ {
			terms[j] = model.Term{V: ship[i*nDest+j], Coef: 1}
		}
		m.AddConstr(fmt.Sprintf("supply_%d", i), terms, model.EQ, float64(supplies[i]))
	}
	for j := 0; j < nDest; j++ {
		terms := make([]model.Term, nOrig)
		for i := 0; i < nOrig; i++ {
			terms[i] = model.Term{V: ship[i*nDest+j], Coef: 1}
		}
		m.AddConstr(fmt.Sprintf("demand_%d", j), terms, model.EQ, float64(demands[j]))
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("origin", nOrig)
	d.AddSet("destination", nDest)
	d.AddIntTable("supply", "origin", supplies)
	d.AddIntTable("demand", "destination", demands)
	d.AddIntPairs("cost", "origin", "destination", nOrig, nDest, costs)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
