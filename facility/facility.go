// SPDX-License-Identifier: MIT
// Package: optmath/facility
//
// facility.go - capacitated facility location (CFLP) instance generator.
//
// Pipeline order: resolve, draw customer demands (customer id order), then
// facility capacities and fixed costs (facility id order), then transport
// costs (row-major facility x customer), then raise capacities until the
// capacity total covers the demand total.

// Package facility generates capacitated facility location instances:
// binary opening decisions with fixed costs, continuous service flows with
// transport costs, and capacities raised so total capacity always covers
// total demand.
package facility

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "facility"

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_facilities", Kind: config.Int, Def: config.Fixed(3), Min: 1},
			{Name: "n_customers", Kind: config.Int, Def: config.Fixed(3), Min: 1},
			{Name: "fixed_cost_range", Kind: config.IntInterval, Def: config.Range(80000, 120000), Min: 0},
			{Name: "transport_cost_range", Kind: config.IntInterval, Def: config.Range(10, 100), Min: 0},
			{Name: "demand_range", Kind: config.IntInterval, Def: config.Range(300, 500), Min: 1},
			{Name: "capacity_range", Kind: config.IntInterval, Def: config.Range(800, 1200), Min: 1},
		},
	}
}

// Generator produces CFLP instances.
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

	nF := res.Int("n_facilities")
	nC := res.Int("n_customers")
	fLo, fHi := res.IntInterval("fixed_cost_range")
	tLo, tHi := res.IntInterval("transport_cost_range")
	dLo, dHi := res.IntInterval("demand_range")
	cLo, cHi := res.IntInterval("capacity_range")

	demands := sample.Ints(r, nC, dLo, dHi)
	capacities := sample.Ints(r, nF, cLo, cHi)
	fixedCosts := sample.Ints(r, nF, fLo, fHi)
	transportCosts := sample.Ints(r, nF*nC, tLo, tHi)

	var totalDemand int64
	for _, d := range demands {
		totalDemand += d
	}
	if err := balance.RaiseTotal(capacities, totalDemand); err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}

	m := model.New(model.Minimize)
	open := make([]model.Var, nF)
	for i := 0; i < nF; i++ {
		open[i] = m.AddBinary(fmt.Sprintf("open_%d", i))
		m.Obj(open[i], float64(fixedCosts[i]))
	}
	serve := make([]model.Var, nF*nC)
	for i := 0; i < nF; i++ {
		for j := 0; j < nC; j++ {
			k := i*nC + j
			serve[k] = m.AddCont(fmt.Sprintf("serve_%d_%d", i, j), 0, posInf)
			m.Obj(serve[k], float64(transportCosts[k]))
		}
	}
	for j := 0; j < nC; j++ {
		terms := make([]model.Term, nF)
		for i := 0; i < nF; i++ {
			terms[i] = model.Term{V: serve[i*nC+j], Coef: 1}
		}
		m.AddConstr(fmt.Sprintf("demand_%d", j), terms, model.EQ, float64(demands[j]))
	}
	for i := 0; i < nF; i++ {
		terms := make([]model.Term, 0, nC+1)
		for j := 0; j < nC; j++ {
			terms = append(terms, model.Term{V: serve[i*nC+j], Coef: 1})
		}
		terms = append(terms, model.Term{V: open[i], Coef: -float64(capacities[i])})
		m.AddConstr(fmt.Sprintf("capacity_%d", i), terms, model.LE, 0)
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("facility", nF)
	d.AddSet("customer", nC)
	d.AddIntTable("demand", "customer", demands)
	d.AddIntTable("capacity", "facility", capacities)
	d.AddIntTable("fixed_cost", "facility", fixedCosts)
	d.AddIntPairs("transport_cost", "facility", "customer", nF, nC, transportCosts)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
