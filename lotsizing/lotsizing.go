// SPDX-License-Identifier: MIT
// Package: optmath/lotsizing
//
// lotsizing.go - uncapacitated single-item lot sizing generator.
//
// Pipeline order: resolve, then demands, fixed costs, unit order costs,
// unit holding costs, each a full pass over periods in order.
//
// The setup big-M is the total demand over the horizon, the exact upper
// bound on any sensible order. Starting inventory is implicit in the
// first flow row; only the final stock is pinned to zero, through the
// variable bound rather than an extra row.
package lotsizing

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "lotsizing"

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_periods", Kind: config.Int, Def: config.Range(3, 5), Min: 1},
			{Name: "demand_range", Kind: config.IntInterval, Def: config.Range(1, 10), Min: 0},
			{Name: "fixed_cost_range", Kind: config.IntInterval, Def: config.Range(10, 50), Min: 0},
			{Name: "unit_order_cost_range", Kind: config.IntInterval, Def: config.Range(1, 5), Min: 0},
			{Name: "unit_holding_cost_range", Kind: config.IntInterval, Def: config.Range(1, 3), Min: 0},
		},
	}
}

// Generator produces lot sizing instances.
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

	n := res.Int("n_periods")
	dLo, dHi := res.IntInterval("demand_range")
	fLo, fHi := res.IntInterval("fixed_cost_range")
	oLo, oHi := res.IntInterval("unit_order_cost_range")
	hLo, hHi := res.IntInterval("unit_holding_cost_range")

	demand := sample.Ints(r, n, dLo, dHi)
	fixedCost := sample.Ints(r, n, fLo, fHi)
	orderCost := sample.Ints(r, n, oLo, oHi)
	holdCost := sample.Ints(r, n, hLo, hHi)

	bigM := int64(0)
	for _, d := range demand {
		bigM += d
	}

	m := model.New(model.Minimize)
	produce := make([]model.Var, n)
	stock := make([]model.Var, n)
	setup := make([]model.Var, n)
	for t := 0; t < n; t++ {
		produce[t] = m.AddCont(fmt.Sprintf("produce_%d", t), 0, posInf)
	}
	for t := 0; t < n; t++ {
		if t == n-1 {
			// Final stock is zero without loss of generality.
			stock[t] = m.AddCont(fmt.Sprintf("stock_%d", t), 0, 0)
		} else {
			stock[t] = m.AddCont(fmt.Sprintf("stock_%d", t), 0, posInf)
		}
	}
	for t := 0; t < n; t++ {
		setup[t] = m.AddBinary(fmt.Sprintf("setup_%d", t))
	}
	for t := 0; t < n; t++ {
		m.Obj(setup[t], float64(fixedCost[t]))
		m.Obj(produce[t], float64(orderCost[t]))
		m.Obj(stock[t], float64(holdCost[t]))
	}

	for t := 0; t < n; t++ {
		var terms []model.Term
		if t == 0 {
			terms = []model.Term{
				{V: produce[0], Coef: 1},
				{V: stock[0], Coef: -1},
			}
		} else {
			terms = []model.Term{
				{V: stock[t-1], Coef: 1},
				{V: produce[t], Coef: 1},
				{V: stock[t], Coef: -1},
			}
		}
		m.AddConstr(fmt.Sprintf("flow_%d", t), terms, model.EQ, float64(demand[t]))
		m.AddConstr(fmt.Sprintf("bound_%d", t),
			[]model.Term{
				{V: produce[t], Coef: 1},
				{V: setup[t], Coef: -float64(bigM)},
			},
			model.LE, 0)
	}

	params := res.Snapshot()
	params["big_m"] = float64(bigM)

	d := gen.Draft{Problem: problemName, Seed: seed, Params: params, Model: m}
	d.AddSet("period", n)
	d.AddIntTable("demand", "period", demand)
	d.AddIntTable("fixed_cost", "period", fixedCost)
	d.AddIntTable("unit_order_cost", "period", orderCost)
	d.AddIntTable("unit_holding_cost", "period", holdCost)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
