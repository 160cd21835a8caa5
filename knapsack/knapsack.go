// SPDX-License-Identifier: MIT
// Package: optmath/knapsack
//
// knapsack.go - 0/1 knapsack instance generator.
//
// Pipeline order (the determinism contract): resolve parameters, draw item
// values then item weights in id order, derive capacity from the weight
// total, emit the formulation. One draw sequence, one stream.

// Package knapsack generates 0/1 knapsack instances: n items with integer
// values and weights, and a capacity derived as a fixed ratio of the total
// weight, so every instance admits a non-trivial selection.
package knapsack

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "knapsack"

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_items", Kind: config.Int, Def: config.Range(3, 30), Min: 1},
			{Name: "value_range", Kind: config.IntInterval, Def: config.Range(10, 300), Min: 0},
			{Name: "weight_range", Kind: config.IntInterval, Def: config.Range(1, 50), Min: 1},
			{Name: "capacity_ratio", Kind: config.Probability, Def: config.Fixed(0.7)},
		},
	}
}

// Generator produces knapsack instances. The zero value is unusable; use New.
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

	n := res.Int("n_items")
	vLo, vHi := res.IntInterval("value_range")
	wLo, wHi := res.IntInterval("weight_range")
	ratio := res.Float("capacity_ratio")

	values := sample.Ints(r, n, vLo, vHi)
	weights := sample.Ints(r, n, wLo, wHi)

	var totalWeight int64
	for _, w := range weights {
		totalWeight += w
	}
	capacity := int64(math.Round(ratio * float64(totalWeight)))
	if capacity < 1 {
		return nil, fmt.Errorf("%s.GenerateInstance: capacity %d from capacity_ratio=%v over weight total %d: %w",
			problemName, capacity, ratio, totalWeight, config.ErrConfiguration)
	}

	m := model.New(model.Maximize)
	sel := make([]model.Var, n)
	for i := 0; i < n; i++ {
		sel[i] = m.AddBinary(fmt.Sprintf("select_%d", i))
		m.Obj(sel[i], float64(values[i]))
	}
	terms := make([]model.Term, n)
	for i := 0; i < n; i++ {
		terms[i] = model.Term{V: sel[i], Coef: float64(weights[i])}
	}
	m.AddConstr("capacity", terms, model.LE, float64(capacity))

	params := res.Snapshot()
	params["capacity"] = float64(capacity)

	d := gen.Draft{Problem: problemName, Seed: seed, Params: params, Model: m}
	d.AddSet("item", n)
	d.AddIntTable("value", "item", values)
	d.AddIntTable("weight", "item", weights)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
