// SPDX-License-Identifier: MIT
// Package: optmath/binpack
//
// binpack.go - one-dimensional bin packing instance generator.
//
// Pipeline order: resolve, then item weights in id order. The number of
// bins equals the number of items, the trivial upper bound. The bin
// capacity is raised to the largest drawn weight so every item fits
// some bin on its own.
package binpack

import (
	"fmt"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "binpack"

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_items", Kind: config.Int, Def: config.Range(3, 10), Min: 1},
			{Name: "weight_range", Kind: config.IntInterval, Def: config.Range(1, 50), Min: 1},
			{Name: "bin_capacity", Kind: config.Int, Def: config.Fixed(100), Min: 1},
		},
	}
}

// Generator produces bin packing instances.
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
	wLo, wHi := res.IntInterval("weight_range")
	weight := sample.Ints(r, n, wLo, wHi)

	maxWeight := weight[0]
	for _, w := range weight[1:] {
		if w > maxWeight {
			maxWeight = w
		}
	}
	capacity := balance.AtLeast(res.Int64("bin_capacity"), maxWeight)

	m := model.New(model.Minimize)
	put := make([]model.Var, n*n)
	for i := 0; i < n; i++ {
		for b := 0; b < n; b++ {
			put[i*n+b] = m.AddBinary(fmt.Sprintf("put_%d_%d", i, b))
		}
	}
	use := make([]model.Var, n)
	for b := 0; b < n; b++ {
		use[b] = m.AddBinary(fmt.Sprintf("use_%d", b))
		m.Obj(use[b], 1)
	}

	for i := 0; i < n; i++ {
		terms := make([]model.Term, n)
		for b := 0; b < n; b++ {
			terms[b] = model.Term{V: put[i*n+b], Coef: 1}
		}
		m.AddConstr(fmt.Sprintf("assign_%d", i), terms, model.EQ, 1)
	}
	for b := 0; b < n; b++ {
		terms := make([]model.Term, 0, n+1)
		for i := 0; i < n; i++ {
			terms = append(terms, model.Term{V: put[i*n+b], Coef: float64(weight[i])})
		}
		terms = append(terms, model.Term{V: use[b], Coef: -float64(capacity)})
		m.AddConstr(fmt.Sprintf("capacity_%d", b), terms, model.LE, 0)
	}

	params := res.Snapshot()
	params["capacity"] = float64(capacity)

	d := gen.Draft{Problem: problemName, Seed: seed, Params: params, Model: m}
	d.AddSet("item", n)
	d.AddSet("bin", n)
	d.AddIntTable("weight", "item", weight)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
