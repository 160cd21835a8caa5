// SPDX-License-Identifier: MIT
// Package: optmath/setcover
//
// setcover.go - minimum-cost set cover instance generator.
//
// Pipeline order: resolve, then membership draws (uniform (set, element)
// pairs until round(density*n_sets*n_elements) distinct memberships
// exist), then set costs, then the coverage repair. The repair walks
// elements in id order and forces every uncovered element into one
// uniformly drawn set, so feasibility never needs a retry loop.
package setcover

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "setcover"

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_sets", Kind: config.Int, Def: config.Range(5, 20), Min: 1},
			{Name: "n_elements", Kind: config.Int, Def: config.Range(10, 30), Min: 1},
			{Name: "density", Kind: config.Probability, Def: config.Fixed(0.4)},
			{Name: "cost_range", Kind: config.IntInterval, Def: config.Range(1, 100), Min: 0},
		},
	}
}

// Generator produces set cover instances.
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

	nSets := res.Int("n_sets")
	nElems := res.Int("n_elements")
	density := res.Float("density")
	cLo, cHi := res.IntInterval("cost_range")

	target := int(math.Round(density * float64(nSets) * float64(nElems)))
	member := make([]bool, nSets*nElems)
	for drawn := 0; drawn < target; {
		s := int(sample.IntBetween(r, 0, int64(nSets-1)))
		e := int(sample.IntBetween(r, 0, int64(nElems-1)))
		if !member[s*nElems+e] {
			member[s*nElems+e] = true
			drawn++
		}
	}

	cost := sample.Ints(r, nSets, cLo, cHi)

	// Coverage repair: one drawn set per uncovered element, element order.
	for e := 0; e < nElems; e++ {
		covered := false
		for s := 0; s < nSets; s++ {
			if member[s*nElems+e] {
				covered = true
				break
			}
		}
		if !covered {
			s := int(sample.IntBetween(r, 0, int64(nSets-1)))
			member[s*nElems+e] = true
		}
	}

	m := model.New(model.Minimize)
	pick := make([]model.Var, nSets)
	for s := 0; s < nSets; s++ {
		pick[s] = m.AddBinary(fmt.Sprintf("pick_%d", s))
		m.Obj(pick[s], float64(cost[s]))
	}
	for e := 0; e < nElems; e++ {
		var terms []model.Term
		for s := 0; s < nSets; s++ {
			if member[s*nElems+e] {
				terms = append(terms, model.Term{V: pick[s], Coef: 1})
			}
		}
		m.AddConstr(fmt.Sprintf("cover_%d", e), terms, model.GE, 1)
	}

	membership := make([]int64, nSets*nElems)
	total := int64(0)
	for i, ok := range member {
		if ok {
			membership[i] = 1
			total++
		}
	}

	params := res.Snapshot()
	params["target_memberships"] = float64(target)
	params["memberships"] = float64(total)

	d := gen.Draft{Problem: problemName, Seed: seed, Params: params, Model: m}
	d.AddSet("set", nSets)
	d.AddSet("element", nElems)
	d.AddIntTable("cost", "set", cost)
	d.AddIntPairs("membership", "set", "element", nSets, nElems, membership)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
