// SPDX-License-Identifier: MIT
// Package: optmath/diet
//
// diet.go - diet problem generator with two-sided nutrient windows.
//
// Pipeline order: resolve, then food costs, nutrient content (row-major
// nutrient by food), minimum requirements, maximum requirements
// (minimum plus a 0..25 slack, second pass).
//
// Every purchase variable shares the configured amount bounds. After
// the draws each nutrient window is checked for reachability: the
// intake attainable at full purchase bounds must reach the minimum
// requirement, otherwise generation fails naming the nutrient. Bounds
// are never widened silently.
package diet

import (
	"fmt"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "diet"

// Requirement caps sit this far above the minimum at most.
const requirementSlack = 25

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_nutrients", Kind: config.Int, Def: config.Range(2, 4), Min: 1},
			{Name: "n_foods", Kind: config.Int, Def: config.Range(12, 15), Min: 1},
			{Name: "cost_range", Kind: config.IntInterval, Def: config.Range(1, 10), Min: 0},
			{Name: "nutrient_range", Kind: config.IntInterval, Def: config.Range(1, 4), Min: 0},
			{Name: "nutrient_requirement_range", Kind: config.IntInterval, Def: config.Range(3, 15), Min: 0},
			{Name: "food_amount_range", Kind: config.IntInterval, Def: config.Range(0, 10), Min: 0},
		},
	}
}

// Generator produces diet instances.
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

	nNutr := res.Int("n_nutrients")
	nFood := res.Int("n_foods")
	cLo, cHi := res.IntInterval("cost_range")
	aLo, aHi := res.IntInterval("nutrient_range")
	reqLo, reqHi := res.IntInterval("nutrient_requirement_range")
	amountLo, amountHi := res.IntInterval("food_amount_range")

	cost := sample.Ints(r, nFood, cLo, cHi)
	content := make([]int64, nNutr*nFood)
	for i := 0; i < nNutr; i++ {
		for j := 0; j < nFood; j++ {
			content[i*nFood+j] = sample.IntBetween(r, aLo, aHi)
		}
	}
	minReq := sample.Ints(r, nNutr, reqLo, reqHi)
	maxReq := make([]int64, nNutr)
	for i := 0; i < nNutr; i++ {
		maxReq[i] = minReq[i] + sample.IntBetween(r, 0, requirementSlack)
	}

	// Reachability: buying everything at the upper bound must satisfy
	// each minimum requirement.
	for i := 0; i < nNutr; i++ {
		attainable := int64(0)
		for j := 0; j < nFood; j++ {
			attainable += content[i*nFood+j] * amountHi
		}
		if attainable < minReq[i] {
			return nil, fmt.Errorf("%s.GenerateInstance: nutrient_%d: minimum requirement %d above attainable intake %d: %w",
				problemName, i, minReq[i], attainable, config.ErrConfiguration)
		}
	}

	m := model.New(model.Minimize)
	buy := make([]model.Var, nFood)
	for j := 0; j < nFood; j++ {
		buy[j] = m.AddCont(fmt.Sprintf("buy_%d", j), float64(amountLo), float64(amountHi))
		m.Obj(buy[j], float64(cost[j]))
	}
	for i := 0; i < nNutr; i++ {
		intake := func() []model.Term {
			terms := make([]model.Term, nFood)
			for j := 0; j < nFood; j++ {
				terms[j] = model.Term{V: buy[j], Coef: float64(content[i*nFood+j])}
			}
			return terms
		}
		m.AddConstr(fmt.Sprintf("nutrient_%d_min", i), intake(), model.GE, float64(minReq[i]))
		m.AddConstr(fmt.Sprintf("nutrient_%d_max", i), intake(), model.LE, float64(maxReq[i]))
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("nutrient", nNutr)
	d.AddSet("food", nFood)
	d.AddIntTable("cost", "food", cost)
	d.AddIntTable("min_requirement", "nutrient", minReq)
	d.AddIntTable("max_requirement", "nutrient", maxReq)
	d.AddIntPairs("content", "nutrient", "food", nNutr, nFood, content)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
