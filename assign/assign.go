// SPDX-License-Identifier: MIT
// Package: optmath/assign
//
// assign.go - interest-constrained bipartite assignment generator.
//
// Pipeline order: resolve, then the Bernoulli interest matrix row by
// row in participant order. A row with no interesting car at all is
// redrawn in full under the configured retry budget; running out of
// budget fails generation naming the participant, since an
// uninterested participant can never be matched.
package assign

import (
	"fmt"

	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "assign"

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_participants", Kind: config.Int, Def: config.Range(5, 10), Min: 1},
			{Name: "n_cars", Kind: config.Int, Def: config.Range(5, 10), Min: 1},
			{Name: "interest_density", Kind: config.Probability, Def: config.Fixed(0.3)},
			{Name: "retry_budget", Kind: config.Int, Def: config.Fixed(32), Min: 1},
		},
	}
}

// Generator produces assignment instances.
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

	nPart := res.Int("n_participants")
	nCars := res.Int("n_cars")
	density := res.Float("interest_density")
	budget := res.Int("retry_budget")

	interest := make([]int64, nPart*nCars)
	for p := 0; p < nPart; p++ {
		row := interest[p*nCars : (p+1)*nCars]
		err := sample.Retry(budget, fmt.Sprintf("participant_%d interests", p), func() bool {
			any := false
			for c := range row {
				row[c] = 0
				if sample.Bernoulli(r, density) {
					row[c] = 1
					any = true
				}
			}
			return any
		})
		if err != nil {
			return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
		}
	}

	m := model.New(model.Maximize)
	match := make([]model.Var, nPart*nCars)
	for p := 0; p < nPart; p++ {
		for c := 0; c < nCars; c++ {
			match[p*nCars+c] = m.AddBinary(fmt.Sprintf("match_%d_%d", p, c))
			m.Obj(match[p*nCars+c], 1)
		}
	}

	for p := 0; p < nPart; p++ {
		for c := 0; c < nCars; c++ {
			m.AddConstr(fmt.Sprintf("interest_%d_%d", p, c),
				[]model.Term{{V: match[p*nCars+c], Coef: 1}},
				model.LE, float64(interest[p*nCars+c]))
		}
	}
	for p := 0; p < nPart; p++ {
		terms := make([]model.Term, nCars)
		for c := 0; c < nCars; c++ {
			terms[c] = model.Term{V: match[p*nCars+c], Coef: 1}
		}
		m.AddConstr(fmt.Sprintf("participant_%d", p), terms, model.LE, 1)
	}
	for c := 0; c < nCars; c++ {
		terms := make([]model.Term, nPart)
		for p := 0; p < nPart; p++ {
			terms[p] = model.Term{V: match[p*nCars+c], Coef: 1}
		}
		m.AddConstr(fmt.Sprintf("car_%d", c), terms, model.LE, 1)
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("participant", nPart)
	d.AddSet("car", nCars)
	d.AddIntPairs("interest", "participant", "car", nPart, nCars, interest)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
