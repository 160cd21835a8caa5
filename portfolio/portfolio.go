// SPDX-License-Identifier: MIT
// Package: optmath/portfolio
//
// portfolio.go - minimum-variance portfolio instance generator.
//
// Pipeline order: resolve, then expected returns (asset order),
// volatilities, and a raw correlation matrix row-major over all n*n
// entries, diagonal included. The raw matrix is then symmetrized as the
// mean with its transpose, the diagonal pinned to one, and the
// covariance assembled as diag(vol) * corr * diag(vol).
//
// Two repairs keep the budget and return rows satisfiable:
//  - the weight upper bound is raised to 1/n
//  - the largest drawn return is raised to the target return, which the
//    target_reachable check keeps inside the configured range
package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "portfolio"

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_assets", Kind: config.Int, Def: config.Range(3, 100), Min: 1},
			{Name: "return_range", Kind: config.FloatInterval, Def: config.Range(0.05, 0.15), Min: 0},
			{Name: "risk_range", Kind: config.FloatInterval, Def: config.Range(0.10, 0.30), Min: 0},
			{Name: "weight_bounds", Kind: config.FloatInterval, Def: config.Range(0.0, 0.3), Min: 0, Max: 1},
			{Name: "target_return", Kind: config.Float, Def: config.Fixed(0.10), Min: 0},
			{Name: "correlation_range", Kind: config.FloatInterval, Def: config.Range(-0.2, 0.8), Min: -1, Max: 1},
		},
		Checks: []config.Check{{
			Name: "target_reachable",
			Fn: func(res *config.Resolved) error {
				_, hi := res.Interval("return_range")
				if target := res.Float("target_return"); target > hi {
					return fmt.Errorf("target_return %v above return_range upper bound %v", target, hi)
				}
				return nil
			},
		}},
	}
}

// Generator produces portfolio instances.
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

	n := res.Int("n_assets")
	retLo, retHi := res.Interval("return_range")
	volLo, volHi := res.Interval("risk_range")
	weightLo, weightHi := res.Interval("weight_bounds")
	target := res.Float("target_return")
	corrLo, corrHi := res.Interval("correlation_range")

	returns := sample.Floats(r, n, retLo, retHi)
	volatility := sample.Floats(r, n, volLo, volHi)
	raw := mat.NewDense(n, n, sample.Floats(r, n*n, corrLo, corrHi))

	corr := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			corr.Set(i, j, (raw.At(i, j)+raw.At(j, i))/2)
		}
		corr.Set(i, i, 1)
	}
	scale := mat.NewDiagDense(n, volatility)
	var half, cov mat.Dense
	half.Mul(scale, corr)
	cov.Mul(&half, scale)

	if weightLo*float64(n) > 1 {
		return nil, fmt.Errorf("%s.GenerateInstance: weight_bounds lower %v leaves the budget row infeasible for %d assets: %w",
			problemName, weightLo, n, config.ErrConfiguration)
	}
	weightHi = balance.AtLeastFloat(weightHi, 1/float64(n))
	balance.RaiseMax(returns, target)

	m := model.New(model.Minimize)
	weight := make([]model.Var, n)
	for i := 0; i < n; i++ {
		weight[i] = m.AddCont(fmt.Sprintf("weight_%d", i), weightLo, weightHi)
	}
	riskVar := m.AddCont("risk_var", 0, posInf)
	m.Obj(riskVar, 1)

	quad := make([]model.QuadTerm, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			coef := cov.At(i, j)
			if i != j {
				// Off-diagonal pairs appear once with both orientations folded in.
				coef *= 2
			}
			quad = append(quad, model.QuadTerm{A: weight[i], B: weight[j], Coef: coef})
		}
	}
	m.AddQuadConstr("risk",
		[]model.Term{{V: riskVar, Coef: -1}}, quad, model.EQ, 0)

	budget := make([]model.Term, n)
	for i := 0; i < n; i++ {
		budget[i] = model.Term{V: weight[i], Coef: 1}
	}
	m.AddConstr("budget", budget, model.EQ, 1)

	ret := make([]model.Term, n)
	for i := 0; i < n; i++ {
		ret[i] = model.Term{V: weight[i], Coef: returns[i]}
	}
	m.AddConstr("return", ret, model.GE, target)

	covRow := make([]float64, n*n)
	corrRow := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			covRow[i*n+j] = cov.At(i, j)
			corrRow[i*n+j] = corr.At(i, j)
		}
	}

	params := res.Snapshot()
	params["weight_hi"] = weightHi

	d := gen.Draft{Problem: problemName, Seed: seed, Params: params, Model: m}
	d.AddSet("asset", n)
	d.AddFloatTable("expected_return", "asset", returns)
	d.AddFloatTable("volatility", "asset", volatility)
	d.AddFloatPairs("correlation", "asset", "asset", n, n, corrRow)
	d.AddFloatPairs("covariance", "asset", "asset", n, n, covRow)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
