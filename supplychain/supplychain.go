// SPDX-License-Identifier: MIT
// Package: optmath/supplychain
//
// supplychain.go - fixed-charge network flow instance generator.
//
// Pipeline order: resolve, partition the supply total over suppliers, then
// independently over customers, then draw arc capacities, fixed costs and
// unit costs (row-major over ordered pairs, diagonal skipped).
//
// Feasibility: both partitions sum to the same total, and every arc's
// capacity is drawn from [total/2, total], so any single node's share can
// always be routed (directly or through one intermediate hop).

// Package supplychain generates fixed-charge network flow instances: the
// first nodes are suppliers, the last are customers, the middle ones are
// intermediates, with flow on any ordered node pair gated by a binary
// arc-opening decision.
package supplychain

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "supplychain"

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys. Default count ranges are
// narrow enough that the intermediates predicate holds for every default
// draw combination.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_nodes", Kind: config.Int, Def: config.Range(10, 30), Min: 1},
			{Name: "n_suppliers", Kind: config.Int, Def: config.Range(2, 4), Min: 1},
			{Name: "n_customers", Kind: config.Int, Def: config.Range(3, 5), Min: 1},
			{Name: "total_supply", Kind: config.Int, Def: config.Fixed(1000), Min: 1},
			{Name: "fixed_cost_range", Kind: config.IntInterval, Def: config.Range(1000, 5000), Min: 0},
			{Name: "unit_cost_range", Kind: config.IntInterval, Def: config.Range(10, 50), Min: 0},
		},
		Checks: []config.Check{
			{Name: "intermediates_exist", Fn: func(r *config.Resolved) error {
				ns, nc, nn := r.Int64("n_suppliers"), r.Int64("n_customers"), r.Int64("n_nodes")
				if ns+nc >= nn {
					return fmt.Errorf("n_suppliers=%d + n_customers=%d must be < n_nodes=%d", ns, nc, nn)
				}
				return nil
			}},
			{Name: "total_covers_partitions", Fn: func(r *config.Resolved) error {
				total := r.Int64("total_supply")
				if ns := r.Int64("n_suppliers"); total < ns {
					return fmt.Errorf("total_supply=%d < n_suppliers=%d", total, ns)
				}
				if nc := r.Int64("n_customers"); total < nc {
					return fmt.Errorf("total_supply=%d < n_customers=%d", total, nc)
				}
				return nil
			}},
		},
	}
}

// Generator produces fixed-charge network flow instances.
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

	nN := res.Int("n_nodes")
	nS := res.Int("n_suppliers")
	nC := res.Int("n_customers")
	total := res.Int64("total_supply")
	fLo, fHi := res.IntInterval("fixed_cost_range")
	uLo, uHi := res.IntInterval("unit_cost_range")

	supplyShares, err := balance.Partition(r, total, nS, 1)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	demandShares, err := balance.Partition(r, total, nC, 1)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}

	// Per-node columns: suppliers first, customers last, zero elsewhere.
	supply := make([]int64, nN)
	demand := make([]int64, nN)
	copy(supply, supplyShares)
	copy(demand[nN-nC:], demandShares)

	// Arc attributes over ordered pairs, diagonal zeroed and never drawn.
	caps := make([]int64, nN*nN)
	fixed := make([]int64, nN*nN)
	unit := make([]int64, nN*nN)
	for i := 0; i < nN; i++ {
		for j := 0; j < nN; j++ {
			if i != j {
				caps[i*nN+j] = sample.IntBetween(r, total/2, total)
			}
		}
	}
	for i := 0; i < nN; i++ {
		for j := 0; j < nN; j++ {
			if i != j {
				fixed[i*nN+j] = sample.IntBetween(r, fLo, fHi)
			}
		}
	}
	for i := 0; i < nN; i++ {
		for j := 0; j < nN; j++ {
			if i != j {
				unit[i*nN+j] = sample.IntBetween(r, uLo, uHi)
			}
		}
	}

	m := model.New(model.Minimize)
	open := make([]model.Var, nN*nN)
	flow := make([]model.Var, nN*nN)
	for i := 0; i < nN; i++ {
		for j := 0; j < nN; j++ {
			if i == j {
				continue
			}
			k := i*nN + j
			open[k] = m.AddBinary(fmt.Sprintf("open_%d_%d", i, j))
			flow[k] = m.AddCont(fmt.Sprintf("flow_%d_%d", i, j), 0, posInf)
			m.Obj(open[k], float64(fixed[k]))
			m.Obj(flow[k], float64(unit[k]))
		}
	}
	for i := 0; i < nN; i++ {
		for j := 0; j < nN; j++ {
			if i == j {
				continue
			}
			k := i*nN + j
			m.AddConstr(fmt.Sprintf("link_%d_%d", i, j),
				[]model.Term{{V: flow[k], Coef: 1}, {V: open[k], Coef: -float64(caps[k])}},
				model.LE, 0)
		}
	}
	for k := 0; k < nN; k++ {
		var terms []model.Term
		for i := 0; i < nN; i++ {
			if i != k {
				terms = append(terms, model.Term{V: flow[i*nN+k], Coef: 1})
			}
		}
		for j := 0; j < nN; j++ {
			if j != k {
				terms = append(terms, model.Term{V: flow[k*nN+j], Coef: -1})
			}
		}
		m.AddConstr(fmt.Sprintf("node_%d", k), terms, model.EQ, float64(demand[k]-supply[k]))
	}

	d := gen.Draft{Problem: problemName, Seed: seed, Params: res.Snapshot(), Model: m}
	d.AddSet("node", nN)
	d.AddIntTable("supply", "node", supply)
	d.AddIntTable("demand", "node", demand)
	d.AddIntPairs("capacity", "node", "node", nN, nN, caps)
	d.AddIntPairs("fixed_cost", "node", "node", nN, nN, fixed)
	d.AddIntPairs("unit_cost", "node", "node", nN, nN, unit)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
