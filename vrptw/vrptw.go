// SPDX-License-Identifier: MIT
// Package: optmath/vrptw
//
// vrptw.go - capacitated vehicle routing with time windows.
//
// Pipeline order: resolve, then demands (customer order), lower window
// edges, upper window edges (lower plus a 10..20 slack, second pass),
// distances (row-major over all ordered node pairs, depot included,
// diagonal skipped), service times.
//
// Deactivation constants are derived from the drawn data instead of a
// fixed literal:
//  - M_time = max(tw_hi + service) + max distance - min tw_lo
//  - M_load = capacity + max demand
// Vehicle capacity is raised to the largest single demand so every
// customer can be served at all.
package vrptw

import (
	"fmt"
	"math"

	"github.com/optsuite/OptMATH/balance"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/model"
	"github.com/optsuite/OptMATH/sample"
)

const problemName = "vrptw"

// Window upper edges sit this far above the lower edge.
const (
	windowSlackLo = 10
	windowSlackHi = 20
)

var posInf = math.Inf(1)

// Schema lists the recognized configuration keys.
func Schema() config.Schema {
	return config.Schema{
		Problem: problemName,
		Keys: []config.Key{
			{Name: "n_customers", Kind: config.Int, Def: config.Range(5, 10), Min: 1},
			{Name: "demand_range", Kind: config.IntInterval, Def: config.Range(1, 10), Min: 1},
			{Name: "time_window_range", Kind: config.IntInterval, Def: config.Range(0, 100), Min: 0},
			{Name: "distance_range", Kind: config.IntInterval, Def: config.Range(1, 50), Min: 1},
			{Name: "service_time_range", Kind: config.IntInterval, Def: config.Range(1, 10), Min: 0},
			{Name: "vehicle_capacity", Kind: config.Int, Def: config.Range(50, 100), Min: 1},
		},
	}
}

// Generator produces vehicle routing instances. Node 0 is the depot,
// nodes 1..n_customers are customers.
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

	nCust := res.Int("n_customers")
	nNodes := nCust + 1
	dLo, dHi := res.IntInterval("demand_range")
	twLo, twHi := res.IntInterval("time_window_range")
	distLo, distHi := res.IntInterval("distance_range")
	svcLo, svcHi := res.IntInterval("service_time_range")
	capacity := res.Int64("vehicle_capacity")

	// Node 0 entries stay zero: the depot has no demand, window or service.
	demand := make([]int64, nNodes)
	windowLo := make([]int64, nNodes)
	windowHi := make([]int64, nNodes)
	service := make([]int64, nNodes)
	for i := 1; i < nNodes; i++ {
		demand[i] = sample.IntBetween(r, dLo, dHi)
	}
	for i := 1; i < nNodes; i++ {
		windowLo[i] = sample.IntBetween(r, twLo, twHi)
	}
	for i := 1; i < nNodes; i++ {
		windowHi[i] = windowLo[i] + sample.IntBetween(r, windowSlackLo, windowSlackHi)
	}
	distance := make([]int64, nNodes*nNodes)
	for i := 0; i < nNodes; i++ {
		for j := 0; j < nNodes; j++ {
			if i != j {
				distance[i*nNodes+j] = sample.IntBetween(r, distLo, distHi)
			}
		}
	}
	for i := 1; i < nNodes; i++ {
		service[i] = sample.IntBetween(r, svcLo, svcHi)
	}

	maxDemand := int64(0)
	for i := 1; i < nNodes; i++ {
		if demand[i] > maxDemand {
			maxDemand = demand[i]
		}
	}
	capacity = balance.AtLeast(capacity, maxDemand)

	worstDeparture := int64(0)
	minWindowLo := windowLo[1]
	for i := 1; i < nNodes; i++ {
		if d := windowHi[i] + service[i]; d > worstDeparture {
			worstDeparture = d
		}
		if windowLo[i] < minWindowLo {
			minWindowLo = windowLo[i]
		}
	}
	maxDistance := int64(0)
	for _, d := range distance {
		if d > maxDistance {
			maxDistance = d
		}
	}
	mTime := balance.BigM(float64(worstDeparture+maxDistance-minWindowLo), 1)
	mLoad := balance.BigM(float64(capacity+maxDemand), 1)

	m := model.New(model.Minimize)
	route := make([]model.Var, nNodes*nNodes)
	for i := 0; i < nNodes; i++ {
		for j := 0; j < nNodes; j++ {
			if i != j {
				route[i*nNodes+j] = m.AddBinary(fmt.Sprintf("route_%d_%d", i, j))
				m.Obj(route[i*nNodes+j], float64(distance[i*nNodes+j]))
			}
		}
	}
	tVar := make([]model.Var, nNodes)
	lVar := make([]model.Var, nNodes)
	for i := 1; i < nNodes; i++ {
		tVar[i] = m.AddCont(fmt.Sprintf("time_%d", i), 0, posInf)
	}
	for i := 1; i < nNodes; i++ {
		lVar[i] = m.AddCont(fmt.Sprintf("load_%d", i), 0, posInf)
	}

	for i := 1; i < nNodes; i++ {
		terms := make([]model.Term, 0, nNodes-1)
		for j := 0; j < nNodes; j++ {
			if i != j {
				terms = append(terms, model.Term{V: route[i*nNodes+j], Coef: 1})
			}
		}
		m.AddConstr(fmt.Sprintf("outdeg_%d", i), terms, model.EQ, 1)
	}
	for i := 1; i < nNodes; i++ {
		terms := make([]model.Term, 0, 2*(nNodes-1))
		for j := 0; j < nNodes; j++ {
			if i != j {
				terms = append(terms, model.Term{V: route[i*nNodes+j], Coef: 1})
			}
		}
		for j := 0; j < nNodes; j++ {
			if i != j {
				terms = append(terms, model.Term{V: route[j*nNodes+i], Coef: -1})
			}
		}
		m.AddConstr(fmt.Sprintf("flow_%d", i), terms, model.EQ, 0)
	}
	// time_i + d_ij + service_i - time_j <= M_time*(1 - route_i_j).
	for i := 1; i < nNodes; i++ {
		for j := 1; j < nNodes; j++ {
			if i == j {
				continue
			}
			m.AddConstr(fmt.Sprintf("schedule_%d_%d", i, j),
				[]model.Term{
					{V: tVar[i], Coef: 1},
					{V: tVar[j], Coef: -1},
					{V: route[i*nNodes+j], Coef: mTime},
				},
				model.LE, mTime-float64(distance[i*nNodes+j])-float64(service[i]))
		}
	}
	for i := 1; i < nNodes; i++ {
		m.AddConstr(fmt.Sprintf("window_lo_%d", i),
			[]model.Term{{V: tVar[i], Coef: 1}}, model.GE, float64(windowLo[i]))
		m.AddConstr(fmt.Sprintf("window_hi_%d", i),
			[]model.Term{{V: tVar[i], Coef: 1}}, model.LE, float64(windowHi[i]))
	}
	// load_j + demand_i - load_i <= M_load*(1 - route_i_j).
	for i := 1; i < nNodes; i++ {
		for j := 1; j < nNodes; j++ {
			if i == j {
				continue
			}
			m.AddConstr(fmt.Sprintf("transfer_%d_%d", i, j),
				[]model.Term{
					{V: lVar[j], Coef: 1},
					{V: lVar[i], Coef: -1},
					{V: route[i*nNodes+j], Coef: mLoad},
				},
				model.LE, mLoad-float64(demand[i]))
		}
	}
	for i := 1; i < nNodes; i++ {
		m.AddConstr(fmt.Sprintf("capacity_%d", i),
			[]model.Term{{V: lVar[i], Coef: 1}}, model.LE, float64(capacity))
	}

	params := res.Snapshot()
	params["capacity"] = float64(capacity)
	params["m_time"] = mTime
	params["m_load"] = mLoad

	d := gen.Draft{Problem: problemName, Seed: seed, Params: params, Model: m}
	d.AddSet("node", nNodes)
	d.AddIntTable("demand", "node", demand)
	d.AddIntTable("tw_lo", "node", windowLo)
	d.AddIntTable("tw_hi", "node", windowHi)
	d.AddIntTable("service_time", "node", service)
	d.AddIntPairs("distance", "node", "node", nNodes, nNodes, distance)

	inst, err := gen.Assemble(d)
	if err != nil {
		return nil, fmt.Errorf("%s.GenerateInstance: %w", problemName, err)
	}
	return inst, nil
}
