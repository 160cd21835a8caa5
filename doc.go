// Package optmath is a library of parameterized random generators for
// classical optimization problems, from knapsack and facility location to
// vehicle routing and aircraft landing, producing seeded, reproducible
// MILP instances as LP files or structured JSON.
//
// 🎲 What is optmath?
//
//	A deterministic instance factory that brings together:
//		• 13 problem families: knapsack, facility, transport, vrptw, tsp,
//		  binpack, setcover, lotsizing, landing, diet, portfolio, assign,
//		  supplychain
//		• One shared stream per run: same seed, byte-identical instances
//		• Typed configuration schemas: fixed values or [min, max] ranges,
//		  validated before the first draw
//		• Feasibility balancing: capacities raised, sums pinned exactly,
//		  big-M constants derived from the data they bound
//		• Two export forms: CPLEX-style LP text and structured JSON
//
// ✨ Why optmath?
//
//   - Reproducible: every instance records the seed that produced it,
//     and replaying the seed replays the bytes
//   - Strict by default: unknown keys and malformed ranges fail fast,
//     before any random draw
//   - Safe to share: instances are immutable and hand out copies
//   - Scales out: the dataset builder fans jobs across a bounded worker
//     group, one derived seed per instance
//
// Everything is organized under small, single-purpose packages:
//
//	config/   - parameter schemas, fixed/range values, strict resolution
//	rng/      - seeded stream construction and SplitMix64 sub-seeding
//	sample/   - uniform draw primitives and the bounded retry loop
//	balance/  - feasibility repair: partition, equalize, raise, big-M
//	model/    - typed variables, constraint rows, LP writing and parsing
//	gen/      - generator options, the sampling Draft, the Instance
//	catalog/  - problem-name to generator-factory registry
//	dataset/  - YAML-driven batch builds with a run manifest
//	cmd/      - the optmath CLI: list, generate, dataset
//
// plus one package per problem family (knapsack/, facility/, vrptw/, ...).
//
// Quick example:
//
//	g := knapsack.New(nil, gen.WithSeed(42))
//	inst, err := g.GenerateInstance()
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = inst.WriteLP(os.Stdout)
//
//	go get github.com/optsuite/OptMATH
package optmath
