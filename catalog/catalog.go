// SPDX-License-Identifier: MIT
// Package: optmath/catalog
//
// catalog.go - problem-name to generator-factory registry.
//
// Contract:
//  - Registered names are stable identifiers; Names() reports them sorted.
//  - Lookup of an unregistered name wraps ErrUnknownProblem and lists the
//    known names, so a typo in a spec or flag is diagnosable in one read.

// Package catalog maps problem-class names to their generator factories,
// giving the dataset builder and the CLI one uniform construction path.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/optsuite/OptMATH/assign"
	"github.com/optsuite/OptMATH/binpack"
	"github.com/optsuite/OptMATH/config"
	"github.com/optsuite/OptMATH/diet"
	"github.com/optsuite/OptMATH/facility"
	"github.com/optsuite/OptMATH/gen"
	"github.com/optsuite/OptMATH/knapsack"
	"github.com/optsuite/OptMATH/landing"
	"github.com/optsuite/OptMATH/lotsizing"
	"github.com/optsuite/OptMATH/portfolio"
	"github.com/optsuite/OptMATH/setcover"
	"github.com/optsuite/OptMATH/supplychain"
	"github.com/optsuite/OptMATH/transport"
	"github.com/optsuite/OptMATH/tsp"
	"github.com/optsuite/OptMATH/vrptw"
)

// ErrUnknownProblem reports a name with no registered factory.
var ErrUnknownProblem = errors.New("optmath: unknown problem")

// Factory bundles a problem class: its configuration schema and its
// generator constructor.
type Factory struct {
	Schema func() config.Schema
	New    func(cfg config.Config, opts ...gen.Option) gen.Generator
}

var registry = map[string]Factory{
	"assign": {Schema: assign.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return assign.New(cfg, opts...) }},
	"binpack": {Schema: binpack.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return binpack.New(cfg, opts...) }},
	"diet": {Schema: diet.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return diet.New(cfg, opts...) }},
	"facility": {Schema: facility.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return facility.New(cfg, opts...) }},
	"knapsack": {Schema: knapsack.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return knapsack.New(cfg, opts...) }},
	"landing": {Schema: landing.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return landing.New(cfg, opts...) }},
	"lotsizing": {Schema: lotsizing.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return lotsizing.New(cfg, opts...) }},
	"portfolio": {Schema: portfolio.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return portfolio.New(cfg, opts...) }},
	"setcover": {Schema: setcover.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return setcover.New(cfg, opts...) }},
	"supplychain": {Schema: supplychain.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return supplychain.New(cfg, opts...) }},
	"transport": {Schema: transport.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return transport.New(cfg, opts...) }},
	"tsp": {Schema: tsp.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return tsp.New(cfg, opts...) }},
	"vrptw": {Schema: vrptw.Schema,
		New: func(cfg config.Config, opts ...gen.Option) gen.Generator { return vrptw.New(cfg, opts...) }},
}

// Names returns every registered problem name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a problem name to its factory.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return Factory{}, fmt.Errorf("Lookup: %q (known: %s): %w",
			name, strings.Join(Names(), ", "), ErrUnknownProblem)
	}
	return f, nil
}

// New constructs a generator for the named problem class.
func New(name string, cfg config.Config, opts ...gen.Option) (gen.Generator, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.New(cfg, opts...), nil
}

// Schema returns the configuration schema of the named problem class.
func Schema(name string) (config.Schema, error) {
	f, err := Lookup(name)
	if err != nil {
		return config.Schema{}, err
	}
	return f.Schema(), nil
}
