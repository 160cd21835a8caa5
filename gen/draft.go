// SPDX-License-Identifier: MIT
// Package: optmath/gen
//
// draft.go - the mutable pre-image of an Instance.
//
// A Draft is plain data: generators append sets, tables and the model as
// they sample, and hand the whole thing to Assemble exactly once. All
// validation lives in Assemble; the append helpers never fail.

package gen

import "github.com/optsuite/OptMATH/model"

// Set is one entity class: identifiers 0..N-1, rendered "<name>_<index>".
// Declaration order is canonical and significant.
type Set struct {
	Name string
	N    int
}

// Table is one per-entity attribute column over a Set, either integer or
// float valued (exactly one of Ints/Floats is set).
type Table struct {
	Name   string
	Set    string
	Ints   []int64
	Floats []float64
}

// PairTable is one attribute over ordered entity pairs, row-major
// (RowSet x ColSet), either integer or float valued.
type PairTable struct {
	Name   string
	RowSet string
	ColSet string
	Rows   int
	Cols   int
	Ints   []int64
	Floats []float64
}

// Draft collects everything one generation run produced.
type Draft struct {
	Problem string
	Seed    int64
	Params  map[string]any
	Sets    []Set
	Tables  []Table
	Pairs   []PairTable
	Model   *model.Model
}

// AddSet appends an entity class.
func (d *Draft) AddSet(name string, n int) {
	d.Sets = append(d.Sets, Set{Name: name, N: n})
}

// AddIntTable appends an integer attribute column over set.
func (d *Draft) AddIntTable(name, set string, vals []int64) {
	d.Tables = append(d.Tables, Table{Name: name, Set: set, Ints: vals})
}

// AddFloatTable appends a float attribute column over set.
func (d *Draft) AddFloatTable(name, set string, vals []float64) {
	d.Tables = append(d.Tables, Table{Name: name, Set: set, Floats: vals})
}

// AddIntPairs appends a row-major integer pair attribute.
func (d *Draft) AddIntPairs(name, rowSet, colSet string, rows, cols int, vals []int64) {
	d.Pairs = append(d.Pairs, PairTable{
		Name: name, RowSet: rowSet, ColSet: colSet, Rows: rows, Cols: cols, Ints: vals,
	})
}

// AddFloatPairs appends a row-major float pair attribute.
func (d *Draft) AddFloatPairs(name, rowSet, colSet string, rows, cols int, vals []float64) {
	d.Pairs = append(d.Pairs, PairTable{
		Name: name, RowSet: rowSet, ColSet: colSet, Rows: rows, Cols: cols, Floats: vals,
	})
}
