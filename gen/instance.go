// SPDX-License-Identifier: MIT
// Package: optmath/gen
//
// instance.go - Assemble: Draft -> immutable Instance.
//
// Contract:
//   - Assemble validates the draft (unique names, tables sized to their
//     sets, pair tables sized rows*cols, model passes its own Validate),
//     then deep-copies everything: the Instance exclusively owns its data.
//   - Assemble performs no sampling and reads no clock; it is a pure
//     transform, so assembly bugs reproduce without any seed.
//   - Accessors hand out defensive copies only. There is no mutation path;
//     regeneration means a new run.

package gen

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/optsuite/OptMATH/model"
)

const methodAssemble = "Assemble"

// Instance is one immutable generated problem instance: entity sets,
// attribute tables, the resolved parameter record and the formulation.
type Instance struct {
	problem string
	seed    int64
	params  map[string]any
	sets    []Set
	setIdx  map[string]int
	tables  []Table
	tblIdx  map[string]int
	pairs   []PairTable
	pairIdx map[string]int
	mdl     *model.Model
}

// Assemble validates d and returns the immutable Instance. Structural
// defects wrap ErrDraft; formulation defects keep model.ErrInvalidModel.
func Assemble(d Draft) (*Instance, error) {
	if d.Problem == "" {
		return nil, fmt.Errorf("%s: empty problem name: %w", methodAssemble, ErrDraft)
	}
	if d.Model == nil {
		return nil, fmt.Errorf("%s: nil model: %w", methodAssemble, ErrDraft)
	}

	inst := &Instance{
		problem: d.Problem,
		seed:    d.Seed,
		params:  make(map[string]any, len(d.Params)),
		setIdx:  make(map[string]int, len(d.Sets)),
		tblIdx:  make(map[string]int, len(d.Tables)),
		pairIdx: make(map[string]int, len(d.Pairs)),
	}
	for k, v := range d.Params {
		inst.params[k] = v
	}

	for _, s := range d.Sets {
		if s.Name == "" {
			return nil, fmt.Errorf("%s: unnamed set: %w", methodAssemble, ErrDraft)
		}
		if s.N < 0 {
			return nil, fmt.Errorf("%s: set %q: negative size %d: %w", methodAssemble, s.Name, s.N, ErrDraft)
		}
		if _, dup := inst.setIdx[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate set %q: %w", methodAssemble, s.Name, ErrDraft)
		}
		inst.setIdx[s.Name] = len(inst.sets)
		inst.sets = append(inst.sets, s)
	}

	for _, t := range d.Tables {
		if err := inst.addTable(t); err != nil {
			return nil, err
		}
	}
	for _, p := range d.Pairs {
		if err := inst.addPairs(p); err != nil {
			return nil, err
		}
	}

	if err := d.Model.Validate(); err != nil {
		return nil, fmt.Errorf("%s: model: %w", methodAssemble, err)
	}
	inst.mdl = d.Model.Clone()
	return inst, nil
}

func (i *Instance) addTable(t Table) error {
	if t.Name == "" {
		return fmt.Errorf("%s: unnamed table: %w", methodAssemble, ErrDraft)
	}
	if _, dup := i.tblIdx[t.Name]; dup {
		return fmt.Errorf("%s: duplicate table %q: %w", methodAssemble, t.Name, ErrDraft)
	}
	si, ok := i.setIdx[t.Set]
	if !ok {
		return fmt.Errorf("%s: table %q over unknown set %q: %w", methodAssemble, t.Name, t.Set, ErrDraft)
	}
	if (t.Ints == nil) == (t.Floats == nil) {
		return fmt.Errorf("%s: table %q: want exactly one of int/float values: %w", methodAssemble, t.Name, ErrDraft)
	}
	n := len(t.Ints) + len(t.Floats)
	if n != i.sets[si].N {
		return fmt.Errorf("%s: table %q: %d values over set %q of size %d: %w",
			methodAssemble, t.Name, n, t.Set, i.sets[si].N, ErrDraft)
	}
	cp := Table{Name: t.Name, Set: t.Set}
	if t.Ints != nil {
		cp.Ints = append([]int64(nil), t.Ints...)
	} else {
		cp.Floats = append([]float64(nil), t.Floats...)
	}
	i.tblIdx[t.Name] = len(i.tables)
	i.tables = append(i.tables, cp)
	return nil
}

func (i *Instance) addPairs(p PairTable) error {
	if p.Name == "" {
		return fmt.Errorf("%s: unnamed pair table: %w", methodAssemble, ErrDraft)
	}
	if _, dup := i.pairIdx[p.Name]; dup {
		return fmt.Errorf("%s: duplicate pair table %q: %w", methodAssemble, p.Name, ErrDraft)
	}
	if _, dup := i.tblIdx[p.Name]; dup {
		return fmt.Errorf("%s: pair table %q shadows a table: %w", methodAssemble, p.Name, ErrDraft)
	}
	ri, ok := i.setIdx[p.RowSet]
	if !ok {
		return fmt.Errorf("%s: pair table %q over unknown set %q: %w", methodAssemble, p.Name, p.RowSet, ErrDraft)
	}
	ci, ok := i.setIdx[p.ColSet]
	if !ok {
		return fmt.Errorf("%s: pair table %q over unknown set %q: %w", methodAssemble, p.Name, p.ColSet, ErrDraft)
	}
	if p.Rows != i.sets[ri].N || p.Cols != i.sets[ci].N {
		return fmt.Errorf("%s: pair table %q: dims %dx%d over sets of size %dx%d: %w",
			methodAssemble, p.Name, p.Rows, p.Cols, i.sets[ri].N, i.sets[ci].N, ErrDraft)
	}
	if (p.Ints == nil) == (p.Floats == nil) {
		return fmt.Errorf("%s: pair table %q: want exactly one of int/float values: %w", methodAssemble, p.Name, ErrDraft)
	}
	if n := len(p.Ints) + len(p.Floats); n != p.Rows*p.Cols {
		return fmt.Errorf("%s: pair table %q: %d values for %dx%d: %w",
			methodAssemble, p.Name, n, p.Rows, p.Cols, ErrDraft)
	}
	cp := PairTable{Name: p.Name, RowSet: p.RowSet, ColSet: p.ColSet, Rows: p.Rows, Cols: p.Cols}
	if p.Ints != nil {
		cp.Ints = append([]int64(nil), p.Ints...)
	} else {
		cp.Floats = append([]float64(nil), p.Floats...)
	}
	i.pairIdx[p.Name] = len(i.pairs)
	i.pairs = append(i.pairs, cp)
	return nil
}

// Problem returns the problem family name.
func (i *Instance) Problem() string { return i.problem }

// Seed returns the seed this instance replays from.
func (i *Instance) Seed() int64 { return i.seed }

// Params returns a copy of the resolved parameter record.
func (i *Instance) Params() map[string]any {
	out := make(map[string]any, len(i.params))
	for k, v := range i.params {
		out[k] = v
	}
	return out
}

// Sets returns the entity sets in declaration order.
func (i *Instance) Sets() []Set {
	return append([]Set(nil), i.sets...)
}

// SetSize returns the size of the named set.
func (i *Instance) SetSize(name string) (int, bool) {
	si, ok := i.setIdx[name]
	if !ok {
		return 0, false
	}
	return i.sets[si].N, true
}

// Table returns a copy of the named attribute column.
func (i *Instance) Table(name string) (Table, bool) {
	ti, ok := i.tblIdx[name]
	if !ok {
		return Table{}, false
	}
	t := i.tables[ti]
	cp := Table{Name: t.Name, Set: t.Set}
	if t.Ints != nil {
		cp.Ints = append([]int64(nil), t.Ints...)
	} else {
		cp.Floats = append([]float64(nil), t.Floats...)
	}
	return cp, true
}

// IntColumn returns a copy of an integer table's values, nil when absent or
// float-valued.
func (i *Instance) IntColumn(name string) []int64 {
	t, ok := i.Table(name)
	if !ok || t.Ints == nil {
		return nil
	}
	return t.Ints
}

// FloatColumn returns a copy of a float table's values, nil when absent or
// integer-valued.
func (i *Instance) FloatColumn(name string) []float64 {
	t, ok := i.Table(name)
	if !ok || t.Floats == nil {
		return nil
	}
	return t.Floats
}

// Pair returns a copy of the named pair table.
func (i *Instance) Pair(name string) (PairTable, bool) {
	pi, ok := i.pairIdx[name]
	if !ok {
		return PairTable{}, false
	}
	p := i.pairs[pi]
	cp := PairTable{Name: p.Name, RowSet: p.RowSet, ColSet: p.ColSet, Rows: p.Rows, Cols: p.Cols}
	if p.Ints != nil {
		cp.Ints = append([]int64(nil), p.Ints...)
	} else {
		cp.Floats = append([]float64(nil), p.Floats...)
	}
	return cp, true
}

// Model returns an independent copy of the formulation.
func (i *Instance) Model() *model.Model {
	return i.mdl.Clone()
}

// WriteLP writes a comment header naming problem and seed, then the LP text.
func (i *Instance) WriteLP(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\\ problem: %s\n\\ seed: %d\n", i.problem, i.seed); err != nil {
		return err
	}
	return i.mdl.WriteLP(w)
}

// SetSnap is one entity set in a Snapshot.
type SetSnap struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

// TableSnap is one attribute column in a Snapshot.
type TableSnap struct {
	Name   string `json:"name"`
	Set    string `json:"set"`
	Values any    `json:"values"`
}

// PairSnap is one pair attribute in a Snapshot.
type PairSnap struct {
	Name   string `json:"name"`
	RowSet string `json:"row_set"`
	ColSet string `json:"col_set"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Values any    `json:"values"`
}

// Snapshot is the formulation-free structured export of an Instance. Field
// order and set/table order are deterministic; params marshal key-sorted.
type Snapshot struct {
	Problem string         `json:"problem"`
	Seed    int64          `json:"seed"`
	Params  map[string]any `json:"params"`
	Sets    []SetSnap      `json:"sets"`
	Tables  []TableSnap    `json:"tables"`
	Pairs   []PairSnap     `json:"pairs,omitempty"`
}

// Snapshot builds the structured export from copies of the instance data.
func (i *Instance) Snapshot() Snapshot {
	s := Snapshot{
		Problem: i.problem,
		Seed:    i.seed,
		Params:  i.Params(),
	}
	for _, set := range i.sets {
		s.Sets = append(s.Sets, SetSnap{Name: set.Name, N: set.N})
	}
	for _, t := range i.tables {
		ts := TableSnap{Name: t.Name, Set: t.Set}
		if t.Ints != nil {
			ts.Values = append([]int64(nil), t.Ints...)
		} else {
			ts.Values = append([]float64(nil), t.Floats...)
		}
		s.Tables = append(s.Tables, ts)
	}
	for _, p := range i.pairs {
		ps := PairSnap{Name: p.Name, RowSet: p.RowSet, ColSet: p.ColSet, Rows: p.Rows, Cols: p.Cols}
		if p.Ints != nil {
			ps.Values = append([]int64(nil), p.Ints...)
		} else {
			ps.Values = append([]float64(nil), p.Floats...)
		}
		s.Pairs = append(s.Pairs, ps)
	}
	return s
}

// MarshalJSON implements json.Marshaler via Snapshot.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Snapshot())
}
