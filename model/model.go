// SPDX-License-Identifier: MIT
// Package: optmath/model
//
// model.go - in-memory mathematical program: typed variables, a linear
// objective, linear constraints with at most one quadratic block each.
//
// Contract:
//   - Variables are identified by opaque Var handles issued in declaration
//     order; that order is the canonical variable order of every export.
//   - AddVar panics on duplicate/invalid names and inverted bounds
//     (programmer errors in generator code); Validate covers everything a
//     parser or handcrafted model can get wrong, wrapping ErrInvalidModel.
//   - The struct is mutable while a generator builds it; gen.Assemble calls
//     Clone + Validate and publishes only the immutable copy.

package model

import (
	"fmt"
	"math"
)

// Direction of the objective.
type Direction uint8

const (
	Minimize Direction = iota
	Maximize
)

// String implements fmt.Stringer using LP section spelling.
func (d Direction) String() string {
	if d == Maximize {
		return "Maximize"
	}
	return "Minimize"
}

// VarType classifies a decision variable.
type VarType uint8

const (
	Continuous VarType = iota
	Integer
	Binary
)

// String implements fmt.Stringer.
func (t VarType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return "continuous"
	}
}

// Sense of a constraint row.
type Sense uint8

const (
	LE Sense = iota // <=
	EQ              // =
	GE              // >=
)

// String implements fmt.Stringer using LP spelling.
func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Var is an opaque handle to a declared variable.
type Var int

// Term is one linear summand: Coef * variable.
type Term struct {
	V    Var
	Coef float64
}

// QuadTerm is one quadratic summand: Coef * A * B (A == B for a square).
type QuadTerm struct {
	A, B Var
	Coef float64
}

// VarDef describes one declared variable.
type VarDef struct {
	Name   string
	Type   VarType
	Lo, Hi float64
}

// Constraint is one row: linear terms, optional quadratic block, sense, RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Quad  []QuadTerm
	Sense Sense
	RHS   float64
}

// Model is a mathematical program under construction or export.
type Model struct {
	dir     Direction
	vars    []VarDef
	index   map[string]Var
	obj     []Term
	constrs []Constraint
}

// New returns an empty model with the given objective direction.
func New(dir Direction) *Model {
	return &Model{dir: dir, index: make(map[string]Var)}
}

// AddVar declares a variable and returns its handle. Panics on an invalid or
// duplicate name, lo > hi, or NaN bounds (infinities are legal bounds).
func (m *Model) AddVar(name string, t VarType, lo, hi float64) Var {
	switch {
	case !validName(name):
		panic(fmt.Sprintf("model: AddVar: invalid name %q", name))
	case math.IsNaN(lo) || math.IsNaN(hi):
		panic(fmt.Sprintf("model: AddVar: NaN bound on %q", name))
	case lo > hi:
		panic(fmt.Sprintf("model: AddVar: lo=%v > hi=%v on %q", lo, hi, name))
	}
	if _, dup := m.index[name]; dup {
		panic(fmt.Sprintf("model: AddVar: duplicate name %q", name))
	}
	v := Var(len(m.vars))
	m.vars = append(m.vars, VarDef{Name: name, Type: t, Lo: lo, Hi: hi})
	m.index[name] = v
	return v
}

// AddBinary declares a binary variable (bounds fixed to [0, 1]).
func (m *Model) AddBinary(name string) Var {
	return m.AddVar(name, Binary, 0, 1)
}

// AddInt declares a bounded integer variable.
func (m *Model) AddInt(name string, lo, hi float64) Var {
	return m.AddVar(name, Integer, lo, hi)
}

// AddCont declares a bounded continuous variable.
func (m *Model) AddCont(name string, lo, hi float64) Var {
	return m.AddVar(name, Continuous, lo, hi)
}

// Obj appends one objective term.
func (m *Model) Obj(v Var, coef float64) {
	m.obj = append(m.obj, Term{V: v, Coef: coef})
}

// AddConstr appends a linear row.
func (m *Model) AddConstr(name string, terms []Term, s Sense, rhs float64) {
	m.constrs = append(m.constrs, Constraint{Name: name, Terms: terms, Sense: s, RHS: rhs})
}

// AddQuadConstr appends a row carrying a quadratic block next to its linear
// terms (either part may be empty, not both).
func (m *Model) AddQuadConstr(name string, terms []Term, quad []QuadTerm, s Sense, rhs float64) {
	m.constrs = append(m.constrs, Constraint{Name: name, Terms: terms, Quad: quad, Sense: s, RHS: rhs})
}

// Dir returns the objective direction.
func (m *Model) Dir() Direction { return m.dir }

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstrs returns the number of rows.
func (m *Model) NumConstrs() int { return len(m.constrs) }

// Def returns the definition of v. Panics on an out-of-range handle.
func (m *Model) Def(v Var) VarDef {
	if int(v) < 0 || int(v) >= len(m.vars) {
		panic(fmt.Sprintf("model: Def: no variable %d", v))
	}
	return m.vars[v]
}

// Lookup resolves a variable name to its handle.
func (m *Model) Lookup(name string) (Var, bool) {
	v, ok := m.index[name]
	return v, ok
}

// Objective returns a copy of the objective terms in insertion order.
func (m *Model) Objective() []Term {
	out := make([]Term, len(m.obj))
	copy(out, m.obj)
	return out
}

// ObjCoeffs returns the objective as a name -> summed coefficient map
// (duplicate terms merged, zero entries kept as written).
func (m *Model) ObjCoeffs() map[string]float64 {
	out := make(map[string]float64, len(m.obj))
	for _, t := range m.obj {
		out[m.vars[t.V].Name] += t.Coef
	}
	return out
}

// Constr returns a deep copy of row i. Panics on an out-of-range index.
func (m *Model) Constr(i int) Constraint {
	if i < 0 || i >= len(m.constrs) {
		panic(fmt.Sprintf("model: Constr: no row %d", i))
	}
	c := m.constrs[i]
	cc := Constraint{Name: c.Name, Sense: c.Sense, RHS: c.RHS}
	cc.Terms = append([]Term(nil), c.Terms...)
	if c.Quad != nil {
		cc.Quad = append([]QuadTerm(nil), c.Quad...)
	}
	return cc
}

// Clone returns an independent deep copy.
func (m *Model) Clone() *Model {
	out := New(m.dir)
	out.vars = append([]VarDef(nil), m.vars...)
	for i, d := range out.vars {
		out.index[d.Name] = Var(i)
	}
	out.obj = append([]Term(nil), m.obj...)
	out.constrs = make([]Constraint, len(m.constrs))
	for i := range m.constrs {
		out.constrs[i] = m.Constr(i)
	}
	return out
}

// Validate checks structural consistency: valid variable references, finite
// coefficients and RHS values, unique non-empty row names. Returns an
// ErrInvalidModel wrap naming the first defect.
func (m *Model) Validate() error {
	for _, t := range m.obj {
		if err := m.checkTerm("objective", t); err != nil {
			return err
		}
	}
	names := make(map[string]struct{}, len(m.constrs))
	for i, c := range m.constrs {
		if c.Name == "" || !validName(c.Name) {
			return fmt.Errorf("Validate: row %d: invalid name %q: %w", i, c.Name, ErrInvalidModel)
		}
		if _, dup := names[c.Name]; dup {
			return fmt.Errorf("Validate: duplicate row name %q: %w", c.Name, ErrInvalidModel)
		}
		names[c.Name] = struct{}{}
		if len(c.Terms) == 0 && len(c.Quad) == 0 {
			return fmt.Errorf("Validate: row %q is empty: %w", c.Name, ErrInvalidModel)
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("Validate: row %q: non-finite rhs %v: %w", c.Name, c.RHS, ErrInvalidModel)
		}
		for _, t := range c.Terms {
			if err := m.checkTerm(c.Name, t); err != nil {
				return err
			}
		}
		for _, q := range c.Quad {
			if !m.inRange(q.A) || !m.inRange(q.B) {
				return fmt.Errorf("Validate: row %q: dangling quadratic reference: %w", c.Name, ErrInvalidModel)
			}
			if math.IsNaN(q.Coef) || math.IsInf(q.Coef, 0) {
				return fmt.Errorf("Validate: row %q: non-finite quadratic coefficient: %w", c.Name, ErrInvalidModel)
			}
		}
	}
	return nil
}

func (m *Model) checkTerm(where string, t Term) error {
	if !m.inRange(t.V) {
		return fmt.Errorf("Validate: %s: dangling variable reference %d: %w", where, t.V, ErrInvalidModel)
	}
	if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
		return fmt.Errorf("Validate: %s: non-finite coefficient on %q: %w",
			where, m.vars[t.V].Name, ErrInvalidModel)
	}
	return nil
}

func (m *Model) inRange(v Var) bool { return int(v) >= 0 && int(v) < len(m.vars) }

// validName accepts LP-safe identifiers: a letter or underscore followed by
// letters, digits, underscores or dots.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9', r == '.':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
