// SPDX-License-Identifier: MIT
// Package: optmath/model
//
// parser.go - LP text -> Model, reading the dialect writer.go emits
// (plus the common loose spellings: st / s.t., bin / gen, < / > senses).
//
// Recovered models satisfy Validate; parse errors wrap ErrLPSyntax with the
// 1-based line number. Variables get ids in order of first appearance,
// which reproduces declaration order for writer-emitted text.

package model

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const methodParseLP = "ParseLP"

type lpSection uint8

const (
	secObjective lpSection = iota
	secConstraints
	secBounds
	secBinaries
	secGenerals
	secEnd
)

type lpParser struct {
	m       *Model
	sec     lpSection
	sawDir  bool
	objToks []string
	objDone bool
	curName string
	curToks []string
	curLn   int
}

// ParseLP reads LP text into a validated Model.
func ParseLP(r io.Reader) (*Model, error) {
	p := &lpParser{m: New(Minimize)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if i := strings.IndexByte(line, '\\'); i >= 0 { // \ starts a comment
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := p.line(ln, line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: read: %w", methodParseLP, err)
	}
	if err := p.finish(ln); err != nil {
		return nil, err
	}
	return p.m, nil
}

func (p *lpParser) line(ln int, s string) error {
	keyword := strings.Join(strings.Fields(strings.ToLower(s)), " ")

	if !p.sawDir {
		switch keyword {
		case "maximize", "maximum", "max":
			p.m.dir = Maximize
		case "minimize", "minimum", "min":
			p.m.dir = Minimize
		default:
			return errLP(ln, "expected Maximize or Minimize, got %q", s)
		}
		p.sawDir = true
		p.sec = secObjective
		return nil
	}

	switch keyword {
	case "subject to", "such that", "st", "s.t.":
		if err := p.flushObjective(ln); err != nil {
			return err
		}
		p.sec = secConstraints
		return nil
	case "bounds":
		if err := p.leaveRowSections(ln); err != nil {
			return err
		}
		p.sec = secBounds
		return nil
	case "binaries", "binary", "bin":
		if err := p.leaveRowSections(ln); err != nil {
			return err
		}
		p.sec = secBinaries
		return nil
	case "generals", "general", "gen":
		if err := p.leaveRowSections(ln); err != nil {
			return err
		}
		p.sec = secGenerals
		return nil
	case "end":
		if err := p.leaveRowSections(ln); err != nil {
			return err
		}
		p.sec = secEnd
		return nil
	}

	toks := strings.Fields(s)
	switch p.sec {
	case secObjective:
		p.objToks = append(p.objToks, toks...)
		return nil
	case secConstraints:
		if strings.HasSuffix(toks[0], ":") {
			if err := p.flushConstraint(); err != nil {
				return err
			}
			p.curName = strings.TrimSuffix(toks[0], ":")
			p.curToks = append(p.curToks[:0:0], toks[1:]...)
			p.curLn = ln
			return nil
		}
		if p.curName == "" {
			return errLP(ln, "constraint body before any row label")
		}
		p.curToks = append(p.curToks, toks...)
		return nil
	case secBounds:
		return p.boundLine(ln, toks)
	case secBinaries:
		return p.markVars(ln, toks, Binary)
	case secGenerals:
		return p.markVars(ln, toks, Integer)
	default:
		return errLP(ln, "content after End: %q", s)
	}
}

// leaveRowSections finalizes whichever of objective/constraints is open.
func (p *lpParser) leaveRowSections(ln int) error {
	if err := p.flushObjective(ln); err != nil {
		return err
	}
	return p.flushConstraint()
}

func (p *lpParser) flushObjective(ln int) error {
	if p.objDone {
		return nil
	}
	p.objDone = true
	toks := p.objToks
	if len(toks) > 0 && strings.HasSuffix(toks[0], ":") {
		toks = toks[1:] // objective label, name irrelevant
	}
	terms, quads, err := p.parseExpr(ln, toks)
	if err != nil {
		return err
	}
	if len(quads) > 0 {
		return errLP(ln, "quadratic objective not supported")
	}
	p.m.obj = terms
	return nil
}

func (p *lpParser) flushConstraint() error {
	if p.curName == "" {
		return nil
	}
	name, toks, ln := p.curName, p.curToks, p.curLn
	p.curName, p.curToks = "", nil

	senseIdx := -1
	var sense Sense
	for i, t := range toks {
		switch t {
		case "<=", "<":
			sense, senseIdx = LE, i
		case ">=", ">":
			sense, senseIdx = GE, i
		case "=":
			sense, senseIdx = EQ, i
		}
		if senseIdx >= 0 {
			break
		}
	}
	if senseIdx < 0 {
		return errLP(ln, "row %q has no sense", name)
	}
	rhs, err := p.parseRHS(ln, name, toks[senseIdx+1:])
	if err != nil {
		return err
	}
	terms, quads, err := p.parseExpr(ln, toks[:senseIdx])
	if err != nil {
		return err
	}
	p.m.AddQuadConstr(name, terms, quads, sense, rhs)
	return nil
}

func (p *lpParser) parseRHS(ln int, name string, toks []string) (float64, error) {
	sign := 1.0
	i := 0
	for i < len(toks) && (toks[i] == "+" || toks[i] == "-") {
		if toks[i] == "-" {
			sign = -sign
		}
		i++
	}
	if i != len(toks)-1 {
		return 0, errLP(ln, "row %q: expected a single rhs number", name)
	}
	v, err := strconv.ParseFloat(toks[i], 64)
	if err != nil {
		return 0, errLP(ln, "row %q: bad rhs %q", name, toks[i])
	}
	return sign * v, nil
}

// parseExpr reads "[sign] [coef] name" linear terms and at most one
// "[ ... ]" quadratic block.
func (p *lpParser) parseExpr(ln int, toks []string) ([]Term, []QuadTerm, error) {
	var (
		terms    []Term
		quads    []QuadTerm
		sign     = 1.0
		coef     = 1.0
		haveCoef bool
	)
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch {
		case t == "+":
			i++
		case t == "-":
			sign = -sign
			i++
		case t == "[":
			if quads != nil {
				return nil, nil, errLP(ln, "second quadratic block")
			}
			if haveCoef || sign < 0 {
				return nil, nil, errLP(ln, "sign or coefficient before quadratic block")
			}
			block, next, err := p.parseQuadBlock(ln, toks, i+1)
			if err != nil {
				return nil, nil, err
			}
			quads, i = block, next
		default:
			if v, err := strconv.ParseFloat(t, 64); err == nil {
				if haveCoef {
					return nil, nil, errLP(ln, "two coefficients in a row near %q", t)
				}
				coef, haveCoef = v, true
				i++
				continue
			}
			if !validName(t) {
				return nil, nil, errLP(ln, "bad token %q", t)
			}
			terms = append(terms, Term{V: p.ensure(t), Coef: sign * coef})
			sign, coef, haveCoef = 1.0, 1.0, false
			i++
		}
	}
	if haveCoef {
		return nil, nil, errLP(ln, "dangling coefficient")
	}
	return terms, quads, nil
}

// parseQuadBlock reads tokens after "[" up to "]"; every term must be
// degree two ("a ^ 2" or "a * b"). Returns the terms and the index after
// the closing bracket.
func (p *lpParser) parseQuadBlock(ln int, toks []string, i int) ([]QuadTerm, int, error) {
	quads := []QuadTerm{}
	sign, coef, haveCoef := 1.0, 1.0, false
	for i < len(toks) {
		t := toks[i]
		switch {
		case t == "]":
			if haveCoef {
				return nil, 0, errLP(ln, "dangling coefficient in quadratic block")
			}
			return quads, i + 1, nil
		case t == "+":
			i++
		case t == "-":
			sign = -sign
			i++
		default:
			if v, err := strconv.ParseFloat(t, 64); err == nil {
				if haveCoef {
					return nil, 0, errLP(ln, "two coefficients in a row near %q", t)
				}
				coef, haveCoef = v, true
				i++
				continue
			}
			if !validName(t) {
				return nil, 0, errLP(ln, "bad token %q in quadratic block", t)
			}
			a := p.ensure(t)
			if i+1 >= len(toks) {
				return nil, 0, errLP(ln, "truncated quadratic term")
			}
			switch toks[i+1] {
			case "^":
				if i+2 >= len(toks) || toks[i+2] != "2" {
					return nil, 0, errLP(ln, "only squares are supported after ^")
				}
				quads = append(quads, QuadTerm{A: a, B: a, Coef: sign * coef})
				i += 3
			case "*":
				if i+2 >= len(toks) || !validName(toks[i+2]) {
					return nil, 0, errLP(ln, "bad product term after %q", t)
				}
				quads = append(quads, QuadTerm{A: a, B: p.ensure(toks[i+2]), Coef: sign * coef})
				i += 3
			default:
				return nil, 0, errLP(ln, "linear term %q inside quadratic block", t)
			}
			sign, coef, haveCoef = 1.0, 1.0, false
		}
	}
	return nil, 0, errLP(ln, "unclosed quadratic block")
}

func (p *lpParser) boundLine(ln int, toks []string) error {
	if v, err := strconv.ParseFloat(toks[0], 64); err == nil {
		// "lo <= name" or "lo <= name <= hi"
		if len(toks) != 3 && len(toks) != 5 {
			return errLP(ln, "bad bound line")
		}
		if toks[1] != "<=" || !validName(toks[2]) {
			return errLP(ln, "bad bound line")
		}
		d := &p.m.vars[p.ensure(toks[2])]
		d.Lo = v
		if len(toks) == 5 {
			if toks[3] != "<=" {
				return errLP(ln, "bad bound line")
			}
			hi, err := strconv.ParseFloat(toks[4], 64)
			if err != nil {
				return errLP(ln, "bad bound %q", toks[4])
			}
			d.Hi = hi
		}
		return nil
	}

	if !validName(toks[0]) {
		return errLP(ln, "bad bound name %q", toks[0])
	}
	d := &p.m.vars[p.ensure(toks[0])]
	if len(toks) == 2 && strings.EqualFold(toks[1], "free") {
		d.Lo, d.Hi = math.Inf(-1), math.Inf(1)
		return nil
	}
	if len(toks) != 3 {
		return errLP(ln, "bad bound line")
	}
	v, err := strconv.ParseFloat(toks[2], 64)
	if err != nil {
		return errLP(ln, "bad bound %q", toks[2])
	}
	switch toks[1] {
	case "<=", "<":
		d.Hi = v
	case ">=", ">":
		d.Lo = v
	case "=":
		d.Lo, d.Hi = v, v
	default:
		return errLP(ln, "bad bound operator %q", toks[1])
	}
	return nil
}

func (p *lpParser) markVars(ln int, toks []string, t VarType) error {
	for _, name := range toks {
		if !validName(name) {
			return errLP(ln, "bad variable name %q", name)
		}
		d := &p.m.vars[p.ensure(name)]
		d.Type = t
		if t == Binary {
			d.Lo, d.Hi = 0, 1
		}
	}
	return nil
}

// ensure resolves or declares name as a default continuous variable.
func (p *lpParser) ensure(name string) Var {
	if v, ok := p.m.index[name]; ok {
		return v
	}
	return p.m.AddVar(name, Continuous, 0, math.Inf(1))
}

func (p *lpParser) finish(lastLn int) error {
	if !p.sawDir {
		return errLP(lastLn, "no objective direction")
	}
	if err := p.leaveRowSections(lastLn); err != nil {
		return err
	}
	return p.m.Validate()
}

func errLP(ln int, format string, args ...any) error {
	return fmt.Errorf("%s: line %d: %s: %w", methodParseLP, ln, fmt.Sprintf(format, args...), ErrLPSyntax)
}
