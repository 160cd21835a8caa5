// SPDX-License-Identifier: MIT
// Package: optmath/model
//
// writer.go - CPLEX-style LP emission.
//
// Determinism contract: variables appear in declaration order, constraints
// in insertion order, terms in insertion order; equal models produce
// byte-identical text on every platform.
//
// Dialect:
//   - section keywords at column 0: Maximize|Minimize, Subject To, Bounds,
//     Binaries, Generals, End;
//   - one row per line, "name: terms sense rhs", every token
//     space-separated; coefficient 1 is omitted, zero terms are skipped;
//   - at most one quadratic block per row, "[ c a ^ 2 + c a * b ]", appended
//     after the linear terms;
//   - Bounds lines only for non-default bounds; binaries are implicit [0,1].

package model

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// WriteLP emits the model as LP text. The output ends with "End" and a
// newline. Callers wanting comment headers write their own "\ ..." lines
// before calling.
func (m *Model) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(m.dir.String())
	bw.WriteString("\n obj:")
	if body := m.renderExpr(m.obj, nil); body != "" {
		bw.WriteByte(' ')
		bw.WriteString(body)
	}
	bw.WriteString("\nSubject To\n")

	for i := range m.constrs {
		c := &m.constrs[i]
		bw.WriteByte(' ')
		bw.WriteString(c.Name)
		bw.WriteByte(':')
		if body := m.renderExpr(c.Terms, c.Quad); body != "" {
			bw.WriteByte(' ')
			bw.WriteString(body)
		}
		bw.WriteByte(' ')
		bw.WriteString(c.Sense.String())
		bw.WriteByte(' ')
		bw.WriteString(fmtNum(c.RHS))
		bw.WriteByte('\n')
	}

	var bounds []string
	for _, d := range m.vars {
		if d.Type == Binary {
			continue
		}
		if line := boundLine(d); line != "" {
			bounds = append(bounds, line)
		}
	}
	if len(bounds) > 0 {
		bw.WriteString("Bounds\n")
		for _, line := range bounds {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}

	m.writeNameSection(bw, "Binaries", Binary)
	m.writeNameSection(bw, "Generals", Integer)

	bw.WriteString("End\n")
	return bw.Flush()
}

func (m *Model) writeNameSection(bw *bufio.Writer, title string, t VarType) {
	var names []string
	for _, d := range m.vars {
		if d.Type == t {
			names = append(names, d.Name)
		}
	}
	if len(names) == 0 {
		return
	}
	bw.WriteString(title)
	bw.WriteString("\n ")
	bw.WriteString(strings.Join(names, " "))
	bw.WriteByte('\n')
}

// renderExpr renders linear terms followed by the optional quadratic block.
// Zero-coefficient terms are dropped; a block with only zero terms is
// dropped whole.
func (m *Model) renderExpr(terms []Term, quad []QuadTerm) string {
	var b strings.Builder
	first := true
	for _, t := range terms {
		if t.Coef == 0 {
			continue
		}
		writeSigned(&b, &first, t.Coef, m.vars[t.V].Name)
	}

	live := false
	for _, q := range quad {
		if q.Coef != 0 {
			live = true
			break
		}
	}
	if live {
		if !first {
			b.WriteString(" + ")
		}
		b.WriteString("[ ")
		qfirst := true
		for _, q := range quad {
			if q.Coef == 0 {
				continue
			}
			atom := m.vars[q.A].Name + " ^ 2"
			if q.A != q.B {
				atom = m.vars[q.A].Name + " * " + m.vars[q.B].Name
			}
			writeSigned(&b, &qfirst, q.Coef, atom)
		}
		b.WriteString(" ]")
	}
	return b.String()
}

// writeSigned appends one signed term, omitting unit coefficients.
func writeSigned(b *strings.Builder, first *bool, coef float64, atom string) {
	neg := math.Signbit(coef)
	switch {
	case *first && neg:
		b.WriteString("- ")
	case !*first && neg:
		b.WriteString(" - ")
	case !*first:
		b.WriteString(" + ")
	}
	*first = false
	if abs := math.Abs(coef); abs != 1 {
		b.WriteString(fmtNum(abs))
		b.WriteByte(' ')
	}
	b.WriteString(atom)
}

// boundLine renders one Bounds row, or "" when the default [0, +inf) holds.
func boundLine(d VarDef) string {
	posInf := math.IsInf(d.Hi, 1)
	negInf := math.IsInf(d.Lo, -1)
	switch {
	case d.Lo == 0 && posInf:
		return ""
	case negInf && posInf:
		return " " + d.Name + " free"
	case d.Lo == d.Hi:
		return " " + d.Name + " = " + fmtNum(d.Lo)
	case posInf:
		return " " + d.Name + " >= " + fmtNum(d.Lo)
	case d.Lo == 0:
		return " " + d.Name + " <= " + fmtNum(d.Hi)
	default:
		return " " + fmtNum(d.Lo) + " <= " + d.Name + " <= " + fmtNum(d.Hi)
	}
}

// fmtNum renders the shortest round-tripping decimal form.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
