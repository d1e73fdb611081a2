// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a row-major buffer of ring elements with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based submatrix extraction (Induced, Row, Col).
//
// AI-Hints:
//   - Algorithms work on private copies obtained through toDense and use the
//     unchecked at/set helpers; public accessors are for callers.
//   - Elements are immutable domain values, so copying the buffer is a deep
//     copy for every practical purpose.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Induced: O(r'*c').

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/symla/ring"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"      // method tag used in error wrappers
	ctxSet    = "Set"     // method tag used in error wrappers
	ctxInduce = "Induced" // ctor/tag for Dense.Induced
	ctxRow    = "Row"     // ctor/tag for Dense.Row
	ctxCol    = "Col"     // ctor/tag for Dense.Col
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Notes:
//   - Keep tags in constants for grep-ability and consistency.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix over a ring domain.
//   - r,c hold dimensions (rows, cols); zero is allowed.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - dom supplies arithmetic and the default zero oracle.
type Dense[E any] struct {
	r, c int
	data []E
	dom  ring.Domain[E]
}

// NewDense creates an r×c zero matrix over dom.
// Implementation:
//   - Stage 1: validate rows>=0 && cols>=0; else ErrBadShape.
//   - Stage 2: allocate and fill with dom.Zero().
//
// Errors:
//   - ErrBadShape (negative sizes).
//
// Notes:
//   - A nil domain is a programmer error and panics on first use.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense[E any](dom ring.Domain[E], rows, cols int) (*Dense[E], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return newDense(dom, rows, cols), nil
}

// newDense is the internal zero-filled constructor; sizes are trusted.
func newDense[E any](dom ring.Domain[E], rows, cols int) *Dense[E] {
	buf := make([]E, rows*cols)
	for k := range buf {
		buf[k] = dom.Zero()
	}

	return &Dense[E]{r: rows, c: cols, data: buf, dom: dom}
}

// Rows returns the row count. No side effects.
func (m *Dense[E]) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *Dense[E]) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense[E]) Shape() (rows, cols int) { return m.r, m.c }

// Ring returns the coefficient domain.
func (m *Dense[E]) Ring() ring.Domain[E] { return m.dom }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense[E]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns sentinel error.
func (m *Dense[E]) At(row, col int) (E, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		var zero E
		return zero, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
func (m *Dense[E]) Set(row, col int, v E) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Clone returns an independent copy with the same shape and domain.
// The dynamic type of the result is *Dense[E].
func (m *Dense[E]) Clone() Matrix[E] { return m.dup() }

// Copy is Clone with a concrete result type.
func (m *Dense[E]) Copy() *Dense[E] { return m.dup() }

// String renders the matrix rows as lines using the domain formatter.
// A matrix without rows renders as the empty string.
func (m *Dense[E]) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(m.dom.Format(m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Induced materializes a copy submatrix using explicit index sets.
// Duplicates in index sets are allowed (repeated rows/cols in the result).
//
// Errors:
//   - ErrOutOfRange (index outside bounds).
//
// Complexity:
//   - Time O(len(rowsIdx)*len(colsIdx)).
func (m *Dense[E]) Induced(rowsIdx, colsIdx []int) (*Dense[E], error) {
	for _, i := range rowsIdx {
		if i < 0 || i >= m.r {
			return nil, denseErrorf(ctxInduce, i, 0, ErrOutOfRange)
		}
	}
	for _, j := range colsIdx {
		if j < 0 || j >= m.c {
			return nil, denseErrorf(ctxInduce, 0, j, ErrOutOfRange)
		}
	}

	return m.extract(rowsIdx, colsIdx), nil
}

// Row returns row i as a 1×cols matrix.
func (m *Dense[E]) Row(i int) (*Dense[E], error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.rowMat(i), nil
}

// Col returns column j as a rows×1 matrix.
func (m *Dense[E]) Col(j int) (*Dense[E], error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}

	return m.colMat(j), nil
}

// Values returns a row-major copy of the entries.
func (m *Dense[E]) Values() []E {
	out := make([]E, len(m.data))
	copy(out, m.data)

	return out
}

// ---------- unchecked internals (indices trusted) ----------

func (m *Dense[E]) at(i, j int) E     { return m.data[i*m.c+j] }
func (m *Dense[E]) set(i, j int, v E) { m.data[i*m.c+j] = v }

func (m *Dense[E]) dup() *Dense[E] {
	cp := make([]E, len(m.data))
	copy(cp, m.data)

	return &Dense[E]{r: m.r, c: m.c, data: cp, dom: m.dom}
}

// colSlice copies column j from row r0 downwards.
func (m *Dense[E]) colSlice(j, r0 int) []E {
	out := make([]E, 0, m.r-r0)
	for i := r0; i < m.r; i++ {
		out = append(out, m.at(i, j))
	}

	return out
}

func (m *Dense[E]) swapRows(i, k int) {
	if i == k {
		return
	}
	ri := m.data[i*m.c : (i+1)*m.c]
	rk := m.data[k*m.c : (k+1)*m.c]
	for j := range ri {
		ri[j], rk[j] = rk[j], ri[j]
	}
}

// swapRowRange exchanges m[i, c0:c1] and m[k, c0:c1].
func (m *Dense[E]) swapRowRange(i, k, c0, c1 int) {
	for j := c0; j < c1; j++ {
		a, b := m.at(i, j), m.at(k, j)
		m.set(i, j, b)
		m.set(k, j, a)
	}
}

func (m *Dense[E]) extract(rowsIdx, colsIdx []int) *Dense[E] {
	out := &Dense[E]{r: len(rowsIdx), c: len(colsIdx), data: make([]E, len(rowsIdx)*len(colsIdx)), dom: m.dom}
	for a, i := range rowsIdx {
		for b, j := range colsIdx {
			out.data[a*out.c+b] = m.at(i, j)
		}
	}

	return out
}

// block copies the half-open window [r0,r1)×[c0,c1).
func (m *Dense[E]) block(r0, r1, c0, c1 int) *Dense[E] {
	return m.extract(span(r0, r1), span(c0, c1))
}

func (m *Dense[E]) rowMat(i int) *Dense[E] { return m.block(i, i+1, 0, m.c) }
func (m *Dense[E]) colMat(j int) *Dense[E] { return m.block(0, m.r, j, j+1) }

// columns splits m into its column vectors.
func (m *Dense[E]) columns() []*Dense[E] {
	out := make([]*Dense[E], m.c)
	for j := range out {
		out[j] = m.colMat(j)
	}

	return out
}

// span returns [lo, lo+1, ..., hi-1].
func span(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	out := make([]int, hi-lo)
	for k := range out {
		out[k] = lo + k
	}

	return out
}

// toDense returns a private working copy of m.
// *Dense inputs are copied directly; other implementations go through At.
func toDense[E any](m Matrix[E]) (*Dense[E], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense[E]); ok {
		return d.dup(), nil
	}
	out := newDense(m.Ring(), m.Rows(), m.Cols())
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out.set(i, j, v)
		}
	}

	return out, nil
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix[int]  = (*Dense[int])(nil)
	_ fmt.Stringer = (*Dense[int])(nil)
)
