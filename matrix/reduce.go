// SPDX-License-Identifier: MIT

package matrix

import (
	"sort"

	"github.com/katalvlaran/symla/ring"
)

// reduction is the outcome of rowReduce.
type reduction[E any] struct {
	m      *Dense[E]
	pivots []int
	swaps  []Swap
}

// rowReduce performs fraction-free Gaussian elimination in place on m.
//
// Implementation:
//   - Stage 1: for each column, search a pivot among the rows not yet used
//     (findPivot) and write back newly determined entries.
//   - Stage 2: swap the pivot into place; when normalizeLast is false,
//     divide the pivot row by the pivot immediately.
//   - Stage 3: for every other row (only rows below when zeroAbove is false)
//     whose entry is not provably zero: row = pivot·row − val·pivotRow.
//   - Stage 4: when normalizeLast and normalize, divide each pivot row by
//     its pivot at the end.
//
// Complexity:
//   - O(r·c·min(r,c)) ring operations plus O(r·c) oracle calls.
func (e *engine[E]) rowReduce(op string, m *Dense[E], normalize, zeroAbove bool) reduction[E] {
	dom := e.dom
	rows, cols := m.r, m.c
	normalizeLast := e.o.normalizeLast
	var pivots []int
	var swaps []Swap

	crossCancel := func(a E, i int, b E, j int) {
		for k := 0; k < cols; k++ {
			m.set(i, k, e.step(dom.Sub(dom.Mul(a, m.at(i, k)), dom.Mul(b, m.at(j, k)))))
		}
	}
	divideRow := func(i, j int, by E) {
		m.set(i, j, dom.One())
		for k := j + 1; k < cols; k++ {
			m.set(i, k, e.step(dom.Div(m.at(i, k), by)))
		}
	}

	pivRow, pivCol := 0, 0
	for pivCol < cols && pivRow < rows {
		p := e.findPivot(m.colSlice(pivCol, pivRow))
		for _, nd := range p.Newly {
			m.set(pivRow+nd.Index, pivCol, nd.Value)
		}
		if !p.Found() {
			pivCol++
			continue
		}
		e.notePivot(op, pivCol, p)
		pivots = append(pivots, pivCol)
		if p.Offset != 0 {
			m.swapRows(pivRow, pivRow+p.Offset)
			swaps = append(swaps, Swap{I: pivRow, J: pivRow + p.Offset})
		}

		pivotVal := p.Value
		if !normalizeLast {
			divideRow(pivRow, pivCol, pivotVal)
			pivotVal = dom.One()
		}

		for row := 0; row < rows; row++ {
			if row == pivRow || (!zeroAbove && row < pivRow) {
				continue
			}
			val := m.at(row, pivCol)
			if e.provablyZero(val) {
				continue
			}
			crossCancel(pivotVal, row, val, pivRow)
		}
		pivRow++
	}

	if normalizeLast && normalize {
		for i, j := range pivots {
			divideRow(i, j, m.at(i, j))
		}
	}

	return reduction[E]{m: m, pivots: pivots, swaps: swaps}
}

// echelon computes a (non-normalized) row echelon form of a copy of m.
func (e *engine[E]) echelon(m *Dense[E]) reduction[E] {
	return e.with(func(o *Options) { o.normalizeLast = true }).rowReduce(opEchelon, m.dup(), false, false)
}

// rref computes the reduced row echelon form of a copy of m.
func (e *engine[E]) rref(m *Dense[E]) reduction[E] {
	return e.rowReduce(opRREF, m.dup(), true, true)
}

// EchelonForm returns a row echelon form of m together with its pivot
// columns. The form is not normalized (pivots are not scaled to 1).
func EchelonForm[E any](m Matrix[E], opts ...Option) (*Dense[E], []int, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opEchelon, err)
	}
	r := e.echelon(d)

	return r.m, r.pivots, nil
}

// RREF returns the reduced row echelon form of m and its pivot columns.
//
// Behavior highlights:
//   - Pivot rows are scaled so that every pivot equals the domain's One and
//     every other entry of a pivot column is zero.
//   - WithNormalizeLast(false) scales pivot rows as soon as they are chosen;
//     the result is the same, the intermediate expressions differ.
//   - RREF is idempotent over exact domains.
func RREF[E any](m Matrix[E], opts ...Option) (*Dense[E], []int, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opRREF, err)
	}
	r := e.rref(d)

	return r.m, r.pivots, nil
}

// Rank returns the rank of m.
//
// Implementation:
//   - Stage 1: empty shapes have rank 0; single rows/columns have rank 1 as
//     soon as one entry is provably non-zero.
//   - Stage 2: 2×2 matrices are decided from the entries and the determinant
//     when possible.
//   - Stage 3: otherwise columns are reordered by complexity (undecided
//     entries last) and the pivots of an echelon form are counted.
func Rank[E any](m Matrix[E], opts ...Option) (int, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	return e.rank(d), nil
}

func (e *engine[E]) rank(m *Dense[E]) int {
	if m.r <= 0 || m.c <= 0 {
		return 0
	}
	if m.r <= 1 || m.c <= 1 {
		for _, x := range m.data {
			if e.isZero(x) == ring.False {
				return 1
			}
		}
	}
	if m.r == 2 && m.c == 2 {
		anyFalse, anyUnknown := false, false
		for _, x := range m.data {
			switch e.isZero(x) {
			case ring.False:
				anyFalse = true
			case ring.Unknown:
				anyUnknown = true
			}
		}
		if !anyFalse && !anyUnknown {
			return 0
		}
		d := e.dom.Sub(e.dom.Mul(m.at(0, 0), m.at(1, 1)), e.dom.Mul(m.at(0, 1), m.at(1, 0)))
		dz := e.isZero(d)
		if dz == ring.True && anyFalse {
			return 1
		}
		if dz == ring.False {
			return 2
		}
	}
	permuted, _ := e.permuteComplexityRight(m)

	return len(e.echelon(permuted).pivots)
}

// PermuteComplexityRight reorders the columns of m by ascending number of
// entries whose zero-ness is undecided (stable). It returns the permuted
// matrix and perm, where column j of the result is column perm[j] of m.
func PermuteComplexityRight[E any](m Matrix[E], opts ...Option) (*Dense[E], []int, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf("PermuteComplexityRight", err)
	}
	out, perm := e.permuteComplexityRight(d)

	return out, perm, nil
}

func (e *engine[E]) permuteComplexityRight(m *Dense[E]) (*Dense[E], []int) {
	complexity := make([]int, m.c)
	for j := 0; j < m.c; j++ {
		for i := 0; i < m.r; i++ {
			if e.isZero(m.at(i, j)) == ring.Unknown {
				complexity[j]++
			}
		}
	}
	perm := span(0, m.c)
	sort.SliceStable(perm, func(a, b int) bool { return complexity[perm[a]] < complexity[perm[b]] })

	return m.extract(span(0, m.r), perm), perm
}
