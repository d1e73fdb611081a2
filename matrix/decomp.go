// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/symla/ring"
)

// LUDecompositionSimple returns the compact Doolittle factorization of m:
// one matrix holding the strictly lower part of L (unit diagonal implied)
// and U, plus the row swaps performed.
//
// Implementation:
//   - Stage 1: for each pivot row, search the current column with the naive
//     pivot strategy; all-zero columns advance the column only.
//   - Stage 2: a swap exchanges the already computed L part (columns left
//     of the pivot row) and the U part (columns from the pivot column on).
//   - Stage 3: the multipliers lu[row,pc]/lu[pr,pc] are stored in column pr
//     and the trailing entries of each row below are updated.
//   - Stage 4: when the pivot column runs ahead of the pivot row (rank
//     deficiency), the entries below the pivot are set to zero.
//
// Behavior highlights:
//   - Works for any shape; empty shapes return a zero matrix and no swaps.
//   - WithRankCheck(true) fails with ErrRankDeficient as soon as a column
//     without pivot is met, or when the last diagonal entry is zero.
//   - WithPivotSimplify(true) lets the pivot search simplify undecided entries.
//
// Complexity: O(r·c·min(r,c)) ring operations.
func LUDecompositionSimple[E any](m Matrix[E], opts ...Option) (*Dense[E], []Swap, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opLUSimple, err)
	}
	lu, swaps, err := e.luSimple(d, e.o.rankCheck)
	if err != nil {
		return nil, nil, matrixErrorf(opLUSimple, err)
	}

	return lu, swaps, nil
}

func (e *engine[E]) luSimple(m *Dense[E], rankCheck bool) (*Dense[E], []Swap, error) {
	dom := e.dom
	if m.r == 0 || m.c == 0 {
		return newDense(dom, m.r, m.c), nil, nil
	}
	lu := m.dup()
	var swaps []Swap
	pivotCol := 0
	for pivotRow := 0; pivotRow < lu.r-1; pivotRow++ {
		var p PivotResult[E]
		zeroPivot := true
		for pivotCol != lu.c && zeroPivot {
			p = e.findPivotNaive(lu.colSlice(pivotCol, pivotRow), e.isZero, e.o.pivotSimplify)
			zeroPivot = !p.Found()
			if zeroPivot {
				pivotCol++
			}
		}
		if rankCheck && pivotCol != pivotRow {
			e.log.Debug("rank check failed",
				zap.String("op", opLUSimple),
				zap.Int("row", pivotRow),
				zap.Int("column", pivotCol),
			)
			return nil, nil, ErrRankDeficient
		}
		if zeroPivot {
			return lu, swaps, nil
		}
		for _, nd := range p.Newly {
			lu.set(pivotRow+nd.Index, pivotCol, nd.Value)
		}
		e.notePivot(opLUSimple, pivotCol, p)

		if cand := pivotRow + p.Offset; cand != pivotRow {
			swaps = append(swaps, Swap{I: pivotRow, J: cand})
			lu.swapRowRange(pivotRow, cand, 0, pivotRow)
			lu.swapRowRange(pivotRow, cand, pivotCol, lu.c)
		}

		for row := pivotRow + 1; row < lu.r; row++ {
			lu.set(row, pivotRow, e.step(dom.Div(lu.at(row, pivotCol), lu.at(pivotRow, pivotCol))))
			for c := pivotCol + 1; c < lu.c; c++ {
				lu.set(row, c, e.step(dom.Sub(lu.at(row, c), dom.Mul(lu.at(row, pivotRow), lu.at(pivotRow, c)))))
			}
		}
		if pivotRow != pivotCol {
			for row := pivotRow + 1; row < lu.r; row++ {
				lu.set(row, pivotCol, dom.Zero())
			}
		}
		pivotCol++
		if pivotCol == lu.c {
			return lu, swaps, nil
		}
	}
	if rankCheck {
		k := min(lu.r, lu.c) - 1
		if e.provablyZero(lu.at(k, k)) {
			return nil, nil, ErrRankDeficient
		}
	}

	return lu, swaps, nil
}

// LUDecomposition expands LUDecompositionSimple into L (rows×rows, unit
// lower triangular), U (rows×cols, upper triangular) and the swaps, so that
// PermutationMatrix(swaps)·m = L·U.
func LUDecomposition[E any](m Matrix[E], opts ...Option) (L, U *Dense[E], swaps []Swap, err error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	lu, swaps, err := e.luSimple(d, e.o.rankCheck)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opLU, err)
	}
	L, U = splitLU(lu)

	return L, U, swaps, nil
}

func splitLU[E any](lu *Dense[E]) (*Dense[E], *Dense[E]) {
	dom := lu.dom
	L := newDense(dom, lu.r, lu.r)
	for i := 0; i < lu.r; i++ {
		for j := 0; j <= i; j++ {
			switch {
			case i == j:
				L.set(i, j, dom.One())
			case j < lu.c:
				L.set(i, j, lu.at(i, j))
			}
		}
	}
	U := newDense(dom, lu.r, lu.c)
	for i := 0; i < lu.r; i++ {
		for j := i; j < lu.c; j++ {
			U.set(i, j, lu.at(i, j))
		}
	}

	return L, U
}

// LUDecompositionFF returns the fraction-free factorization P·m = L·D⁻¹·U.
//
// Implementation:
//   - Stage 1: for k = 0..n−2, swap in a row with a non-zero entry in column
//     k when U[k,k] is zero (ErrRankDeficient when none exists).
//   - Stage 2: L[k,k] = U[k,k], D[k,k] = oldpivot·U[k,k]; the rows below
//     are updated with U[i,j] = (U[k,k]·U[i,j] − U[k,j]·U[i,k]) / oldpivot.
//   - Stage 3: D[n−1,n−1] = the last pivot.
//
// Errors: ErrRankDeficient; ErrDimensionMismatch when cols < rows−1.
func LUDecompositionFF[E any](m Matrix[E], opts ...Option) (P, L, D, U *Dense[E], err error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, nil, nil, matrixErrorf(opLUFF, err)
	}
	n, c := d.r, d.c
	dom := e.dom
	if n == 0 {
		return identity(dom, 0), identity(dom, 0), identity(dom, 0), d, nil
	}
	if c < n-1 {
		return nil, nil, nil, nil, matrixErrorf(opLUFF, ErrDimensionMismatch)
	}
	U = d
	L = identity(dom, n)
	P = identity(dom, n)
	D = newDense(dom, n, n)
	oldPivot := dom.One()
	for k := 0; k < n-1; k++ {
		if e.provablyZero(U.at(k, k)) {
			kp := -1
			for i := k + 1; i < n; i++ {
				if !e.provablyZero(U.at(i, k)) {
					kp = i
					break
				}
			}
			if kp < 0 {
				return nil, nil, nil, nil, matrixErrorf(opLUFF, ErrRankDeficient)
			}
			U.swapRowRange(k, kp, k, c)
			L.swapRowRange(k, kp, 0, k)
			P.swapRows(k, kp)
		}
		ukk := U.at(k, k)
		L.set(k, k, ukk)
		D.set(k, k, e.simplify(dom.Mul(oldPivot, ukk)))
		for i := k + 1; i < n; i++ {
			uik := U.at(i, k)
			L.set(i, k, uik)
			for j := k + 1; j < c; j++ {
				v := dom.Div(dom.Sub(dom.Mul(ukk, U.at(i, j)), dom.Mul(U.at(k, j), uik)), oldPivot)
				U.set(i, j, e.simplify(v))
			}
			U.set(i, k, dom.Zero())
		}
		oldPivot = ukk
	}
	D.set(n-1, n-1, oldPivot)

	return P, L, D, U, nil
}

// Cholesky returns lower triangular L with m = L·Lᴴ.
//
// Implementation:
//   - L[i,j] = (m[i,j] − Σₖ L[i,k]·conj(L[j,k])) / L[j,j] for j < i.
//   - L[i,i] = sqrt(m[i,i] − Σₖ L[i,k]·conj(L[i,k])).
//
// Behavior highlights:
//   - The input must be provably Hermitian (symmetric for real domains).
//   - Positive definiteness is not verified; a zero pivot that would be
//     divided by yields ErrSingular.
//
// Errors: ErrNonSquare, ErrNotHermitian, ErrSingular, ErrNotRepresentable.
func Cholesky[E any](m Matrix[E], opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	L, err := e.cholesky(d)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	return L, nil
}

func (e *engine[E]) cholesky(m *Dense[E]) (*Dense[E], error) {
	if err := ValidateSquare[E](m); err != nil {
		return nil, err
	}
	if e.isHermitian(m) != ring.True {
		return nil, ErrNotHermitian
	}
	dom := e.dom
	n := m.r
	L := newDense(dom, n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if e.provablyZero(L.at(j, j)) {
				return nil, fmt.Errorf("zero pivot at %d: %w", j, ErrSingular)
			}
			acc := m.at(i, j)
			for k := 0; k < j; k++ {
				acc = dom.Sub(acc, dom.Mul(L.at(i, k), e.conj(L.at(j, k))))
			}
			L.set(i, j, e.simplify(dom.Div(acc, L.at(j, j))))
		}
		acc := m.at(i, i)
		for k := 0; k < i; k++ {
			acc = dom.Sub(acc, dom.Mul(L.at(i, k), e.conj(L.at(i, k))))
		}
		lii, err := e.sqrt(acc)
		if err != nil {
			return nil, fmt.Errorf("sqrt of pivot %d: %w", i, err)
		}
		L.set(i, i, lii)
	}

	return L, nil
}

// LDLDecomposition returns unit lower triangular L and diagonal D with
// m = L·D·Lᴴ. No square roots are taken.
//
// Errors: ErrNonSquare, ErrNotHermitian, ErrSingular.
func LDLDecomposition[E any](m Matrix[E], opts ...Option) (L, D *Dense[E], err error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opLDL, err)
	}
	L, D, err = e.ldl(d)
	if err != nil {
		return nil, nil, matrixErrorf(opLDL, err)
	}

	return L, D, nil
}

func (e *engine[E]) ldl(m *Dense[E]) (*Dense[E], *Dense[E], error) {
	if err := ValidateSquare[E](m); err != nil {
		return nil, nil, err
	}
	if e.isHermitian(m) != ring.True {
		return nil, nil, ErrNotHermitian
	}
	dom := e.dom
	n := m.r
	L := identity(dom, n)
	D := newDense(dom, n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if e.provablyZero(D.at(j, j)) {
				return nil, nil, fmt.Errorf("zero pivot at %d: %w", j, ErrSingular)
			}
			acc := m.at(i, j)
			for k := 0; k < j; k++ {
				acc = dom.Sub(acc, dom.Mul(dom.Mul(L.at(i, k), e.conj(L.at(j, k))), D.at(k, k)))
			}
			L.set(i, j, e.simplify(dom.Div(acc, D.at(j, j))))
		}
		acc := m.at(i, i)
		for k := 0; k < i; k++ {
			acc = dom.Sub(acc, dom.Mul(dom.Mul(L.at(i, k), e.conj(L.at(i, k))), D.at(k, k)))
		}
		D.set(i, i, e.simplify(acc))
	}

	return L, D, nil
}

// QRDecomposition returns Q (rows×cols, orthonormal columns) and R
// (cols×cols, upper triangular) with m = Q·R, by classical Gram-Schmidt.
//
// Behavior highlights:
//   - Requires rows ≥ cols and full column rank (checked by counting the
//     provably zero rows of the reduced row echelon form).
//   - Every normalized column is re-checked to have unit norm; when the
//     oracle cannot confirm it the call fails with ErrMatrixNotImplemented.
//
// Errors: ErrDimensionMismatch, ErrRankDeficient, ErrNotRepresentable,
// ErrMatrixNotImplemented.
func QRDecomposition[E any](m Matrix[E], opts ...Option) (Q, R *Dense[E], err error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	Q, R, err = e.qr(d)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	return Q, R, nil
}

func (e *engine[E]) qr(m *Dense[E]) (*Dense[E], *Dense[E], error) {
	rows, cols := m.r, m.c
	if rows < cols {
		return nil, nil, fmt.Errorf("rows (%d) must be at least cols (%d): %w", rows, cols, ErrDimensionMismatch)
	}
	red := e.rref(m).m
	rank := rows
	for i := 0; i < red.r; i++ {
		if e.allZero(red.data[i*red.c:(i+1)*red.c]) == ring.True {
			rank--
		}
	}
	if rank != cols {
		return nil, nil, ErrRankDeficient
	}

	dom := e.dom
	Q := newDense(dom, rows, cols)
	R := newDense(dom, cols, cols)
	for j := 0; j < cols; j++ {
		tmp := m.colMat(j)
		for i := 0; i < j; i++ {
			acc := dom.Zero()
			for k := 0; k < rows; k++ {
				acc = dom.Add(acc, dom.Mul(e.conj(Q.at(k, i)), m.at(k, j)))
			}
			rij := e.simplify(acc)
			R.set(i, j, rij)
			for k := 0; k < rows; k++ {
				tmp.set(k, 0, dom.Sub(tmp.at(k, 0), dom.Mul(Q.at(k, i), rij)))
			}
		}
		tmp = e.simplifyAll(tmp)
		norm, err := e.norm(tmp)
		if err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", j, err)
		}
		if e.provablyZero(norm) {
			return nil, nil, ErrRankDeficient
		}
		R.set(j, j, norm)
		for k := 0; k < rows; k++ {
			Q.set(k, j, e.simplify(dom.Div(tmp.at(k, 0), norm)))
		}
		qn, err := e.norm(Q.colMat(j))
		if err != nil {
			return nil, nil, fmt.Errorf("column %d: %w", j, err)
		}
		if e.equalsZero(e.simplify(dom.Sub(qn, dom.One()))) != ring.True {
			return nil, nil, fmt.Errorf("could not normalize column %d: %w", j, ErrMatrixNotImplemented)
		}
	}

	return Q, R, nil
}

// norm returns the Euclidean norm sqrt(Σ x·conj(x)) of a vector.
func (e *engine[E]) norm(v *Dense[E]) (E, error) {
	acc := e.dom.Zero()
	for _, x := range v.data {
		acc = e.dom.Add(acc, e.dom.Mul(x, e.conj(x)))
	}

	return e.sqrt(acc)
}
