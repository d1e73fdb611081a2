// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/symla/ring"
)

// Det returns the determinant of a square matrix.
//
// Implementation:
//   - DetBareiss (default): fraction-free elimination; the pivot of each
//     stage is the first entry that is not zero after full expansion.
//   - DetBerkowitz: last entry of the Berkowitz vector times (−1)^n; no
//     division and no zero test at all.
//   - DetLU: product of the diagonal of LUDecompositionSimple, negated for
//     an odd number of row swaps.
//
// Behavior highlights:
//   - The 0×0 determinant is One; orders 1 to 3 use the closed-form
//     expansion whatever the method.
//   - The result is passed through the simplifier, so all three methods
//     return identical values on canonicalizing domains.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
func Det[E any](m Matrix[E], opts ...Option) (E, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		var zero E
		return zero, matrixErrorf(opDet, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		var zero E
		return zero, matrixErrorf(opDet, err)
	}

	return e.det(d), nil
}

// det dispatches on the configured method; m must be square.
// Orders up to 3 use the explicit expansion and never search for a pivot.
func (e *engine[E]) det(m *Dense[E]) E {
	var v E
	switch {
	case m.r == 0:
		return e.dom.One()
	case m.r <= 3:
		v = e.detClosed(m)
	default:
		switch e.o.detMethod {
		case DetBerkowitz:
			v = e.detBerkowitz(m)
		case DetLU:
			v = e.detLU(m)
		default:
			v = e.detBareiss(m)
		}
	}

	return e.simplify(v)
}

// detClosed expands the determinant of a 1×1, 2×2 or 3×3 matrix.
func (e *engine[E]) detClosed(m *Dense[E]) E {
	dom := e.dom
	a := m.at
	switch m.r {
	case 1:
		return a(0, 0)
	case 2:
		return dom.Sub(dom.Mul(a(0, 0), a(1, 1)), dom.Mul(a(0, 1), a(1, 0)))
	}
	prod := func(i, j, k int) E {
		return dom.Mul(dom.Mul(a(0, i), a(1, j)), a(2, k))
	}
	pos := dom.Add(dom.Add(prod(0, 1, 2), prod(1, 2, 0)), prod(2, 0, 1))
	neg := dom.Add(dom.Add(prod(2, 1, 0), prod(0, 2, 1)), prod(1, 0, 2))

	return dom.Sub(pos, neg)
}

// detBareiss is the iterative form of Bareiss' fraction-free algorithm.
// Complexity: O(n³) ring operations, every entry simplified once per stage.
func (e *engine[E]) detBareiss(m *Dense[E]) E {
	dom := e.dom
	if m.r == 0 {
		return dom.One()
	}
	negate := false
	cumm := dom.One()
	mat := m
	for stage := 0; ; stage++ {
		if mat.r == 1 {
			if negate {
				return dom.Neg(mat.at(0, 0))
			}
			return mat.at(0, 0)
		}
		p := e.findPivotNaive(mat.colSlice(0, 0), e.expandIsZero, false)
		if !p.Found() {
			return dom.Zero()
		}
		e.notePivot(opDet, stage, p)
		if p.Offset%2 == 1 {
			negate = !negate
		}
		pos, pv := p.Offset, p.Value
		rows := make([]int, 0, mat.r-1)
		for i := 0; i < mat.r; i++ {
			if i != pos {
				rows = append(rows, i)
			}
		}
		tmp := mat.extract(rows, span(0, mat.c))
		next := newDense(dom, mat.r-1, mat.c-1)
		for i := 0; i < next.r; i++ {
			for j := 0; j < next.c; j++ {
				num := dom.Sub(dom.Mul(pv, tmp.at(i, j+1)), dom.Mul(mat.at(pos, j+1), tmp.at(i, 0)))
				next.set(i, j, e.simplify(dom.Div(num, cumm)))
			}
		}
		cumm = pv
		mat = next
	}
}

// detBerkowitz returns (−1)^(len−1)·last of the Berkowitz vector.
func (e *engine[E]) detBerkowitz(m *Dense[E]) E {
	if m.r == 0 {
		return e.dom.One()
	}
	vec := e.berkowitz(m)
	last := vec[len(vec)-1]
	if (len(vec)-1)%2 == 1 {
		return e.dom.Neg(last)
	}

	return last
}

// detLU multiplies the diagonal of the compact LU factorization.
func (e *engine[E]) detLU(m *Dense[E]) E {
	dom := e.dom
	if m.r == 0 {
		return dom.One()
	}
	lu, swaps, _ := e.luSimple(m, false)
	n := lu.r
	if e.provablyZero(lu.at(n-1, n-1)) {
		return dom.Zero()
	}
	det := dom.One()
	if len(swaps)%2 == 1 {
		det = dom.Neg(det)
	}
	for k := 0; k < n; k++ {
		det = dom.Mul(det, lu.at(k, k))
	}

	return det
}

// BerkowitzVector returns the coefficients of det(λI − m), leading first,
// computed with Berkowitz' division-free algorithm. The 0×0 matrix yields [1].
func BerkowitzVector[E any](m Matrix[E]) ([]E, error) {
	e, d, err := engineFor(m, nil)
	if err != nil {
		return nil, matrixErrorf("BerkowitzVector", err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf("BerkowitzVector", err)
	}

	return e.berkowitz(d), nil
}

// berkowitz builds the vector bottom-up over the trailing principal
// submatrices m[k:, k:], multiplying by one Toeplitz factor per step.
//
// Implementation:
//   - Stage 1: start from [1, −m[n−1,n−1]].
//   - Stage 2: for k = n−2..0 with s = n−k, split the trailing block into
//     a = m[k,k], row R, column C and block A; the Toeplitz diagonals are
//     1, −a, −R·C, −R·A·C, …, −R·A^(s−2)·C.
//   - Stage 3: vec ← T·vec where T is the (s+1)×s lower Toeplitz matrix.
//
// Complexity: O(n⁴) ring operations.
func (e *engine[E]) berkowitz(m *Dense[E]) []E {
	dom := e.dom
	n := m.r
	if n == 0 {
		return []E{dom.One()}
	}
	vec := []E{dom.One(), dom.Neg(m.at(n-1, n-1))}
	for k := n - 2; k >= 0; k-- {
		s := n - k
		a := m.at(k, k)
		R := m.block(k, k+1, k+1, n)
		C := m.block(k+1, n, k, k+1)
		A := m.block(k+1, n, k+1, n)
		negR := neg(R)

		diags := make([]E, 0, s+1)
		diags = append(diags, dom.One(), dom.Neg(a))
		cur := C
		for t := 0; t < s-1; t++ {
			if t > 0 {
				cur = mul(A, cur)
			}
			diags = append(diags, mul(negR, cur).at(0, 0))
		}

		next := make([]E, s+1)
		for i := 0; i <= s; i++ {
			acc := dom.Zero()
			for j := 0; j <= i && j < s; j++ {
				acc = dom.Add(acc, dom.Mul(diags[i-j], vec[j]))
			}
			next[i] = acc
		}
		vec = next
	}

	return vec
}

// Minor returns the determinant of m with row i and column j removed.
// Errors: ErrNonSquare, ErrOutOfRange.
func Minor[E any](m Matrix[E], i, j int, opts ...Option) (E, error) {
	var zero E
	e, d, err := engineFor(m, opts)
	if err != nil {
		return zero, matrixErrorf(opMinor, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return zero, matrixErrorf(opMinor, err)
	}
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		return zero, matrixErrorf(opMinor, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}

	return e.minor(d, i, j), nil
}

// Cofactor returns (−1)^(i+j)·Minor(m, i, j).
func Cofactor[E any](m Matrix[E], i, j int, opts ...Option) (E, error) {
	v, err := Minor(m, i, j, opts...)
	if err != nil {
		var zero E
		return zero, matrixErrorf(opCofactor, err)
	}
	if (i+j)%2 == 1 {
		return m.Ring().Neg(v), nil
	}

	return v, nil
}

// CofactorMatrix returns the matrix of all cofactors.
func CofactorMatrix[E any](m Matrix[E], opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf("CofactorMatrix", err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf("CofactorMatrix", err)
	}

	return e.cofactorMatrix(d), nil
}

// Adjugate returns the transpose of the cofactor matrix.
func Adjugate[E any](m Matrix[E], opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opAdjugate, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf(opAdjugate, err)
	}

	return transpose(e.cofactorMatrix(d)), nil
}

func (e *engine[E]) minor(m *Dense[E], i, j int) E {
	return e.det(m.extract(without(m.r, i), without(m.c, j)))
}

func (e *engine[E]) cofactorMatrix(m *Dense[E]) *Dense[E] {
	out := newDense(e.dom, m.r, m.c)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			v := e.minor(m, i, j)
			if (i+j)%2 == 1 {
				v = e.dom.Neg(v)
			}
			out.set(i, j, v)
		}
	}

	return out
}

// without returns [0, n) minus k.
func without(n, k int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != k {
			out = append(out, i)
		}
	}

	return out
}

// detIsZero decides det == 0 for inverse ADJ: the Berkowitz determinant is
// tested with the strongest proof available; when that is undecided the
// diagonal of the reduced row echelon form is inspected instead.
func (e *engine[E]) detIsZero(m *Dense[E]) (E, bool) {
	d := e.with(func(o *Options) { o.detMethod = DetBerkowitz }).det(m)
	switch e.equalsZero(d) {
	case ring.True:
		return d, true
	case ring.False:
		return d, false
	}

	return d, e.rrefDiagonalHasZero(m)
}

// rrefDiagonalHasZero reports whether some diagonal entry of rref(m) is
// provably zero.
func (e *engine[E]) rrefDiagonalHasZero(m *Dense[E]) bool {
	r := e.with(func(o *Options) { o.intermediateSimplify = true }).rref(m)
	for j := 0; j < r.m.r && j < r.m.c; j++ {
		if e.provablyZero(r.m.at(j, j)) {
			return true
		}
	}

	return false
}
