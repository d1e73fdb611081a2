// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, powers and stacking. All functions perform strict fail-fast
// validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical arithmetic kernels used across the package.
//   - Define operation tags and shared helpers for determinism and error reporting.
//
// Notes:
//   - Public functions accept Matrix[E] and never mutate it; internal kernels
//     (mul, add, sub, ...) work on *Dense and trust their inputs.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/symla/ring"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opMul        = "Mul"
	opTranspose  = "Transpose"
	opConjT      = "ConjugateTranspose"
	opScale      = "Scale"
	opPow        = "Pow"
	opHStack     = "HStack"
	opVStack     = "VStack"
	opEqual      = "Equal"
	opTrace      = "Trace"
	opInverse    = "Inverse"
	opSolve      = "Solve"
	opDet        = "Det"
	opRank       = "Rank"
	opRREF       = "RREF"
	opEchelon    = "EchelonForm"
	opNullspace  = "Nullspace"
	opColspace   = "Columnspace"
	opRowspace   = "Rowspace"
	opCharPoly   = "CharPoly"
	opMinor      = "Minor"
	opCofactor   = "Cofactor"
	opAdjugate   = "Adjugate"
	opLUSimple   = "LUDecompositionSimple"
	opLU         = "LUDecomposition"
	opLUFF       = "LUDecompositionFF"
	opCholesky   = "Cholesky"
	opLDL        = "LDLDecomposition"
	opQR         = "QRDecomposition"
	opLUSolve    = "LUSolve"
	opLowerSolve = "LowerTriangularSolve"
	opUpperSolve = "UpperTriangularSolve"
	opDiagSolve  = "DiagonalSolve"
	opGJSolve    = "GaussJordanSolve"
	opCHSolve    = "CholeskySolve"
	opLDLSolve   = "LDLSolve"
	opQRSolve    = "QRSolve"
	opPinv       = "Pinv"
	opPinvSolve  = "PinvSolve"
	opLstSq      = "SolveLeastSquares"
	opEigenvals  = "Eigenvals"
	opEigenvects = "Eigenvects"
	opIsDiag     = "IsDiagonalizable"
	opDiagonal   = "Diagonalize"
	opJordan     = "JordanForm"
	opNilpotent  = "IsNilpotent"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Inputs:
//   - tag: operation name/label (use package-level op* constants; no magic strings).
//   - err: underlying non-nil error to wrap.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// binary validates and copies two operands.
func binary[E any](a, b Matrix[E]) (*Dense[E], *Dense[E], error) {
	if err := ValidateBinary(a, b); err != nil {
		return nil, nil, err
	}
	da, err := toDense(a)
	if err != nil {
		return nil, nil, err
	}
	db, err := toDense(b)
	if err != nil {
		return nil, nil, err
	}

	return da, db, nil
}

// Add returns a + b element-wise.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add[E any](a, b Matrix[E]) (*Dense[E], error) {
	da, db, err := binary(a, b)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	if err = ValidateSameShape[E](da, db); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	return add(da, db), nil
}

// Sub returns a − b element-wise.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub[E any](a, b Matrix[E]) (*Dense[E], error) {
	da, db, err := binary(a, b)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	if err = ValidateSameShape[E](da, db); err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	return sub(da, db), nil
}

// Mul returns the matrix product a × b.
//
// Implementation:
//   - Stage 1: validate a.Cols == b.Rows.
//   - Stage 2: i→k→j accumulation; provably zero a[i,k] are skipped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c) ring operations, Space O(r*c).
func Mul[E any](a, b Matrix[E]) (*Dense[E], error) {
	da, db, err := binary(a, b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err = ValidateMulCompat[E](da, db); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return mul(da, db), nil
}

// Scale returns alpha·m.
func Scale[E any](m Matrix[E], alpha E) (*Dense[E], error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	return scale(d, alpha), nil
}

// Transpose returns mᵀ.
func Transpose[E any](m Matrix[E]) (*Dense[E], error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	return transpose(d), nil
}

// ConjugateTranspose returns mᴴ. Domains without conjugation yield mᵀ.
func ConjugateTranspose[E any](m Matrix[E]) (*Dense[E], error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opConjT, err)
	}

	return conjTranspose(d), nil
}

// Pow returns m^k for square m. k = 0 gives the identity; a negative k
// raises the inverse (computed with the configured inverse method).
//
// Errors: ErrNonSquare; ErrSingular for negative powers of singular input.
// Complexity: O(n³·log|k|).
func Pow[E any](m Matrix[E], k int, opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	if k < 0 {
		if d, err = e.inverse(d, e.o.inverseMethod); err != nil {
			return nil, matrixErrorf(opPow, err)
		}
		k = -k
	}

	return power(d, k), nil
}

// HStack concatenates matrices left to right. No arguments yields 0×0.
// Errors: ErrNilMatrix, ErrDimensionMismatch (row counts differ).
func HStack[E any](ms ...Matrix[E]) (*Dense[E], error) {
	ds, err := denseAll(ms)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	if len(ds) == 0 {
		return nil, matrixErrorf(opHStack, ErrBadShape)
	}
	for _, d := range ds[1:] {
		if d.r != ds[0].r {
			return nil, matrixErrorf(opHStack, ErrDimensionMismatch)
		}
	}

	return hstack(ds...), nil
}

// VStack concatenates matrices top to bottom.
// Errors: ErrNilMatrix, ErrDimensionMismatch (column counts differ).
func VStack[E any](ms ...Matrix[E]) (*Dense[E], error) {
	ds, err := denseAll(ms)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	if len(ds) == 0 {
		return nil, matrixErrorf(opVStack, ErrBadShape)
	}
	for _, d := range ds[1:] {
		if d.c != ds[0].c {
			return nil, matrixErrorf(opVStack, ErrDimensionMismatch)
		}
	}

	return vstack(ds...), nil
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace[E any](m Matrix[E]) (E, error) {
	d, err := toDense(m)
	if err != nil {
		var zero E
		return zero, matrixErrorf(opTrace, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		var zero E
		return zero, matrixErrorf(opTrace, err)
	}
	acc := d.dom.Zero()
	for i := 0; i < d.r; i++ {
		acc = d.dom.Add(acc, d.at(i, i))
	}

	return acc, nil
}

// Equal reports structural equality: same shape and dom.Equal entries.
func Equal[E any](a, b Matrix[E]) (bool, error) {
	da, db, err := binary(a, b)
	if err != nil {
		return false, matrixErrorf(opEqual, err)
	}
	if da.r != db.r || da.c != db.c {
		return false, nil
	}
	for k := range da.data {
		if !da.dom.Equal(da.data[k], db.data[k]) {
			return false, nil
		}
	}

	return true, nil
}

// EqualSimplified decides a == b entry-wise through the oracle applied to
// the simplified differences. Different shapes compare False.
func EqualSimplified[E any](a, b Matrix[E], opts ...Option) (ring.Ternary, error) {
	da, db, err := binary(a, b)
	if err != nil {
		return ring.Unknown, matrixErrorf(opEqual, err)
	}
	if da.r != db.r || da.c != db.c {
		return ring.False, nil
	}
	e := newEngine(da.dom, gatherOptions(opts...))
	res := ring.True
	for k := range da.data {
		res = res.And(e.equalsZero(e.simplify(da.dom.Sub(da.data[k], db.data[k]))))
		if res == ring.False {
			return res, nil
		}
	}

	return res, nil
}

// ---------- kernels (inputs trusted, results fresh) ----------

func add[E any](a, b *Dense[E]) *Dense[E] {
	out := &Dense[E]{r: a.r, c: a.c, data: make([]E, len(a.data)), dom: a.dom}
	for k := range a.data {
		out.data[k] = a.dom.Add(a.data[k], b.data[k])
	}

	return out
}

func sub[E any](a, b *Dense[E]) *Dense[E] {
	out := &Dense[E]{r: a.r, c: a.c, data: make([]E, len(a.data)), dom: a.dom}
	for k := range a.data {
		out.data[k] = a.dom.Sub(a.data[k], b.data[k])
	}

	return out
}

func mul[E any](a, b *Dense[E]) *Dense[E] {
	dom := a.dom
	res := newDense(dom, a.r, b.c)
	var rowA, rowB, rowR int
	for i := 0; i < a.r; i++ {
		rowA = i * a.c
		rowR = i * b.c
		for k := 0; k < a.c; k++ {
			av := a.data[rowA+k]
			if dom.IsZero(av) == ring.True {
				continue // skip zero for performance
			}
			rowB = k * b.c
			for j := 0; j < b.c; j++ {
				res.data[rowR+j] = dom.Add(res.data[rowR+j], dom.Mul(av, b.data[rowB+j]))
			}
		}
	}

	return res
}

func scale[E any](m *Dense[E], alpha E) *Dense[E] {
	return mapDense(m, func(x E) E { return m.dom.Mul(alpha, x) })
}

func divide[E any](m *Dense[E], by E) *Dense[E] {
	return mapDense(m, func(x E) E { return m.dom.Div(x, by) })
}

func transpose[E any](m *Dense[E]) *Dense[E] {
	out := &Dense[E]{r: m.c, c: m.r, data: make([]E, len(m.data)), dom: m.dom}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out
}

func conjTranspose[E any](m *Dense[E]) *Dense[E] {
	t := transpose(m)
	if c, ok := m.dom.(ring.Conjugator[E]); ok {
		for k := range t.data {
			t.data[k] = c.Conj(t.data[k])
		}
	}

	return t
}

// power is binary exponentiation; k >= 0.
func power[E any](m *Dense[E], k int) *Dense[E] {
	res := identity(m.dom, m.r)
	base := m
	for k > 0 {
		if k&1 == 1 {
			res = mul(res, base)
		}
		k >>= 1
		if k > 0 {
			base = mul(base, base)
		}
	}

	return res
}

func hstack[E any](ds ...*Dense[E]) *Dense[E] {
	r, c := ds[0].r, 0
	for _, d := range ds {
		c += d.c
	}
	out := &Dense[E]{r: r, c: c, data: make([]E, r*c), dom: ds[0].dom}
	c0 := 0
	for _, d := range ds {
		for i := 0; i < r; i++ {
			copy(out.data[i*c+c0:i*c+c0+d.c], d.data[i*d.c:(i+1)*d.c])
		}
		c0 += d.c
	}

	return out
}

func vstack[E any](ds ...*Dense[E]) *Dense[E] {
	c := ds[0].c
	out := &Dense[E]{c: c, dom: ds[0].dom}
	for _, d := range ds {
		out.r += d.r
		out.data = append(out.data, d.data...)
	}

	return out
}

func denseAll[E any](ms []Matrix[E]) ([]*Dense[E], error) {
	out := make([]*Dense[E], len(ms))
	for k, m := range ms {
		d, err := toDense(m)
		if err != nil {
			return nil, err
		}
		out[k] = d
	}

	return out, nil
}
