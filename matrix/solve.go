// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/symla/ring"
)

// Inverse returns m⁻¹ computed with the configured method (InvGE by
// default, see WithInverseMethod).
//
// Implementation:
//   - InvGE: RREF of [m | I]; a provably zero diagonal entry of the left
//     half means singular; the right half is the inverse.
//   - InvLU: the same RREF singularity test, then LUSolve against I.
//   - InvADJ: Adjugate(m) / det(m) with det by Berkowitz.
//   - InvCH, InvLDL, InvQR, InvPINV: invertibility is verified through the
//     determinant first, then the matching solver is run against I.
//
// Behavior highlights:
//   - Entries of the result are simplified, so every method returns the
//     same matrix over canonicalizing domains.
//   - When the zero oracle cannot decide the determinant, the diagonal of
//     the reduced row echelon form is inspected instead.
//
// Errors: ErrNonSquare, ErrSingular.
func Inverse[E any](m Matrix[E], opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv, err := e.inverse(d, e.o.inverseMethod)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return inv, nil
}

func (e *engine[E]) inverse(m *Dense[E], method InverseMethod) (*Dense[E], error) {
	if err := ValidateSquare[E](m); err != nil {
		return nil, err
	}
	n := m.r
	id := identity(e.dom, n)
	var (
		inv *Dense[E]
		err error
	)
	switch method {
	case InvGE:
		red := e.rref(hstack(m, id)).m
		if e.diagonalHasZero(red) {
			return nil, ErrSingular
		}
		inv = red.block(0, n, n, 2*n)
	case InvLU:
		if e.rrefDiagonalHasZero(m) {
			return nil, ErrSingular
		}
		inv, err = e.luSolve(m, id)
	case InvADJ:
		det, zero := e.detIsZero(m)
		if zero {
			return nil, ErrSingular
		}
		inv = divide(transpose(e.cofactorMatrix(m)), det)
	default:
		if _, zero := e.detIsZero(m); zero {
			return nil, ErrSingular
		}
		switch method {
		case InvCH:
			inv, err = e.choleskySolve(m, id)
		case InvLDL:
			inv, err = e.ldlSolve(m, id)
		case InvQR:
			inv, err = e.qrSolve(m, id)
		case InvPINV:
			inv, err = e.pinv(m)
		default:
			return nil, fmt.Errorf("method %v: %w", method, ErrMatrixNotImplemented)
		}
	}
	if err != nil {
		return nil, err
	}

	return e.simplifyAll(inv), nil
}

// diagonalHasZero reports whether a leading diagonal entry of m is provably zero.
func (e *engine[E]) diagonalHasZero(m *Dense[E]) bool {
	for j := 0; j < m.r && j < m.c; j++ {
		if e.provablyZero(m.at(j, j)) {
			return true
		}
	}

	return false
}

// Solve returns x with a·x = b for square a, as Inverse(a)·b.
//
// Errors: ErrUnderdetermined (rows < cols), ErrOverdetermined (rows > cols),
// ErrDimensionMismatch, ErrSingular.
func Solve[E any](a, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	switch {
	case da.r < da.c:
		return nil, matrixErrorf(opSolve, ErrUnderdetermined)
	case da.r > da.c:
		return nil, matrixErrorf(opSolve, ErrOverdetermined)
	}
	inv, err := e.inverse(da, e.o.inverseMethod)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return e.simplifyAll(mul(inv, db)), nil
}

// solverArgs validates a system matrix and its right-hand side.
func solverArgs[E any](a, b Matrix[E], opts []Option) (*engine[E], *Dense[E], *Dense[E], error) {
	da, db, err := binary(a, b)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = ValidateSameRows[E](da, db); err != nil {
		return nil, nil, nil, err
	}

	return newEngine(da.dom, gatherOptions(opts...)), da, db, nil
}

// LowerTriangularSolve solves l·x = b by forward substitution.
// Errors: ErrNonSquare, ErrDimensionMismatch, ErrNotTriangular, ErrSingular.
func LowerTriangularSolve[E any](l, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, dl, db, err := solverArgs(l, b, opts)
	if err != nil {
		return nil, matrixErrorf(opLowerSolve, err)
	}
	x, err := e.lowerSolve(dl, db)
	if err != nil {
		return nil, matrixErrorf(opLowerSolve, err)
	}

	return x, nil
}

// UpperTriangularSolve solves u·x = b by back substitution.
// Errors: ErrNonSquare, ErrDimensionMismatch, ErrNotTriangular, ErrSingular.
func UpperTriangularSolve[E any](u, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, du, db, err := solverArgs(u, b, opts)
	if err != nil {
		return nil, matrixErrorf(opUpperSolve, err)
	}
	x, err := e.upperSolve(du, db)
	if err != nil {
		return nil, matrixErrorf(opUpperSolve, err)
	}

	return x, nil
}

// DiagonalSolve solves d·x = b for diagonal d.
// Errors: ErrNonSquare, ErrDimensionMismatch, ErrNotTriangular, ErrSingular.
func DiagonalSolve[E any](d, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, dd, db, err := solverArgs(d, b, opts)
	if err != nil {
		return nil, matrixErrorf(opDiagSolve, err)
	}
	x, err := e.diagonalSolve(dd, db)
	if err != nil {
		return nil, matrixErrorf(opDiagSolve, err)
	}

	return x, nil
}

func (e *engine[E]) lowerSolve(l, b *Dense[E]) (*Dense[E], error) {
	if err := ValidateSquare[E](l); err != nil {
		return nil, err
	}
	if e.isLower(l) != ring.True {
		return nil, fmt.Errorf("lower triangular required: %w", ErrNotTriangular)
	}
	dom := e.dom
	x := newDense(dom, b.r, b.c)
	for j := 0; j < b.c; j++ {
		for i := 0; i < l.r; i++ {
			if e.provablyZero(l.at(i, i)) {
				return nil, fmt.Errorf("zero diagonal at %d: %w", i, ErrSingular)
			}
			acc := b.at(i, j)
			for k := 0; k < i; k++ {
				acc = dom.Sub(acc, dom.Mul(l.at(i, k), x.at(k, j)))
			}
			x.set(i, j, e.step(dom.Div(acc, l.at(i, i))))
		}
	}

	return x, nil
}

func (e *engine[E]) upperSolve(u, b *Dense[E]) (*Dense[E], error) {
	if err := ValidateSquare[E](u); err != nil {
		return nil, err
	}
	if e.isUpper(u) != ring.True {
		return nil, fmt.Errorf("upper triangular required: %w", ErrNotTriangular)
	}
	dom := e.dom
	x := newDense(dom, b.r, b.c)
	for j := 0; j < b.c; j++ {
		for i := u.r - 1; i >= 0; i-- {
			if e.provablyZero(u.at(i, i)) {
				return nil, fmt.Errorf("zero diagonal at %d: %w", i, ErrSingular)
			}
			acc := b.at(i, j)
			for k := i + 1; k < u.r; k++ {
				acc = dom.Sub(acc, dom.Mul(u.at(i, k), x.at(k, j)))
			}
			x.set(i, j, e.step(dom.Div(acc, u.at(i, i))))
		}
	}

	return x, nil
}

func (e *engine[E]) diagonalSolve(d, b *Dense[E]) (*Dense[E], error) {
	if err := ValidateSquare[E](d); err != nil {
		return nil, err
	}
	if e.isUpper(d).And(e.isLower(d)) != ring.True {
		return nil, fmt.Errorf("diagonal required: %w", ErrNotTriangular)
	}
	x := newDense(e.dom, b.r, b.c)
	for i := 0; i < d.r; i++ {
		if e.provablyZero(d.at(i, i)) {
			return nil, fmt.Errorf("zero diagonal at %d: %w", i, ErrSingular)
		}
		for j := 0; j < b.c; j++ {
			x.set(i, j, e.step(e.dom.Div(b.at(i, j), d.at(i, i))))
		}
	}

	return x, nil
}

// LUSolve solves a·x = b through LUDecompositionSimple with rank checking.
//
// Implementation:
//   - Stage 1: factor a (rank-deficient input is singular) and replay the
//     row swaps on b.
//   - Stage 2: forward substitution with the unit lower factor.
//   - Stage 3: for rows > cols the surplus rows of b must be provably zero,
//     otherwise the system is inconsistent; they are then dropped.
//   - Stage 4: back substitution with U.
//
// Errors: ErrUnderdetermined, ErrDimensionMismatch, ErrSingular, ErrNoSolution.
func LUSolve[E any](a, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}
	x, err := e.luSolve(da, db)
	if err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}

	return x, nil
}

func (e *engine[E]) luSolve(a, rhs *Dense[E]) (*Dense[E], error) {
	m, n := a.r, a.c
	if m < n {
		return nil, ErrUnderdetermined
	}
	lu, swaps, err := e.luSimple(a, true)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrSingular)
	}
	dom := e.dom
	b := rhs.dup()
	for _, s := range swaps {
		b.swapRows(s.I, s.J)
	}

	for i := 0; i < m; i++ {
		for j := 0; j < min(i, n); j++ {
			f := lu.at(i, j)
			for k := 0; k < b.c; k++ {
				b.set(i, k, e.step(dom.Sub(b.at(i, k), dom.Mul(f, b.at(j, k)))))
			}
		}
	}

	if m > n {
		for i := n; i < m; i++ {
			for k := 0; k < b.c; k++ {
				if !e.provablyZero(b.at(i, k)) {
					return nil, ErrNoSolution
				}
			}
		}
		b = b.block(0, n, 0, b.c)
	}

	for i := n - 1; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			f := lu.at(i, j)
			for k := 0; k < b.c; k++ {
				b.set(i, k, e.step(dom.Sub(b.at(i, k), dom.Mul(f, b.at(j, k)))))
			}
		}
		piv := lu.at(i, i)
		for k := 0; k < b.c; k++ {
			b.set(i, k, e.step(dom.Div(b.at(i, k), piv)))
		}
	}

	return b, nil
}

// GaussJordanSolve returns the general solution of a·x = b.
//
// Implementation:
//   - Stage 1: RREF of [a | b]; only pivots inside a count, their number is
//     the rank.
//   - Stage 2: the rows of the reduced right-hand side below the rank must
//     be provably zero, otherwise ErrNoSolution.
//   - Stage 3: with V the reduced a restricted to the free columns and vt
//     the reduced right-hand side, the solution is [vt − V·τ ; τ] with the
//     rows un-permuted back to the original column order.
//
// Behavior highlights:
//   - Particular sets every parameter to zero; Homogeneous holds one null
//     space vector per free column.
//   - On domains that can mint symbols, X carries the parameters τ
//     themselves. They are named tau0, tau1, ... (row-major); the base name
//     is prefixed with '_' while it collides with a symbol of a or b.
//
// Errors: ErrDimensionMismatch, ErrNoSolution.
func GaussJordanSolve[E any](a, b Matrix[E], opts ...Option) (*GJSolution[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opGJSolve, err)
	}
	sol, err := e.gaussJordanSolve(da, db)
	if err != nil {
		return nil, matrixErrorf(opGJSolve, err)
	}

	return sol, nil
}

func (e *engine[E]) gaussJordanSolve(a, b *Dense[E]) (*GJSolution[E], error) {
	dom := e.dom
	aug := hstack(a, b)
	col, bc := a.c, b.c
	red := e.rref(aug)
	var pivots []int
	for _, p := range red.pivots {
		if p < col {
			pivots = append(pivots, p)
		}
	}
	rank := len(pivots)
	for i := rank; i < red.m.r; i++ {
		if e.allZero(red.m.data[i*red.m.c+col:(i+1)*red.m.c]) != ring.True {
			return nil, ErrNoSolution
		}
	}
	free := freeColumns(col, pivots)

	// vt - V·τ evaluated for a given parameter block
	fill := func(tau *Dense[E]) *Dense[E] {
		out := newDense(dom, col, bc)
		for k, p := range pivots {
			for j := 0; j < bc; j++ {
				acc := red.m.at(k, col+j)
				for t, f := range free {
					acc = dom.Sub(acc, dom.Mul(red.m.at(k, f), tau.at(t, j)))
				}
				out.set(p, j, e.simplify(acc))
			}
		}
		for t, f := range free {
			for j := 0; j < bc; j++ {
				out.set(f, j, tau.at(t, j))
			}
		}

		return out
	}

	sol := &GJSolution[E]{FreeCols: free}
	sol.Particular = fill(newDense(dom, len(free), bc))
	for _, f := range free {
		vec := newDense(dom, col, 1)
		vec.set(f, 0, dom.One())
		for k, p := range pivots {
			vec.set(p, 0, dom.Neg(red.m.at(k, f)))
		}
		sol.Homogeneous = append(sol.Homogeneous, vec)
	}

	if s, ok := e.symbolic(); ok {
		name := e.uniqueName("tau", true, aug)
		params := newDense(dom, len(free), bc)
		for k := range params.data {
			params.data[k] = s.Symbol(name + strconv.Itoa(k))
		}
		sol.Params = params
		sol.X = fill(params)
	}

	return sol, nil
}

// CholeskySolve solves a·x = b with a Cholesky factorization. When a is
// not provably Hermitian the normal equations aᴴa·x = aᴴb are solved
// instead, which yields the least-squares solution for rows > cols.
//
// Errors: ErrUnderdetermined, ErrDimensionMismatch, plus those of Cholesky.
func CholeskySolve[E any](a, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opCHSolve, err)
	}
	x, err := e.choleskySolve(da, db)
	if err != nil {
		return nil, matrixErrorf(opCHSolve, err)
	}

	return x, nil
}

// normalForm returns (aᴴa, aᴴb) unless a is provably Hermitian.
func (e *engine[E]) normalForm(a, b *Dense[E]) (*Dense[E], *Dense[E], error) {
	if a.r < a.c {
		return nil, nil, ErrUnderdetermined
	}
	if e.isHermitian(a) == ring.True {
		return a, b, nil
	}
	h := conjTranspose(a)

	return e.simplifyAll(mul(h, a)), e.simplifyAll(mul(h, b)), nil
}

func (e *engine[E]) choleskySolve(a, b *Dense[E]) (*Dense[E], error) {
	a, b, err := e.normalForm(a, b)
	if err != nil {
		return nil, err
	}
	L, err := e.cholesky(a)
	if err != nil {
		return nil, err
	}
	y, err := e.lowerSolve(L, b)
	if err != nil {
		return nil, err
	}

	return e.upperSolve(conjTranspose(L), y)
}

// LDLSolve solves a·x = b with an LDLᴴ factorization, falling back to the
// normal equations like CholeskySolve.
//
// Errors: ErrUnderdetermined, ErrDimensionMismatch, plus those of LDLDecomposition.
func LDLSolve[E any](a, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opLDLSolve, err)
	}
	x, err := e.ldlSolve(da, db)
	if err != nil {
		return nil, matrixErrorf(opLDLSolve, err)
	}

	return x, nil
}

func (e *engine[E]) ldlSolve(a, b *Dense[E]) (*Dense[E], error) {
	a, b, err := e.normalForm(a, b)
	if err != nil {
		return nil, err
	}
	L, D, err := e.ldl(a)
	if err != nil {
		return nil, err
	}
	y, err := e.lowerSolve(L, b)
	if err != nil {
		return nil, err
	}
	z, err := e.diagonalSolve(D, y)
	if err != nil {
		return nil, err
	}

	return e.upperSolve(conjTranspose(L), z)
}

// QRSolve solves a·x = b as R·x = Qᴴ·b. For rows > cols the result is the
// least-squares solution.
//
// Errors: ErrDimensionMismatch, plus those of QRDecomposition.
func QRSolve[E any](a, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}
	x, err := e.qrSolve(da, db)
	if err != nil {
		return nil, matrixErrorf(opQRSolve, err)
	}

	return x, nil
}

func (e *engine[E]) qrSolve(a, b *Dense[E]) (*Dense[E], error) {
	Q, R, err := e.qr(a)
	if err != nil {
		return nil, err
	}
	y := e.simplifyAll(mul(conjTranspose(Q), b))

	return e.upperSolve(R, y)
}

// SolveLeastSquares returns the x minimizing ‖a·x − b‖.
//
// Behavior highlights:
//   - The method defaults to InvCH; InvQR, InvLDL and InvPINV use their
//     solvers directly, every other method solves aᴴa·x = aᴴb with Solve.
//
// Errors: those of the selected solver.
func SolveLeastSquares[E any](a, b Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opLstSq, err)
	}
	method := DefaultLeastSquaresMethod
	if e.o.inverseSet {
		method = e.o.inverseMethod
	}
	var x *Dense[E]
	switch method {
	case InvCH:
		x, err = e.choleskySolve(da, db)
	case InvQR:
		x, err = e.qrSolve(da, db)
	case InvLDL:
		x, err = e.ldlSolve(da, db)
	case InvPINV:
		x, err = e.pinvSolve(da, db, nil)
	default:
		h := conjTranspose(da)
		var inv *Dense[E]
		inv, err = e.inverse(e.simplifyAll(mul(h, da)), method)
		if err == nil {
			x = mul(inv, mul(h, db))
		}
	}
	if err != nil {
		return nil, matrixErrorf(opLstSq, err)
	}

	return e.simplifyAll(x), nil
}

// Pinv returns the Moore-Penrose pseudoinverse of a full-rank matrix:
// (aᴴa)⁻¹aᴴ when rows ≥ cols, aᴴ(aaᴴ)⁻¹ otherwise. The zero matrix
// yields aᴴ.
//
// Errors: ErrMatrixNotImplemented for rank-deficient input.
func Pinv[E any](m Matrix[E], opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}
	p, err := e.pinv(d)
	if err != nil {
		return nil, matrixErrorf(opPinv, err)
	}

	return p, nil
}

func (e *engine[E]) pinv(a *Dense[E]) (*Dense[E], error) {
	h := conjTranspose(a)
	if e.allZero(a.data) == ring.True {
		return h, nil
	}
	var out *Dense[E]
	if a.r >= a.c {
		inv, err := e.inverse(e.simplifyAll(mul(h, a)), InvGE)
		if err != nil {
			return nil, fmt.Errorf("rank-deficient input: %w", ErrMatrixNotImplemented)
		}
		out = mul(inv, h)
	} else {
		inv, err := e.inverse(e.simplifyAll(mul(a, h)), InvGE)
		if err != nil {
			return nil, fmt.Errorf("rank-deficient input: %w", ErrMatrixNotImplemented)
		}
		out = mul(h, inv)
	}

	return e.simplifyAll(out), nil
}

// PinvSolve returns a⁺b + (I − a⁺a)·w, the general least-squares solution.
//
// Behavior highlights:
//   - w is the given arbitrary matrix (cols(a) × cols(b)); when nil it is
//     filled with fresh symbols _w{i}_{j} on symbolic domains and with zeros
//     otherwise, which yields the minimum-norm solution.
//
// Errors: ErrDimensionMismatch, ErrMatrixNotImplemented.
func PinvSolve[E any](a, b Matrix[E], arbitrary Matrix[E], opts ...Option) (*Dense[E], error) {
	e, da, db, err := solverArgs(a, b, opts)
	if err != nil {
		return nil, matrixErrorf(opPinvSolve, err)
	}
	var w *Dense[E]
	if arbitrary != nil {
		if w, err = toDense(arbitrary); err != nil {
			return nil, matrixErrorf(opPinvSolve, err)
		}
	}
	x, err := e.pinvSolve(da, db, w)
	if err != nil {
		return nil, matrixErrorf(opPinvSolve, err)
	}

	return x, nil
}

func (e *engine[E]) pinvSolve(a, b, w *Dense[E]) (*Dense[E], error) {
	dom := e.dom
	n, k := a.c, b.c
	switch {
	case w != nil:
		if w.r != n || w.c != k {
			return nil, fmt.Errorf("arbitrary matrix %dx%d, want %dx%d: %w", w.r, w.c, n, k, ErrDimensionMismatch)
		}
	default:
		w = newDense(dom, n, k)
		if s, ok := e.symbolic(); ok {
			prefix := e.uniqueGrid("_w", n, k, a, b)
			for i := 0; i < n; i++ {
				for j := 0; j < k; j++ {
					w.set(i, j, s.Symbol(gridName(prefix, i, j)))
				}
			}
		}
	}
	ap, err := e.pinv(a)
	if err != nil {
		return nil, err
	}
	proj := sub(identity(dom, n), mul(ap, a))

	return e.simplifyAll(add(mul(ap, b), mul(proj, w))), nil
}
