// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/symla/ring"
)

// Eigenvals returns the eigenvalues of m with their algebraic multiplicities,
// ordered by the domain's Orderer.
//
// Implementation:
//   - Stage 1: floating-point entries are replaced by exact rationals
//     (WithRational, default true).
//   - Stage 2: for provably triangular input the diagonal entries are the
//     eigenvalues; equal ones are grouped.
//   - Stage 3: otherwise the characteristic polynomial is handed to the
//     domain's RootFinder.
//
// Errors:
//   - ErrNonSquare.
//   - ErrEigenIncomplete when the multiplicities found do not add up to the
//     size of m (disable with WithErrorWhenIncomplete(false)).
//   - ErrMatrixNotImplemented when the domain has no RootFinder.
func Eigenvals[E any](m Matrix[E], opts ...Option) ([]ring.Root[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opEigenvals, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf(opEigenvals, err)
	}
	if e.o.rational {
		d, _ = e.rationalize(d)
	}
	vals, err := e.eigenvals(d)
	if err != nil {
		return nil, matrixErrorf(opEigenvals, err)
	}
	e.sortRoots(vals)

	return vals, nil
}

// eigenvals returns eigenvalues in discovery order; m must be square.
func (e *engine[E]) eigenvals(m *Dense[E]) ([]ring.Root[E], error) {
	if m.r == 0 {
		return nil, nil
	}
	if e.isUpper(m) == ring.True || e.isLower(m) == ring.True {
		var out []ring.Root[E]
	diag:
		for i := 0; i < m.r; i++ {
			v := e.simplify(m.at(i, i))
			for k := range out {
				if e.sameValue(out[k].Value, v) {
					out[k].Mult++
					continue diag
				}
			}
			out = append(out, ring.Root[E]{Value: v, Mult: 1})
		}
		return out, nil
	}

	rf, ok := e.dom.(ring.RootFinder[E])
	if !ok {
		return nil, fmt.Errorf("domain has no root finder: %w", ErrMatrixNotImplemented)
	}
	p := e.charPoly(m, "x")
	roots, complete := rf.Roots(p.Coeffs)
	total := 0
	for _, r := range roots {
		total += r.Mult
	}
	if (!complete || total != m.r) && e.o.errorWhenIncomplete {
		return nil, ErrEigenIncomplete
	}

	return roots, nil
}

func (e *engine[E]) sortRoots(rs []ring.Root[E]) {
	sort.SliceStable(rs, func(i, j int) bool { return e.compare(rs[i].Value, rs[j].Value) < 0 })
}

// rationalize replaces floating-point literals by rationals. ok reports
// whether m contained any.
func (e *engine[E]) rationalize(m *Dense[E]) (*Dense[E], bool) {
	f, ok := e.floating()
	if !ok {
		return m, false
	}
	has := false
	for _, x := range m.data {
		if f.HasFloat(x) {
			has = true
			break
		}
	}
	if !has {
		return m, false
	}

	return mapDense(m, f.Rationalize), true
}

// evalf evaluates x numerically, honoring WithChop.
func (e *engine[E]) evalf(x E) E {
	if f, ok := e.floating(); ok {
		return f.Evalf(x, e.o.chop)
	}

	return x
}

// restoreFloats evaluates every entry numerically.
func (e *engine[E]) restoreFloats(m *Dense[E]) *Dense[E] {
	return mapDense(m, e.evalf)
}

// Eigenvects returns one EigenTriple per eigenvalue: the value, its
// algebraic multiplicity and a basis of its eigenspace.
//
// Behavior highlights:
//   - Each basis is the null space of m − λI. When that comes out empty
//     the computation is repeated once with forced simplification.
//   - WithPrimitive divides every basis vector by the gcd of its entries
//     (domains with a GCDer only).
//   - Float input is rationalized first and the results are evaluated back
//     to floats at the end (WithChop drops negligible residues).
//
// Errors: those of Eigenvals; ErrMatrixEigenFailed when an eigenspace stays
// empty.
func Eigenvects[E any](m Matrix[E], opts ...Option) ([]EigenTriple[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opEigenvects, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf(opEigenvects, err)
	}
	ts, err := e.eigenvects(d)
	if err != nil {
		return nil, matrixErrorf(opEigenvects, err)
	}
	sort.SliceStable(ts, func(i, j int) bool { return e.compare(ts[i].Value, ts[j].Value) < 0 })

	return ts, nil
}

// eigenvects returns triples in discovery order; m must be square.
func (e *engine[E]) eigenvects(m *Dense[E]) ([]EigenTriple[E], error) {
	work, hadFloat := e.rationalize(m)
	vals, err := e.eigenvals(work)
	if err != nil {
		return nil, err
	}
	out := make([]EigenTriple[E], 0, len(vals))
	for _, r := range vals {
		basis, err := e.eigenspace(work, r.Value)
		if err != nil {
			return nil, err
		}
		if e.o.primitive {
			for k := range basis {
				basis[k] = e.primitive(basis[k])
			}
		}
		t := EigenTriple[E]{Value: r.Value, Mult: r.Mult, Basis: basis}
		if hadFloat {
			t.Value = e.evalf(t.Value)
			for k := range t.Basis {
				t.Basis[k] = e.restoreFloats(t.Basis[k])
			}
		}
		out = append(out, t)
	}

	return out, nil
}

// eigenspace returns the null space of m − λI, retrying once with forced
// simplification when the first attempt finds nothing.
func (e *engine[E]) eigenspace(m *Dense[E], lambda E) ([]*Dense[E], error) {
	shifted := sub(m, scale(identity(e.dom, m.r), lambda))
	basis := e.nullspace(shifted)
	if len(basis) == 0 {
		e.log.Debug("eigen retry", zap.String("eigenvalue", e.dom.Format(lambda)))
		se := e.with(func(o *Options) { o.intermediateSimplify = true })
		basis = se.nullspace(se.simplifyAll(shifted))
	}
	if len(basis) == 0 {
		return nil, fmt.Errorf("empty eigenspace for %s: %w", e.dom.Format(lambda), ErrMatrixEigenFailed)
	}
	for k := range basis {
		basis[k] = e.simplifyAll(basis[k])
	}

	return basis, nil
}

// primitive divides v by the gcd of its entries.
func (e *engine[E]) primitive(v *Dense[E]) *Dense[E] {
	g, ok := e.dom.(ring.GCDer[E])
	if !ok {
		return v
	}
	acc := e.dom.Zero()
	for _, x := range v.data {
		acc = g.GCD(acc, x)
	}
	if e.provablyZero(acc) {
		return v
	}

	return e.simplifyAll(divide(v, acc))
}

// EigenCache memoizes the eigenvectors computed by IsDiagonalizable so that
// a following Diagonalize of the same matrix does not repeat the work.
//
// A cache belongs to one matrix: it is reset automatically when used with a
// different matrix value and dropped after each call unless
// WithClearCache(false) is given. It is not safe for concurrent use.
type EigenCache[E any] struct {
	owner   Matrix[E]
	vects   []EigenTriple[E]
	decided bool
	diag    bool
}

// Clear drops every cached result.
func (c *EigenCache[E]) Clear() {
	*c = EigenCache[E]{}
}

// bind resets c when it was filled for another matrix.
func (c *EigenCache[E]) bind(m Matrix[E]) {
	if !sameMatrix(c.owner, m) {
		c.Clear()
		c.owner = m
	}
}

// sameMatrix compares matrix identities; values of non-comparable types
// never match.
func sameMatrix[E any](a, b Matrix[E]) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

// IsDiagonalizable reports whether m = P·D·P⁻¹ for some diagonal D.
//
// Implementation:
//   - Non-square input is not diagonalizable.
//   - Real symmetric input (and Hermitian input unless WithRealsOnly) is
//     diagonalizable without any eigen computation.
//   - Otherwise every eigenvalue needs as many eigenvectors as its
//     algebraic multiplicity, and must be real under WithRealsOnly.
//
// cache may be nil. Eigenvectors computed here are stored in it; the cache
// is cleared before returning unless WithClearCache(false) is given.
func IsDiagonalizable[E any](m Matrix[E], cache *EigenCache[E], opts ...Option) (bool, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return false, matrixErrorf(opIsDiag, err)
	}
	if cache == nil {
		cache = &EigenCache[E]{}
	}
	cache.bind(m)
	defer func() {
		if e.o.clearCache {
			cache.Clear()
		}
	}()
	if d.r != d.c {
		return false, nil
	}
	if e.allReal(d) == ring.True && e.isSymmetric(d) == ring.True {
		return true, nil
	}
	if !e.o.realsOnly && e.isHermitian(d) == ring.True {
		return true, nil
	}
	ok, err := e.diagonalizableWithEigen(d, cache)
	if err != nil {
		return false, matrixErrorf(opIsDiag, err)
	}

	return ok, nil
}

func (e *engine[E]) allReal(m *Dense[E]) ring.Ternary {
	res := ring.True
	for _, x := range m.data {
		res = res.And(e.isReal(x))
		if res == ring.False {
			return res
		}
	}

	return res
}

// diagonalizableWithEigen decides diagonalizability from the eigenvectors,
// filling cache on first use.
func (e *engine[E]) diagonalizableWithEigen(m *Dense[E], cache *EigenCache[E]) (bool, error) {
	if cache.decided {
		return cache.diag, nil
	}
	ts, err := e.eigenvects(m)
	if err != nil {
		return false, err
	}
	cache.vects = ts
	cache.decided = true
	cache.diag = true
	for _, t := range ts {
		if (e.o.realsOnly && e.isReal(t.Value) != ring.True) || t.Mult != len(t.Basis) {
			cache.diag = false
			break
		}
	}

	return cache.diag, nil
}

// Diagonalize returns P and diagonal D with m = P·D·P⁻¹.
//
// Behavior highlights:
//   - The columns of P are the eigenspace bases in the order the eigenvalues
//     were found; WithSort orders them by ascending eigenvalue.
//   - WithNormalize scales every column to unit norm (needs square roots).
//   - Reuses and fills cache like IsDiagonalizable.
//
// Errors: ErrNonSquare, ErrNotDiagonalizable, ErrNotRepresentable and those
// of Eigenvects.
func Diagonalize[E any](m Matrix[E], cache *EigenCache[E], opts ...Option) (P, D *Dense[E], err error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opDiagonal, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, nil, matrixErrorf(opDiagonal, err)
	}
	if cache == nil {
		cache = &EigenCache[E]{}
	}
	cache.bind(m)
	defer func() {
		if e.o.clearCache {
			cache.Clear()
		}
	}()
	ok, err := e.diagonalizableWithEigen(d, cache)
	if err != nil {
		return nil, nil, matrixErrorf(opDiagonal, err)
	}
	if !ok {
		return nil, nil, matrixErrorf(opDiagonal, ErrNotDiagonalizable)
	}

	ts := append([]EigenTriple[E](nil), cache.vects...)
	if e.o.sort {
		sort.SliceStable(ts, func(i, j int) bool { return e.compare(ts[i].Value, ts[j].Value) < 0 })
	}
	var cols []*Dense[E]
	var diag []E
	for _, t := range ts {
		for k := 0; k < t.Mult; k++ {
			diag = append(diag, t.Value)
		}
		for _, v := range t.Basis {
			if e.o.normalize {
				n, err := e.norm(v)
				if err != nil {
					return nil, nil, matrixErrorf(opDiagonal, err)
				}
				v = e.simplifyAll(divide(v, n))
			}
			cols = append(cols, v)
		}
	}
	if len(cols) == 0 {
		return newDense(e.dom, 0, 0), newDense(e.dom, 0, 0), nil
	}

	return hstack(cols...), DiagValues(e.dom, diag...), nil
}
