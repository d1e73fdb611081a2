// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide element-wise kernels (map, simplify, Hadamard) shared by the
//     reduction and eigen layers, plus their thin public wrappers.
//
// Determinism & Performance:
//   - Fixed flat loop order 0..n-1 over the row-major buffer.
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

// Map returns a new matrix with f applied to every entry of m.
func Map[E any](m Matrix[E], f func(E) E) (*Dense[E], error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf("Map", err)
	}

	return mapDense(d, f), nil
}

// SimplifyEntries applies the (possibly overridden) simplifier to every entry.
func SimplifyEntries[E any](m Matrix[E], opts ...Option) (*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf("SimplifyEntries", err)
	}

	return e.simplifyAll(d), nil
}

// Hadamard returns the element-wise product a ⊙ b.
func Hadamard[E any](a, b Matrix[E]) (*Dense[E], error) {
	da, db, err := binary(a, b)
	if err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	if err = ValidateSameShape[E](da, db); err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	out := da.dup()
	for k := range out.data {
		out.data[k] = da.dom.Mul(da.data[k], db.data[k])
	}

	return out, nil
}

// mapDense is the private map kernel.
func mapDense[E any](m *Dense[E], f func(E) E) *Dense[E] {
	out := &Dense[E]{r: m.r, c: m.c, data: make([]E, len(m.data)), dom: m.dom}
	for k, v := range m.data {
		out.data[k] = f(v)
	}

	return out
}

func (e *engine[E]) simplifyAll(m *Dense[E]) *Dense[E] {
	return mapDense(m, e.oracle.Simplify)
}

// neg returns −m.
func neg[E any](m *Dense[E]) *Dense[E] {
	return mapDense(m, m.dom.Neg)
}
