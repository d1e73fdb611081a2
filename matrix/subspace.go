// SPDX-License-Identifier: MIT

package matrix

// Nullspace returns a basis of {x : m·x = 0} as column vectors, one per
// non-pivot column of the reduced row echelon form. The basis vector for
// free column f has a one at f, minus the RREF entries of column f at the
// pivot positions, and zeros elsewhere.
func Nullspace[E any](m Matrix[E], opts ...Option) ([]*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opNullspace, err)
	}

	return e.nullspace(d), nil
}

func (e *engine[E]) nullspace(m *Dense[E]) []*Dense[E] {
	r := e.rref(m)
	free := freeColumns(m.c, r.pivots)
	basis := make([]*Dense[E], 0, len(free))
	for _, f := range free {
		vec := newDense(e.dom, m.c, 1)
		vec.set(f, 0, e.dom.One())
		for pivRow, pivCol := range r.pivots {
			vec.set(pivCol, 0, e.dom.Sub(vec.at(pivCol, 0), r.m.at(pivRow, f)))
		}
		basis = append(basis, vec)
	}

	return basis
}

// Columnspace returns the columns of m at the pivot positions of its
// echelon form.
func Columnspace[E any](m Matrix[E], opts ...Option) ([]*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opColspace, err)
	}
	r := e.echelon(d)
	out := make([]*Dense[E], len(r.pivots))
	for k, j := range r.pivots {
		out[k] = d.colMat(j)
	}

	return out, nil
}

// Rowspace returns the non-zero rows of the echelon form of m.
func Rowspace[E any](m Matrix[E], opts ...Option) ([]*Dense[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opRowspace, err)
	}
	r := e.echelon(d)
	out := make([]*Dense[E], len(r.pivots))
	for i := range r.pivots {
		out[i] = r.m.rowMat(i)
	}

	return out, nil
}

// freeColumns lists the column indices in [0, n) that are not pivots.
func freeColumns(n int, pivots []int) []int {
	isPivot := make([]bool, n)
	for _, p := range pivots {
		isPivot[p] = true
	}
	var free []int
	for j := 0; j < n; j++ {
		if !isPivot[j] {
			free = append(free, j)
		}
	}

	return free
}
