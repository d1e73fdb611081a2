// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/symla/ring"

// Structural predicates. Each returns a ring.Ternary: False as soon as one
// entry provably violates the property, True when every entry provably
// satisfies it, Unknown otherwise. Solvers that require a property treat
// only True as satisfied.

// IsZeroMatrix reports whether every entry is zero.
func IsZeroMatrix[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsZeroMatrix", err)
	}

	return e.allZero(d.data), nil
}

// IsUpper reports whether every entry below the diagonal is zero.
// Non-square matrices are allowed (row echelon shapes).
func IsUpper[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsUpper", err)
	}

	return e.isUpper(d), nil
}

// IsLower reports whether every entry above the diagonal is zero.
func IsLower[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsLower", err)
	}

	return e.isLower(d), nil
}

// IsDiagonal reports whether every off-diagonal entry is zero.
func IsDiagonal[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsDiagonal", err)
	}

	return e.isUpper(d).And(e.isLower(d)), nil
}

// IsSymmetric reports whether m equals its transpose. Non-square is False.
func IsSymmetric[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsSymmetric", err)
	}

	return e.isSymmetric(d), nil
}

// IsHermitian reports whether m equals its conjugate transpose.
// Non-square is False; domains without conjugation fall back to symmetry.
func IsHermitian[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsHermitian", err)
	}

	return e.isHermitian(d), nil
}

// IsEchelon reports whether m is in row echelon form: the first non-zero
// entry of each row lies strictly right of the one above, and zero rows
// come last.
func IsEchelon[E any](m Matrix[E], opts ...Option) (ring.Ternary, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return ring.Unknown, matrixErrorf("IsEchelon", err)
	}

	return e.isEchelon(d), nil
}

// ---------- engine-level predicates ----------

func (e *engine[E]) allZero(xs []E) ring.Ternary {
	res := ring.True
	for _, x := range xs {
		res = res.And(e.isZero(x))
		if res == ring.False {
			return res
		}
	}

	return res
}

func (e *engine[E]) isUpper(d *Dense[E]) ring.Ternary {
	res := ring.True
	for i := 1; i < d.r; i++ {
		for j := 0; j < i && j < d.c; j++ {
			res = res.And(e.isZero(d.at(i, j)))
			if res == ring.False {
				return res
			}
		}
	}

	return res
}

func (e *engine[E]) isLower(d *Dense[E]) ring.Ternary {
	res := ring.True
	for i := 0; i < d.r; i++ {
		for j := i + 1; j < d.c; j++ {
			res = res.And(e.isZero(d.at(i, j)))
			if res == ring.False {
				return res
			}
		}
	}

	return res
}

func (e *engine[E]) isSymmetric(d *Dense[E]) ring.Ternary {
	if d.r != d.c {
		return ring.False
	}
	res := ring.True
	for i := 0; i < d.r; i++ {
		for j := i + 1; j < d.c; j++ {
			res = res.And(e.isZero(e.simplify(e.dom.Sub(d.at(i, j), d.at(j, i)))))
			if res == ring.False {
				return res
			}
		}
	}

	return res
}

func (e *engine[E]) isHermitian(d *Dense[E]) ring.Ternary {
	if d.r != d.c {
		return ring.False
	}
	res := ring.True
	for i := 0; i < d.r; i++ {
		for j := i; j < d.c; j++ {
			res = res.And(e.isZero(e.simplify(e.dom.Sub(d.at(i, j), e.conj(d.at(j, i))))))
			if res == ring.False {
				return res
			}
		}
	}

	return res
}

// isEchelon walks rows keeping the column of the previous leading entry.
// Only True answers locate a leading entry; an Unknown entry makes the whole
// answer Unknown unless a later proof of violation turns up.
func (e *engine[E]) isEchelon(d *Dense[E]) ring.Ternary {
	if d.r == 0 || d.c == 0 {
		return ring.True
	}
	zeroFirst := e.isZero(d.at(0, 0))
	if zeroFirst == ring.True {
		// First column must vanish entirely; recurse on the column-trimmed matrix.
		col := e.allZero(d.colSlice(0, 0))
		if col == ring.False {
			return ring.False
		}
		return col.And(e.isEchelon(d.block(0, d.r, 1, d.c)))
	}
	// a non-zero (or undecided) pivot: the rest of its column must vanish
	col := e.allZero(d.colSlice(0, 1))
	if col == ring.False {
		return ring.False
	}
	res := col.And(e.isEchelon(d.block(1, d.r, 1, d.c)))
	if zeroFirst == ring.Unknown {
		res = res.And(ring.Unknown)
	}

	return res
}
