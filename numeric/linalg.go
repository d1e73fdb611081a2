// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Tolerance bounds the disagreement accepted between two floats: they match
// when they are within Abs absolutely or within Rel relatively.
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance suits well-conditioned matrices of moderate size.
var DefaultTolerance = Tolerance{Abs: 1e-9, Rel: 1e-9}

func (t Tolerance) equal(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, t.Abs, t.Rel)
}

func (t Tolerance) equalComplex(a, b complex128) bool {
	return t.equal(real(a), real(b)) && t.equal(imag(a), imag(b))
}

func square(a mat.Matrix) error {
	r, c := a.Dims()
	if r != c {
		return fmt.Errorf("%dx%d: %w", r, c, ErrNonSquare)
	}

	return nil
}

// Det returns the determinant of a through gonum's partial-pivoting LU.
func Det(a mat.Matrix) (float64, error) {
	if err := square(a); err != nil {
		return 0, err
	}
	var lu mat.LU
	lu.Factorize(a)

	return lu.Det(), nil
}

// Solve returns x with a·x = b (least squares when a is tall).
// A mat.Condition error from gonum is returned wrapped; x is nil then.
func Solve(a, b mat.Matrix) (*mat.Dense, error) {
	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return nil, fmt.Errorf("numeric: solve: %w", err)
	}

	return &x, nil
}

// Eigenvalues returns the eigenvalues of a, ordered by real part and then by
// imaginary part.
func Eigenvalues(a mat.Matrix) ([]complex128, error) {
	if err := square(a); err != nil {
		return nil, err
	}
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, ErrNotConverged
	}
	vals := eig.Values(nil)
	sortComplex(vals, DefaultTolerance)

	return vals, nil
}

// SymEigen returns the ascending eigenvalues of the symmetric matrix s and
// the matching orthonormal eigenvectors as columns.
func SymEigen(s mat.Symmetric) ([]float64, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(s, true); !ok {
		return nil, nil, ErrNotConverged
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	return es.Values(nil), &vecs, nil
}

// sortComplex orders by real part, treating real parts within tol as equal,
// then by imaginary part.
func sortComplex(vs []complex128, tol Tolerance) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if !tol.equal(real(a), real(b)) {
			return real(a) < real(b)
		}
		return imag(a) < imag(b)
	})
}

// maxAbsOffDiag returns the largest |a_ij|, i < j, and its position.
func maxAbsOffDiag(a *mat.Dense) (v float64, p, q int) {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if x := math.Abs(a.At(i, j)); x > v {
				v, p, q = x, i, j
			}
		}
	}

	return v, p, q
}
