// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Jacobi computes all eigenvalues and eigenvectors of a real symmetric
// matrix with classical Jacobi rotations.
//
// It returns the eigenvalues in ascending order and V whose columns are the
// matching unit eigenvectors. tol is both the symmetry tolerance and the
// convergence threshold for the largest off-diagonal entry; maxIter caps the
// number of rotations.
//
// Implementation:
//   - Stage 1: validate shape and symmetry.
//   - Stage 2: A ← copy of m, V ← I.
//   - Stage 3: repeatedly annihilate the largest off-diagonal |a_pq| with a
//     plane rotation, accumulating the rotation into V.
//   - Stage 4: read the diagonal and sort (value, column) pairs.
//
// Errors: ErrNonSquare, ErrNotSymmetric, ErrNotConverged.
//
// Complexity: O(n) per rotation update plus O(n²) for the pivot search;
// Memory: O(n²).
func Jacobi(m mat.Matrix, tol float64, maxIter int) ([]float64, *mat.Dense, error) {
	// Stage 1: validate
	if err := square(m); err != nil {
		return nil, nil, fmt.Errorf("Jacobi: %w", err)
	}
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return nil, nil, fmt.Errorf("Jacobi: (%d,%d): %w", i, j, ErrNotSymmetric)
			}
		}
	}

	// Stage 2: work copy and accumulated rotations
	A := mat.DenseCopyOf(m)
	V := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		V.Set(i, i, 1)
	}

	// Stage 3: rotations
	var (
		converged     bool
		app, aqq, apq float64
		theta, t      float64
		c, s          float64
		akp, akq      float64
	)
	for iter := 0; ; iter++ {
		off, p, q := maxAbsOffDiag(A)
		if off < tol {
			converged = true
			break
		}
		if iter == maxIter {
			break
		}
		app, aqq, apq = A.At(p, p), A.At(q, q), A.At(p, q)
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		for k := 0; k < n; k++ {
			if k == p || k == q {
				continue
			}
			akp, akq = A.At(k, p), A.At(k, q)
			A.Set(k, p, c*akp-s*akq)
			A.Set(p, k, c*akp-s*akq)
			A.Set(k, q, s*akp+c*akq)
			A.Set(q, k, s*akp+c*akq)
		}
		A.Set(p, p, app-t*apq)
		A.Set(q, q, aqq+t*apq)
		A.Set(p, q, 0)
		A.Set(q, p, 0)

		for k := 0; k < n; k++ {
			akp, akq = V.At(k, p), V.At(k, q)
			V.Set(k, p, c*akp-s*akq)
			V.Set(k, q, s*akp+c*akq)
		}
	}
	if !converged {
		return nil, nil, fmt.Errorf("Jacobi: %d rotations: %w", maxIter, ErrNotConverged)
	}

	// Stage 4: ascending eigenvalues, columns permuted alongside
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return A.At(order[i], order[i]) < A.At(order[j], order[j]) })
	vals := make([]float64, n)
	vecs := mat.NewDense(n, n, nil)
	for k, col := range order {
		vals[k] = A.At(col, col)
		for i := 0; i < n; i++ {
			vecs.Set(i, k, V.At(i, col))
		}
	}

	return vals, vecs, nil
}
