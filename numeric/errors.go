// SPDX-License-Identifier: MIT

package numeric

import "errors"

var (
	// ErrEmpty is returned for matrices with a zero dimension; gonum cannot
	// represent them.
	ErrEmpty = errors.New("numeric: empty matrix")

	// ErrNotNumeric means an entry (or an exact result) still contains free
	// symbols and has no numeric value.
	ErrNotNumeric = errors.New("numeric: value is not numeric")

	// ErrNotReal means a value has a non-zero imaginary part where a real
	// number is required.
	ErrNotReal = errors.New("numeric: value is not real")

	// ErrNonSquare is returned by Det, Eigenvalues and Jacobi.
	ErrNonSquare = errors.New("numeric: matrix is not square")

	// ErrNotSymmetric is returned by Jacobi when the input is not symmetric
	// within tolerance.
	ErrNotSymmetric = errors.New("numeric: matrix is not symmetric")

	// ErrNotConverged is returned when an iterative solver gives up.
	ErrNotConverged = errors.New("numeric: eigen decomposition did not converge")

	// ErrMismatch is returned by the Check* functions when the exact and the
	// float result disagree.
	ErrMismatch = errors.New("numeric: exact and float results disagree")
)
