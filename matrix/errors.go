// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All algorithms MUST return these sentinels and tests MUST check them
// via errors.Is. No algorithm should panic on user-triggered error conditions.
// Panics are reserved for programmer errors (mistyped oracle overrides).

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Operations wrap sentinels with their tag via
// matrixErrorf ("Op: %w"); callers match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> dimension mismatch -> structural violations
// (non-square, not Hermitian, not triangular) -> singularity/rank
// -> representability -> not implemented.

var (
	// ErrBadShape is returned when a requested shape is invalid (negative
	// sizes, ragged rows, data length not equal to rows*cols).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when the matrix is not invertible, or when a
	// solver meets a provably zero pivot.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNoSolution signals an inconsistent linear system.
	ErrNoSolution = errors.New("matrix: linear system has no solution")

	// ErrRankDeficient is returned by LU with rank checking when the rank is
	// strictly less than the number of rows or columns.
	ErrRankDeficient = errors.New("matrix: rank is less than the number of rows or columns")

	// ErrNotHermitian signals that a Hermitian (or symmetric) matrix was required.
	ErrNotHermitian = errors.New("matrix: matrix is not Hermitian")

	// ErrNotTriangular signals that a triangular or diagonal matrix was required.
	ErrNotTriangular = errors.New("matrix: matrix is not triangular")

	// ErrNotRepresentable indicates that the coefficient domain cannot express
	// a required value (e.g., a square root, a symbolic parameter).
	ErrNotRepresentable = errors.New("matrix: value not representable in domain")

	// ErrNotDiagonalizable is returned by Diagonalize.
	ErrNotDiagonalizable = errors.New("matrix: matrix is not diagonalizable")

	// ErrMatrixNotImplemented marks an intentionally unsupported case
	// (e.g., rank-deficient pseudoinverse, an unnormalizable QR column).
	ErrMatrixNotImplemented = errors.New("matrix: operation not implemented")

	// ErrMatrixEigenFailed indicates an inconsistent eigen computation:
	// an empty eigenspace, or Jordan block sizes that do not add up.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")
)

// Derived sentinels. Each wraps its parent so callers can match either.
var (
	// ErrEigenIncomplete means the characteristic polynomial could not be
	// fully factored over the domain. errors.Is(err, ErrMatrixNotImplemented) holds.
	ErrEigenIncomplete = fmt.Errorf("%w: could not compute all eigenvalues", ErrMatrixNotImplemented)

	// ErrUnderdetermined is returned for systems with fewer rows than columns
	// where a unique answer is required. errors.Is(err, ErrDimensionMismatch) holds.
	ErrUnderdetermined = fmt.Errorf("%w: underdetermined system", ErrDimensionMismatch)

	// ErrOverdetermined is returned for systems with more rows than columns
	// by square-only solvers. errors.Is(err, ErrDimensionMismatch) holds.
	ErrOverdetermined = fmt.Errorf("%w: overdetermined system", ErrDimensionMismatch)
)
