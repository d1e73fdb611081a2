// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep algorithms minimal by delegating shape/nil checks here.
//  - Return tagged sentinel errors so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).
//  - Structural predicates over entries (IsUpper, IsHermitian, ...) return a
//    ring.Ternary and live in predicates.go; they need the zero oracle.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including a typed
// nil *Dense stored in the interface.
//
// Returns ErrNilMatrix when m is nil.
// Complexity: O(1).
func ValidateNotNil[E any](m Matrix[E]) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense[E]); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
func ValidateSameShape[E any](a, b Matrix[E]) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
// Errors: ErrNonSquare.
func ValidateSquare[E any](m Matrix[E]) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateMulCompat ensures a.Cols == b.Rows.
func ValidateMulCompat[E any](a, b Matrix[E]) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompat", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameRows ensures a and b have the same number of rows
// (right-hand sides of linear systems, horizontal stacking).
func ValidateSameRows[E any](a, b Matrix[E]) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameRows", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinary is the composite NotNil(a) → NotNil(b) check used by every
// two-operand entry point.
func ValidateBinary[E any](a, b Matrix[E]) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}

	return ValidateNotNil(b)
}
