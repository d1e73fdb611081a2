// SPDX-License-Identifier: MIT

// Package numeric is the floating-point side of symla.
//
// The exact engine in package matrix never rounds. When a float answer is
// wanted, or when an exact result should be sanity-checked, this package
// converts a matrix.Matrix into a gonum *mat.Dense and runs gonum's LU,
// eigen and solve routines on it:
//
//	d, err := numeric.ToDense[*big.Rat](m, numeric.RatEvaluator)
//	det, err := numeric.Det(d)
//
// CheckDet and CheckEigenvals compute the same quantity both ways and report
// ErrMismatch when the exact value, evaluated to complex128, disagrees with
// the float result beyond a Tolerance.
//
// Jacobi is a self-contained cyclic-rotation eigen solver for real symmetric
// input. It is slower than gonum's EigenSym but keeps the rotation matrix in
// plain view, which is handy when debugging conditioning problems.
package numeric
