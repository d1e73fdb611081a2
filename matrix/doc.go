// SPDX-License-Identifier: MIT

// Package matrix is an exact linear-algebra engine over an arbitrary
// coefficient domain (ring.Domain) with a three-valued zero oracle.
//
// The matrix package provides:
//
//   - Dense[E], a row-major matrix bound to its domain, plus constructors
//     (FromRows, Identity, Zeros, Diag, JordanBlock, PermutationMatrix).
//   - Pivot selection under uncertainty (FindPivot, FindPivotNaive): entries
//     whose zero-ness is undecided are simplified, proved, or finally assumed
//     non-zero; every assumption is reported to WithPivotHook and logged.
//   - Row reduction: EchelonForm, RREF, Rank, Nullspace, Columnspace, Rowspace.
//   - Determinants (Bareiss, Berkowitz, LU), CharPoly, minors and Adjugate.
//   - Decompositions: LUDecompositionSimple, LUDecomposition,
//     LUDecompositionFF, Cholesky, LDLDecomposition, QRDecomposition.
//   - Solvers: Inverse, Solve, LUSolve, triangular solves, GaussJordanSolve
//     (parametric general solution), CholeskySolve, LDLSolve, QRSolve,
//     SolveLeastSquares, Pinv, PinvSolve.
//   - Eigen: Eigenvals, Eigenvects, IsDiagonalizable, Diagonalize,
//     JordanForm, IsNilpotent.
//
// Every public function validates its input, works on a private copy and
// returns fresh values; errors are package sentinels wrapped with the
// operation name, matched with errors.Is.
//
// Over exact numeric domains (ring.Rat) every answer is decided. Over
// symbolic domains (expr.Field) the oracle may answer Unknown, in which case
// pivots are assumed non-zero, as documented per operation.
//
// Behaviour is tuned with functional options (WithDetMethod,
// WithInverseMethod, WithIntermediateSimplify, WithRankCheck, ...). The
// engine is single-threaded; a Dense value may be shared by readers but an
// EigenCache may not.
package matrix
