// SPDX-License-Identifier: MIT

// Package symla is an exact linear-algebra engine over generic rings.
//
// Matrices hold elements of any type with a ring.Domain: exact rationals
// (ring.Rat over *big.Rat) or symbolic expressions (expr.Field over
// expr.Expr). Every algorithm asks a three-valued zero oracle whether an
// entry is zero, so symbolic pivots that cannot be decided are handled
// explicitly instead of being silently guessed.
//
// 🧭 Packages
//
//   - ring: the Domain interface, capability interfaces (Sqrter, RootFinder,
//     Orderer, ...) and the Ternary oracle answer; Rat is the exact
//     rational domain.
//   - expr: a small symbolic kernel (sums, products, integer powers, square
//     roots, the imaginary unit) with a rational-function normal form.
//   - matrix: Dense[E], reduction (RREF, rank, subspaces), determinants
//     (Bareiss, Berkowitz, LU), decompositions (LU, fraction-free LU,
//     Cholesky, LDL, QR), solvers, inverses, pseudo-inverse, eigenvalues,
//     diagonalization and the Jordan form.
//   - numeric: gonum bridge for float answers and exact-vs-float
//     cross-checks.
//   - cmd/symla: batch command over JSON, YAML and TOML matrix documents.
//
// ⚙️ Quick start
//
//	m, _ := matrix.FromRows[*big.Rat](ring.NewRat(), rows)
//	d, _ := matrix.Det(m, matrix.WithDetMethod(matrix.DetBerkowitz))
//	P, J, _ := matrix.JordanForm(m)
//
// Options are functional (matrix.With...), errors are sentinels matched with
// errors.Is, and debug events go to the zap logger given by
// matrix.WithLogger.
package symla
