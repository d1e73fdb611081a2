// SPDX-License-Identifier: MIT

// Package ring defines the contracts the matrix engine uses to talk to
// coefficient types it knows nothing about.
//
// The central piece is the three-valued zero test: for symbolic entries the
// question "is this element zero?" is frequently undecidable, so IsZero returns
// True, False or Unknown rather than a bool. Every algorithm in package matrix
// receives its Oracle explicitly (through the Domain attached to the matrix, or
// an override option) and degrades gracefully on Unknown answers.
//
// Beyond the mandatory Domain arithmetic, optional capabilities are discovered
// with type assertions:
//
//	Sqrter       square roots (Cholesky, QR norms)
//	Conjugator   complex conjugation and realness (Hermitian checks)
//	RootFinder   polynomial roots with multiplicity (eigenvalues)
//	Symbolic     fresh symbols and free-symbol sets (free parameters)
//	Floating     float literals, rationalization and evaluation
//	Orderer      a canonical total order (sorted eigen results)
//	Expander     expansion-based zero test (fraction-free determinant)
//	ZeroProver   a stronger "equals zero" proof (pivot pass 3)
//	GCDer        common divisors (primitive eigenvectors)
//
// Rat is the reference exact domain over math/big rationals, where every zero
// test is decided.
package ring
