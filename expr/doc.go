// SPDX-License-Identifier: MIT

// Package expr is a small exact symbolic algebra used as a matrix coefficient
// domain.
//
// Expressions are built from rational and floating-point literals, symbols,
// sums, products, integer powers and square roots. The constructors keep the
// tree lightly normalized; Simplify maps an expression to a canonical rational
// function over Q whose indeterminates are symbols and square-root radicals,
// which makes zero testing exact for everything except nested radicals of
// symbolic radicands.
//
// Conventions:
//   - Symbols are assumed real, and non-negative under a square root, so
//     sqrt(x^2) simplifies to x.
//   - Floating-point literals are carried exactly through Simplify and turned
//     back into floats on output.
//
// Field adapts the package to ring.Domain together with every optional
// capability the matrix engine can use.
package expr
