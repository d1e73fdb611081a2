// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures over the two shipped domains
//     (ring.Rat and expr.Field).
//   - Compare matrices by value: exact for rationals, through the canonical
//     zero test for expressions.

package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

var (
	rat   = ring.NewRat()
	field = expr.NewField()
)

// mustRat parses "a" or "a/b" into a rational or fails the test.
func mustRat(t *testing.T, s string) *big.Rat {
	t.Helper()
	q, ok := new(big.Rat).SetString(s)
	require.Truef(t, ok, "bad rational %q", s)

	return q
}

// ratMatrix builds a rational matrix from integer rows.
func ratMatrix(t *testing.T, rows [][]int64) *matrix.Dense[*big.Rat] {
	t.Helper()
	data := make([][]*big.Rat, len(rows))
	for i, r := range rows {
		data[i] = make([]*big.Rat, len(r))
		for j, v := range r {
			data[i][j] = big.NewRat(v, 1)
		}
	}
	m, err := matrix.FromRows[*big.Rat](rat, data)
	require.NoError(t, err)

	return m
}

// ratMatrixS builds a rational matrix from "a/b" strings.
func ratMatrixS(t *testing.T, rows [][]string) *matrix.Dense[*big.Rat] {
	t.Helper()
	data := make([][]*big.Rat, len(rows))
	for i, r := range rows {
		data[i] = make([]*big.Rat, len(r))
		for j, v := range r {
			data[i][j] = mustRat(t, v)
		}
	}
	m, err := matrix.FromRows[*big.Rat](rat, data)
	require.NoError(t, err)

	return m
}

// exprMatrix parses every entry with expr.Parse.
func exprMatrix(t *testing.T, rows [][]string) *matrix.Dense[expr.Expr] {
	t.Helper()
	data := make([][]expr.Expr, len(rows))
	for i, r := range rows {
		data[i] = make([]expr.Expr, len(r))
		for j, v := range r {
			e, err := expr.Parse(v)
			require.NoErrorf(t, err, "parse %q", v)
			data[i][j] = e
		}
	}
	m, err := matrix.FromRows[expr.Expr](field, data)
	require.NoError(t, err)

	return m
}

// requireEqualMatrix asserts same shape and provably equal entries.
func requireEqualMatrix[E any](t *testing.T, want, got matrix.Matrix[E]) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	eq, err := matrix.EqualSimplified(want, got)
	require.NoError(t, err)
	require.Equalf(t, ring.True, eq, "want\n%v\ngot\n%v", want, got)
}

// requireExprEqual asserts that two expressions are provably equal.
func requireExprEqual(t *testing.T, want, got expr.Expr) {
	t.Helper()
	require.Equalf(t, ring.True, expr.EqualsZero(expr.Sub(want, got)), "want %v, got %v", want, got)
}

// requireRatEqual asserts that got equals the rational s.
func requireRatEqual(t *testing.T, s string, got *big.Rat) {
	t.Helper()
	require.Equalf(t, 0, mustRat(t, s).Cmp(got), "want %s, got %s", s, got.RatString())
}

// mustMul multiplies or fails the test.
func mustMul[E any](t *testing.T, a, b matrix.Matrix[E]) *matrix.Dense[E] {
	t.Helper()
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)

	return p
}

// hide wraps a matrix to hide its concrete type, forcing the generic
// Matrix code paths.
type hide[E any] struct{ matrix.Matrix[E] }

// mustExpr parses s or fails the test.
func mustExpr(t *testing.T, s string) expr.Expr {
	t.Helper()
	e, err := expr.Parse(s)
	require.NoError(t, err)

	return e
}
