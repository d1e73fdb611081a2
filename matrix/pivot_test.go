// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

func exprCol(t *testing.T, src ...string) []expr.Expr {
	t.Helper()
	out := make([]expr.Expr, len(src))
	for i, s := range src {
		out[i] = mustExpr(t, s)
	}

	return out
}

func TestFindPivot(t *testing.T) {
	t.Parallel()

	t.Run("rational first nonzero", func(t *testing.T) {
		t.Parallel()
		p := matrix.FindPivot[*big.Rat](rat, []*big.Rat{ring.R(0, 1), ring.R(0, 1), ring.R(5, 1)})
		require.True(t, p.Found())
		require.Equal(t, 2, p.Offset)
		require.False(t, p.AssumedNonzero)
		require.Empty(t, p.Newly)
	})

	t.Run("empty and all zero", func(t *testing.T) {
		t.Parallel()
		require.False(t, matrix.FindPivot[*big.Rat](rat, nil).Found())
		require.Equal(t, -1, matrix.FindPivot[*big.Rat](rat, []*big.Rat{ring.R(0, 1)}).Offset)
	})

	t.Run("decided before undecided", func(t *testing.T) {
		t.Parallel()
		p := matrix.FindPivot[expr.Expr](field, exprCol(t, "0", "x", "1"))
		require.Equal(t, 2, p.Offset)
		require.False(t, p.AssumedNonzero)
	})

	t.Run("simplification proves zero", func(t *testing.T) {
		t.Parallel()
		p := matrix.FindPivot[expr.Expr](field, exprCol(t, "(x+1)^2 - x^2 - 2*x - 1", "y"))
		require.Equal(t, 1, p.Offset)
		require.True(t, p.AssumedNonzero)
		require.Len(t, p.Newly, 1)
		require.Equal(t, 0, p.Newly[0].Index)
		require.Equal(t, ring.True, expr.IsZero(p.Newly[0].Value))
	})

	t.Run("all undecided zero", func(t *testing.T) {
		t.Parallel()
		p := matrix.FindPivot[expr.Expr](field, exprCol(t, "x*(x+1) - x^2 - x"))
		require.False(t, p.Found())
		require.Len(t, p.Newly, 1)
	})

	t.Run("float column picks largest magnitude", func(t *testing.T) {
		t.Parallel()
		p := matrix.FindPivot[expr.Expr](field, exprCol(t, "0.5", "3.0", "2.0"))
		require.Equal(t, 1, p.Offset)
	})

	t.Run("float noise is cleared", func(t *testing.T) {
		t.Parallel()
		tolerant := matrix.WithIsZero(func(x expr.Expr) ring.Ternary {
			if f, ok := expr.AsFloat(x); ok {
				return ring.Of(math.Abs(f) < 1e-12)
			}
			return expr.IsZero(x)
		})
		col := []expr.Expr{expr.Float(1e-14), expr.Int(0), expr.Float(-1e-15)}

		p := matrix.FindPivot[expr.Expr](field, col, tolerant)
		require.False(t, p.Found())
		require.Equal(t, -1, p.Offset)
		require.Len(t, p.Newly, 2)
		require.Equal(t, 0, p.Newly[0].Index)
		require.Equal(t, 2, p.Newly[1].Index)
		for _, d := range p.Newly {
			require.Equal(t, ring.True, expr.IsZero(d.Value))
		}
	})

	t.Run("float column of exact zeros", func(t *testing.T) {
		t.Parallel()
		p := matrix.FindPivot[expr.Expr](field, []expr.Expr{expr.Float(0), expr.Int(0)})
		require.False(t, p.Found())
		require.Empty(t, p.Newly)
	})
}

func TestFindPivotNaive(t *testing.T) {
	t.Parallel()

	col := exprCol(t, "x*(x+1) - x^2 - x", "z")

	p := matrix.FindPivotNaive[expr.Expr](field, col, false)
	require.True(t, p.AssumedNonzero)
	require.Equal(t, 0, p.Offset)
	require.Empty(t, p.Newly)

	p = matrix.FindPivotNaive[expr.Expr](field, exprCol(t, "(x+1)^2 - x^2 - 2*x", "z"), true)
	require.Equal(t, 0, p.Offset)
	require.False(t, p.AssumedNonzero)
	require.Len(t, p.Newly, 1)
	requireExprEqual(t, expr.Int(1), p.Value)
}
