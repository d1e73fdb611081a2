// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
)

// system is the 3×4 rank-2 coefficient matrix shared by the reduction and
// Gauss-Jordan tests.
func system(t *testing.T) *matrix.Dense[*big.Rat] {
	return ratMatrix(t, [][]int64{{1, 2, 1, 1}, {1, 2, 2, -1}, {2, 4, 0, 6}})
}

func TestRREF(t *testing.T) {
	t.Parallel()

	want := ratMatrix(t, [][]int64{{1, 2, 0, 3}, {0, 0, 1, -2}, {0, 0, 0, 0}})
	for _, last := range []bool{true, false} {
		r, pivots, err := matrix.RREF(system(t), matrix.WithNormalizeLast(last))
		require.NoError(t, err)
		require.Equal(t, []int{0, 2}, pivots)
		requireEqualMatrix[*big.Rat](t, want, r)
	}

	// idempotent
	r, _, err := matrix.RREF(want)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, want, r)
}

func TestEchelonForm(t *testing.T) {
	t.Parallel()

	ech, pivots, err := matrix.EchelonForm(system(t))
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, pivots)

	isEch, err := matrix.IsEchelon(ech)
	require.NoError(t, err)
	require.True(t, isEch.IsTrue())
}

func TestRank(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    *matrix.Dense[*big.Rat]
		want int
	}{
		{"system", system(t), 2},
		{"singular 2x2", ratMatrix(t, [][]int64{{1, 2}, {2, 4}}), 1},
		{"regular 2x2", ratMatrix(t, [][]int64{{1, 2}, {3, 4}}), 2},
		{"zero 2x2", ratMatrix(t, [][]int64{{0, 0}, {0, 0}}), 0},
		{"row", ratMatrix(t, [][]int64{{0, 0, 3}}), 1},
		{"identity 3", ratMatrix(t, [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), 3},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := matrix.Rank(tc.m)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	empty, err := matrix.Zeros[*big.Rat](rat, 0, 3)
	require.NoError(t, err)
	got, err := matrix.Rank(empty)
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestSubspaces(t *testing.T) {
	t.Parallel()

	a := system(t)

	ns, err := matrix.Nullspace(a)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{-2}, {1}, {0}, {0}}), ns[0])
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{-3}, {0}, {2}, {1}}), ns[1])
	for _, v := range ns {
		zero, err := matrix.IsZeroMatrix(mustMul[*big.Rat](t, a, v))
		require.NoError(t, err)
		require.True(t, zero.IsTrue())
	}

	cs, err := matrix.Columnspace(a)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1}, {2}, {0}}), cs[1])

	rs, err := matrix.Rowspace(a)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	require.Equal(t, 4, rs[0].Cols())
}

func TestRREF_Symbolic(t *testing.T) {
	t.Parallel()

	var assumed int
	hook := matrix.WithPivotHook(func(ev matrix.PivotEvent) {
		if ev.Assumed {
			assumed++
		}
	})
	r, pivots, err := matrix.RREF(exprMatrix(t, [][]string{{"a", "b"}, {"c", "d"}}), hook)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, pivots)
	require.Equal(t, 2, assumed)
	requireEqualMatrix[expr.Expr](t, exprMatrix(t, [][]string{{"1", "0"}, {"0", "1"}}), r)
}

func TestPermuteComplexityRight(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"x", "1", "y"}, {"z", "0", "2"}})
	out, perm, err := matrix.PermuteComplexityRight(m)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 0}, perm)
	first, err := out.Col(0)
	require.NoError(t, err)
	requireEqualMatrix[expr.Expr](t, exprMatrix(t, [][]string{{"1"}, {"0"}}), first)
}
