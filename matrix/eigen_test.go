// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
)

func TestEigenvals_Rational(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		m     *matrix.Dense[*big.Rat]
		vals  []string
		mults []int
	}{
		{"symmetric", ratMatrix(t, [][]int64{{2, 1}, {1, 2}}), []string{"1", "3"}, []int{1, 1}},
		{"diagonal", ratMatrix(t, [][]int64{{3, 0, 0}, {0, 1, 0}, {0, 0, 2}}), []string{"1", "2", "3"}, []int{1, 1, 1}},
		{"defective", ratMatrix(t, [][]int64{{2, 1}, {0, 2}}), []string{"2"}, []int{2}},
		{"rational roots", ratMatrix(t, [][]int64{{1, 2}, {3, 2}}), []string{"-1", "4"}, []int{1, 1}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := matrix.Eigenvals(tc.m)
			require.NoError(t, err)
			require.Len(t, got, len(tc.vals))
			for k, r := range got {
				requireRatEqual(t, tc.vals[k], r.Value)
				require.Equal(t, tc.mults[k], r.Mult)
			}
		})
	}
}

func TestEigenvals_Incomplete(t *testing.T) {
	t.Parallel()

	rot := ratMatrix(t, [][]int64{{0, -1}, {1, 0}})
	_, err := matrix.Eigenvals(rot)
	require.ErrorIs(t, err, matrix.ErrEigenIncomplete)
	require.ErrorIs(t, err, matrix.ErrMatrixNotImplemented)

	got, err := matrix.Eigenvals(rot, matrix.WithErrorWhenIncomplete(false))
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = matrix.Eigenvals(ratMatrix(t, [][]int64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	got, err = matrix.Eigenvals(ratMatrix(t, nil))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEigenvals_Complex(t *testing.T) {
	t.Parallel()

	got, err := matrix.Eigenvals(exprMatrix(t, [][]string{{"0", "-1"}, {"1", "0"}}))
	require.NoError(t, err)
	require.Len(t, got, 2)
	requireExprEqual(t, expr.Neg(expr.I), got[0].Value)
	requireExprEqual(t, expr.I, got[1].Value)
}

func TestEigenvals_Symbolic(t *testing.T) {
	t.Parallel()

	got, err := matrix.Eigenvals(exprMatrix(t, [][]string{{"a", "b"}, {"0", "c"}}))
	require.NoError(t, err)
	require.Len(t, got, 2)
	values := []expr.Expr{got[0].Value, got[1].Value}
	require.ElementsMatch(t, []string{"a", "c"}, []string{values[0].String(), values[1].String()})
}

func TestEigenvects(t *testing.T) {
	t.Parallel()

	m := ratMatrix(t, [][]int64{{2, 1}, {1, 2}})
	ts, err := matrix.Eigenvects(m)
	require.NoError(t, err)
	require.Len(t, ts, 2)
	for _, tr := range ts {
		require.Len(t, tr.Basis, tr.Mult)
		for _, v := range tr.Basis {
			lv, err := matrix.Scale(v, tr.Value)
			require.NoError(t, err)
			requireEqualMatrix[*big.Rat](t, lv, mustMul[*big.Rat](t, m, v))
		}
	}
	requireRatEqual(t, "1", ts[0].Value)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{-1}, {1}}), ts[0].Basis[0])
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1}, {1}}), ts[1].Basis[0])
}

func TestEigenvects_Primitive(t *testing.T) {
	t.Parallel()

	m := ratMatrix(t, [][]int64{{3, 1}, {0, 1}})
	ts, err := matrix.Eigenvects(m)
	require.NoError(t, err)
	requireRatEqual(t, "1", ts[0].Value)
	requireEqualMatrix[*big.Rat](t, ratMatrixS(t, [][]string{{"-1/2"}, {"1"}}), ts[0].Basis[0])

	ts, err = matrix.Eigenvects(m, matrix.WithPrimitive(true))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{-1}, {2}}), ts[0].Basis[0])
}

func TestEigenvects_Floats(t *testing.T) {
	t.Parallel()

	ts, err := matrix.Eigenvects(exprMatrix(t, [][]string{{"2.0", "1.0"}, {"1.0", "2.0"}}))
	require.NoError(t, err)
	require.Len(t, ts, 2)
	for k, want := range []float64{1, 3} {
		f, ok := expr.AsFloat(ts[k].Value)
		require.True(t, ok)
		require.InDelta(t, want, f, 1e-12)
	}
}

func TestEigenvects_Defective(t *testing.T) {
	t.Parallel()

	ts, err := matrix.Eigenvects(ratMatrix(t, [][]int64{{1, 1}, {0, 1}}))
	require.NoError(t, err)
	require.Len(t, ts, 1)
	require.Equal(t, 2, ts[0].Mult)
	require.Len(t, ts[0].Basis, 1)
}

func TestIsDiagonalizable(t *testing.T) {
	t.Parallel()

	rot := exprMatrix(t, [][]string{{"0", "-1"}, {"1", "0"}})
	cases := []struct {
		name string
		run  func() (bool, error)
		want bool
	}{
		{"symmetric", func() (bool, error) {
			return matrix.IsDiagonalizable[*big.Rat](ratMatrix(t, [][]int64{{1, 7}, {7, 2}}), nil)
		}, true},
		{"jordan block", func() (bool, error) {
			return matrix.IsDiagonalizable[*big.Rat](ratMatrix(t, [][]int64{{1, 1}, {0, 1}}), nil)
		}, false},
		{"distinct triangular", func() (bool, error) {
			return matrix.IsDiagonalizable[*big.Rat](ratMatrix(t, [][]int64{{1, 2}, {0, 3}}), nil)
		}, true},
		{"rectangular", func() (bool, error) {
			return matrix.IsDiagonalizable[*big.Rat](ratMatrix(t, [][]int64{{1, 2}}), nil)
		}, false},
		{"rotation over C", func() (bool, error) {
			return matrix.IsDiagonalizable[expr.Expr](rot, nil)
		}, true},
		{"rotation reals only", func() (bool, error) {
			return matrix.IsDiagonalizable[expr.Expr](rot, nil, matrix.WithRealsOnly(true))
		}, false},
		{"hermitian", func() (bool, error) {
			return matrix.IsDiagonalizable[expr.Expr](exprMatrix(t, [][]string{{"1", "I"}, {"-I", "1"}}), nil)
		}, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.run()
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := matrix.IsDiagonalizable[*big.Rat](ratMatrix(t, [][]int64{{0, -1}, {1, 0}}), nil)
	require.ErrorIs(t, err, matrix.ErrEigenIncomplete)
}

func TestDiagonalize(t *testing.T) {
	t.Parallel()

	m := ratMatrix(t, [][]int64{{3, 0}, {2, 1}})

	P, D, err := matrix.Diagonalize[*big.Rat](m, nil)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{3, 0}, {0, 1}}), D)
	requireEqualMatrix[*big.Rat](t, mustMul[*big.Rat](t, m, P), mustMul[*big.Rat](t, P, D))

	P, D, err = matrix.Diagonalize[*big.Rat](m, nil, matrix.WithSort(true))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1, 0}, {0, 3}}), D)
	requireEqualMatrix[*big.Rat](t, mustMul[*big.Rat](t, m, P), mustMul[*big.Rat](t, P, D))

	_, _, err = matrix.Diagonalize[*big.Rat](ratMatrix(t, [][]int64{{1, 1}, {0, 1}}), nil)
	require.ErrorIs(t, err, matrix.ErrNotDiagonalizable)
	_, _, err = matrix.Diagonalize[*big.Rat](ratMatrix(t, [][]int64{{1, 1}}), nil)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestDiagonalize_Normalize(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"2", "1"}, {"1", "2"}})
	P, D, err := matrix.Diagonalize[expr.Expr](m, nil, matrix.WithNormalize(true))
	require.NoError(t, err)
	requireEqualMatrix[expr.Expr](t, mustMul[expr.Expr](t, m, P), mustMul[expr.Expr](t, P, D))

	pt, err := matrix.Transpose(P)
	require.NoError(t, err)
	id, err := matrix.Identity[expr.Expr](field, 2)
	require.NoError(t, err)
	requireEqualMatrix[expr.Expr](t, id, mustMul[expr.Expr](t, pt, P))

	_, _, err = matrix.Diagonalize[*big.Rat](ratMatrix(t, [][]int64{{2, 1}, {1, 2}}), nil, matrix.WithNormalize(true))
	require.ErrorIs(t, err, matrix.ErrNotRepresentable)
}

func TestEigenCache_Reuse(t *testing.T) {
	t.Parallel()

	m := ratMatrix(t, [][]int64{{1, 2}, {0, 3}})
	pivots := 0
	hook := matrix.WithPivotHook(func(matrix.PivotEvent) { pivots++ })

	cache := &matrix.EigenCache[*big.Rat]{}
	ok, err := matrix.IsDiagonalizable[*big.Rat](m, cache, matrix.WithClearCache(false), hook)
	require.NoError(t, err)
	require.True(t, ok)
	require.Positive(t, pivots)

	// warm cache: no elimination at all
	pivots = 0
	_, D, err := matrix.Diagonalize[*big.Rat](m, cache, hook)
	require.NoError(t, err)
	require.Zero(t, pivots)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1, 0}, {0, 3}}), D)

	// Diagonalize cleared the cache on return
	_, _, err = matrix.Diagonalize[*big.Rat](m, cache, hook)
	require.NoError(t, err)
	require.Positive(t, pivots)

	// a cache filled for another matrix is not reused
	other := ratMatrix(t, [][]int64{{1, 1}, {0, 1}})
	_, err = matrix.IsDiagonalizable[*big.Rat](m, cache, matrix.WithClearCache(false))
	require.NoError(t, err)
	ok, err = matrix.IsDiagonalizable[*big.Rat](other, cache)
	require.NoError(t, err)
	require.False(t, ok)

	cache.Clear()
	_, _, err = matrix.Diagonalize[*big.Rat](other, cache)
	require.ErrorIs(t, err, matrix.ErrNotDiagonalizable)
}
