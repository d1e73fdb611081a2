// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	id, err := matrix.Identity[*big.Rat](rat, 3)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), id)

	jb, err := matrix.JordanBlock[*big.Rat](rat, 3, ring.R(2, 1))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{2, 1, 0}, {0, 2, 1}, {0, 0, 2}}), jb)

	d, err := matrix.Diag[*big.Rat](rat, ratMatrix(t, [][]int64{{1, 2}}), ratMatrix(t, [][]int64{{3}, {4}}))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1, 2, 0}, {0, 0, 3}, {0, 0, 4}}), d)

	v := matrix.ColumnVector[*big.Rat](rat, ring.R(1, 1), ring.R(2, 1))
	require.Equal(t, 2, v.Rows())
	require.Equal(t, 1, v.Cols())

	dv := matrix.DiagValues[*big.Rat](rat, ring.R(5, 1), ring.R(6, 1))
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{5, 0}, {0, 6}}), dv)

	zl, err := matrix.ZerosLike[*big.Rat](dv)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{0, 0}, {0, 0}}), zl)

	_, err = matrix.IdentityLike[*big.Rat](ratMatrix(t, [][]int64{{1, 2}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Identity[*big.Rat](rat, -1)
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.JordanBlock[*big.Rat](rat, -2, ring.R(1, 1))
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestPermutation(t *testing.T) {
	t.Parallel()

	swaps := []matrix.Swap{{I: 0, J: 2}, {I: 1, J: 2}}
	p, err := matrix.PermutationMatrix[*big.Rat](rat, 3, swaps)
	require.NoError(t, err)

	a := ratMatrix(t, [][]int64{{1, 1}, {2, 2}, {3, 3}})
	permuted, err := matrix.PermuteRows[*big.Rat](a, swaps)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{3, 3}, {1, 1}, {2, 2}}), permuted)
	requireEqualMatrix[*big.Rat](t, permuted, mustMul[*big.Rat](t, p, a))

	_, err = matrix.PermutationMatrix[*big.Rat](rat, 2, []matrix.Swap{{I: 0, J: 5}})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	// the input is untouched
	v, _ := a.At(0, 0)
	requireRatEqual(t, "1", v)
}

func TestPredicates_Rat(t *testing.T) {
	t.Parallel()

	upper := ratMatrix(t, [][]int64{{1, 2}, {0, 3}})
	lower := ratMatrix(t, [][]int64{{1, 0}, {2, 3}})
	sym := ratMatrix(t, [][]int64{{1, 2}, {2, 3}})

	cases := []struct {
		name string
		fn   func(matrix.Matrix[*big.Rat], ...matrix.Option) (ring.Ternary, error)
		m    *matrix.Dense[*big.Rat]
		want ring.Ternary
	}{
		{"upper/upper", matrix.IsUpper[*big.Rat], upper, ring.True},
		{"upper/lower", matrix.IsUpper[*big.Rat], lower, ring.False},
		{"lower/lower", matrix.IsLower[*big.Rat], lower, ring.True},
		{"diag/upper", matrix.IsDiagonal[*big.Rat], upper, ring.False},
		{"diag/identity", matrix.IsDiagonal[*big.Rat], ratMatrix(t, [][]int64{{1, 0}, {0, 1}}), ring.True},
		{"symmetric", matrix.IsSymmetric[*big.Rat], sym, ring.True},
		{"not symmetric", matrix.IsSymmetric[*big.Rat], upper, ring.False},
		{"symmetric/rect", matrix.IsSymmetric[*big.Rat], ratMatrix(t, [][]int64{{1, 2}}), ring.False},
		{"hermitian", matrix.IsHermitian[*big.Rat], sym, ring.True},
		{"zero", matrix.IsZeroMatrix[*big.Rat], ratMatrix(t, [][]int64{{0, 0}}), ring.True},
		{"nonzero", matrix.IsZeroMatrix[*big.Rat], upper, ring.False},
		{"echelon", matrix.IsEchelon[*big.Rat], ratMatrix(t, [][]int64{{1, 2, 3}, {0, 0, 4}, {0, 0, 0}}), ring.True},
		{"not echelon", matrix.IsEchelon[*big.Rat], ratMatrix(t, [][]int64{{0, 1}, {1, 0}}), ring.False},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.fn(tc.m)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPredicates_Symbolic(t *testing.T) {
	t.Parallel()

	got, err := matrix.IsUpper(exprMatrix(t, [][]string{{"1", "2"}, {"x", "3"}}))
	require.NoError(t, err)
	require.Equal(t, ring.Unknown, got)

	got, err = matrix.IsSymmetric(exprMatrix(t, [][]string{{"1", "x"}, {"x", "2"}}))
	require.NoError(t, err)
	require.Equal(t, ring.True, got)

	got, err = matrix.IsHermitian(exprMatrix(t, [][]string{{"1", "I"}, {"-I", "2"}}))
	require.NoError(t, err)
	require.Equal(t, ring.True, got)

	got, err = matrix.IsHermitian(exprMatrix(t, [][]string{{"1", "I"}, {"I", "2"}}))
	require.NoError(t, err)
	require.Equal(t, ring.False, got)
}
