// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
)

func TestJordanForm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    *matrix.Dense[*big.Rat]
		j    *matrix.Dense[*big.Rat]
	}{
		{
			"two blocks of size two",
			ratMatrix(t, [][]int64{{6, 5, -2, -3}, {-3, -1, 3, 3}, {2, 1, -2, -3}, {-1, 1, 5, 5}}),
			ratMatrix(t, [][]int64{{2, 1, 0, 0}, {0, 2, 0, 0}, {0, 0, 2, 1}, {0, 0, 0, 2}}),
		},
		{
			"distinct eigenvalues",
			ratMatrix(t, [][]int64{{2, 1}, {1, 2}}),
			ratMatrix(t, [][]int64{{1, 0}, {0, 3}}),
		},
		{
			"single block",
			ratMatrix(t, [][]int64{{2, 1, 0}, {0, 2, 1}, {0, 0, 2}}),
			ratMatrix(t, [][]int64{{2, 1, 0}, {0, 2, 1}, {0, 0, 2}}),
		},
		{
			"mixed",
			ratMatrix(t, [][]int64{{3, 0, 0}, {0, 1, 1}, {0, 0, 1}}),
			ratMatrix(t, [][]int64{{1, 1, 0}, {0, 1, 0}, {0, 0, 3}}),
		},
		{
			"scalar",
			ratMatrix(t, [][]int64{{5, 0}, {0, 5}}),
			ratMatrix(t, [][]int64{{5, 0}, {0, 5}}),
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			P, J, err := matrix.JordanForm(tc.m)
			require.NoError(t, err)
			requireEqualMatrix[*big.Rat](t, tc.j, J)
			requireEqualMatrix[*big.Rat](t, mustMul[*big.Rat](t, tc.m, P), mustMul[*big.Rat](t, P, J))

			det, err := matrix.Det(P)
			require.NoError(t, err)
			require.NotZero(t, det.Sign())
		})
	}
}

func TestJordanForm_Options(t *testing.T) {
	t.Parallel()

	m := ratMatrix(t, [][]int64{{1, 1}, {0, 1}})
	P, J, err := matrix.JordanForm(m, matrix.WithCalcTransform(false))
	require.NoError(t, err)
	require.Nil(t, P)
	requireEqualMatrix[*big.Rat](t, m, J)

	empty, err := matrix.Zeros[*big.Rat](rat, 0, 0)
	require.NoError(t, err)
	P, J, err = matrix.JordanForm(empty)
	require.NoError(t, err)
	require.Equal(t, 0, P.Rows())
	require.Equal(t, 0, J.Rows())
}

func TestJordanForm_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.JordanForm(ratMatrix(t, [][]int64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, _, err = matrix.JordanForm(ratMatrix(t, [][]int64{{0, -1}, {1, 0}}))
	require.ErrorIs(t, err, matrix.ErrEigenIncomplete)

	// incompleteness is an error even when eigenvalue queries tolerate it
	_, _, err = matrix.JordanForm(ratMatrix(t, [][]int64{{0, -1}, {1, 0}}), matrix.WithErrorWhenIncomplete(false))
	require.ErrorIs(t, err, matrix.ErrEigenIncomplete)
}

func TestJordanForm_Complex(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"0", "-1"}, {"1", "0"}})
	P, J, err := matrix.JordanForm(m)
	require.NoError(t, err)
	requireEqualMatrix[expr.Expr](t, exprMatrix(t, [][]string{{"-I", "0"}, {"0", "I"}}), J)
	requireEqualMatrix[expr.Expr](t, mustMul[expr.Expr](t, m, P), mustMul[expr.Expr](t, P, J))
}
