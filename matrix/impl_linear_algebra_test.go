// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the arithmetic kernels:
// Add, Sub, Mul, Scale, Transpose, Pow, stacking, Trace and equality.
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

func TestArithmetic_Basic(t *testing.T) {
	t.Parallel()

	a := ratMatrix(t, [][]int64{{1, 2}, {3, 4}})
	b := ratMatrix(t, [][]int64{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{6, 8}, {10, 12}}), sum)

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{-4, -4}, {-4, -4}}), diff)

	prod, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{19, 22}, {43, 50}}), prod)

	sc, err := matrix.Scale(a, ring.R(1, 2))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrixS(t, [][]string{{"1/2", "1"}, {"3/2", "2"}}), sc)

	tr, err := matrix.Transpose(ratMatrix(t, [][]int64{{1, 2, 3}}))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1}, {2}, {3}}), tr)

	trace, err := matrix.Trace(a)
	require.NoError(t, err)
	requireRatEqual(t, "5", trace)
}

func TestArithmetic_Errors(t *testing.T) {
	t.Parallel()

	a := ratMatrix(t, [][]int64{{1, 2}, {3, 4}})
	c := ratMatrix(t, [][]int64{{1, 2, 3}})

	_, err := matrix.Add(a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Trace(c)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Add[*big.Rat](nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.HStack[*big.Rat](a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestPow(t *testing.T) {
	t.Parallel()

	a := ratMatrix(t, [][]int64{{1, 1}, {0, 1}})
	cases := []struct {
		name string
		k    int
		want *matrix.Dense[*big.Rat]
	}{
		{"zero", 0, ratMatrix(t, [][]int64{{1, 0}, {0, 1}})},
		{"one", 1, a},
		{"five", 5, ratMatrix(t, [][]int64{{1, 5}, {0, 1}})},
		{"minus three", -3, ratMatrix(t, [][]int64{{1, -3}, {0, 1}})},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := matrix.Pow(a, tc.k)
			require.NoError(t, err)
			requireEqualMatrix[*big.Rat](t, tc.want, got)
		})
	}

	_, err := matrix.Pow(ratMatrix(t, [][]int64{{1, 2}, {2, 4}}), -1)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestStack(t *testing.T) {
	t.Parallel()

	a := ratMatrix(t, [][]int64{{1}, {2}})
	b := ratMatrix(t, [][]int64{{3, 4}, {5, 6}})

	h, err := matrix.HStack[*big.Rat](a, b)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{1, 3, 4}, {2, 5, 6}}), h)

	v, err := matrix.VStack[*big.Rat](b, ratMatrix(t, [][]int64{{7, 8}}))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{3, 4}, {5, 6}, {7, 8}}), v)
}

func TestConjugateTranspose(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"1 + I", "2"}, {"x", "-I"}})
	h, err := matrix.ConjugateTranspose(m)
	require.NoError(t, err)
	requireEqualMatrix[expr.Expr](t, exprMatrix(t, [][]string{{"1 - I", "x"}, {"2", "I"}}), h)
}

func TestEqual_StructuralVsSimplified(t *testing.T) {
	t.Parallel()

	a := exprMatrix(t, [][]string{{"(x+1)^2"}})
	b := exprMatrix(t, [][]string{{"x^2 + 2*x + 1"}})

	eq, err := matrix.EqualSimplified(a, b)
	require.NoError(t, err)
	require.Equal(t, ring.True, eq)

	eq, err = matrix.EqualSimplified(a, exprMatrix(t, [][]string{{"x^2"}}))
	require.NoError(t, err)
	require.Equal(t, ring.False, eq)

	same, err := matrix.Equal(a, a.Copy())
	require.NoError(t, err)
	require.True(t, same)

	other, err := matrix.Equal[*big.Rat](ratMatrix(t, [][]int64{{1}}), ratMatrix(t, [][]int64{{1, 2}}))
	require.NoError(t, err)
	require.False(t, other)
}

func TestGenericMatrixPath(t *testing.T) {
	t.Parallel()

	a := ratMatrix(t, [][]int64{{2, 0}, {1, 3}})
	got, err := matrix.Mul[*big.Rat](hide[*big.Rat]{a}, hide[*big.Rat]{a})
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, ratMatrix(t, [][]int64{{4, 0}, {5, 9}}), got)

	d, err := matrix.Det[*big.Rat](hide[*big.Rat]{a})
	require.NoError(t, err)
	requireRatEqual(t, "6", d)
}
