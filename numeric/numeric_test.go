// SPDX-License-Identifier: MIT
package numeric_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/numeric"
	"github.com/katalvlaran/symla/ring"
)

const eps = 1e-9

func ratMatrix(t *testing.T, rows [][]int64) *matrix.Dense[*big.Rat] {
	t.Helper()
	data := make([][]*big.Rat, len(rows))
	for i, r := range rows {
		data[i] = make([]*big.Rat, len(r))
		for j, v := range r {
			data[i][j] = big.NewRat(v, 1)
		}
	}
	m, err := matrix.FromRows[*big.Rat](ring.NewRat(), data)
	require.NoError(t, err)

	return m
}

func exprMatrix(t *testing.T, rows [][]string) *matrix.Dense[expr.Expr] {
	t.Helper()
	data := make([][]expr.Expr, len(rows))
	for i, r := range rows {
		data[i] = make([]expr.Expr, len(r))
		for j, s := range r {
			e, err := expr.Parse(s)
			require.NoError(t, err)
			data[i][j] = e
		}
	}
	m, err := matrix.FromRows[expr.Expr](expr.NewField(), data)
	require.NoError(t, err)

	return m
}

func TestToDense(t *testing.T) {
	t.Parallel()

	d, err := numeric.ToDense[*big.Rat](ratMatrix(t, [][]int64{{1, 2, 3}, {4, 5, 6}}), numeric.RatEvaluator)
	require.NoError(t, err)
	r, c := d.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 6.0, d.At(1, 2))

	d, err = numeric.ToDense[expr.Expr](exprMatrix(t, [][]string{{"1/2", "sqrt(4)"}, {"0.25", "-1"}}), numeric.ExprEvaluator)
	require.NoError(t, err)
	require.InDelta(t, 0.5, d.At(0, 0), eps)
	require.InDelta(t, 2.0, d.At(0, 1), eps)
	require.InDelta(t, 0.25, d.At(1, 0), eps)

	_, err = numeric.ToDense[expr.Expr](exprMatrix(t, [][]string{{"x"}}), numeric.ExprEvaluator)
	require.ErrorIs(t, err, numeric.ErrNotNumeric)
	_, err = numeric.ToDense[expr.Expr](exprMatrix(t, [][]string{{"I"}}), numeric.ExprEvaluator)
	require.ErrorIs(t, err, numeric.ErrNotReal)

	empty, err := matrix.Zeros[*big.Rat](ring.NewRat(), 0, 3)
	require.NoError(t, err)
	_, err = numeric.ToDense[*big.Rat](empty, numeric.RatEvaluator)
	require.ErrorIs(t, err, numeric.ErrEmpty)
}

func TestToExpr(t *testing.T) {
	t.Parallel()

	m, err := numeric.ToExpr(mat.NewDense(2, 2, []float64{1.5, 0, 0, -2}))
	require.NoError(t, err)
	v, err := m.At(0, 0)
	require.NoError(t, err)
	f, ok := expr.AsFloat(v)
	require.True(t, ok)
	require.Equal(t, 1.5, f)
}

func TestDetAndSolve(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 10})
	det, err := numeric.Det(a)
	require.NoError(t, err)
	require.InDelta(t, -3.0, det, eps)

	_, err = numeric.Det(mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, numeric.ErrNonSquare)

	x, err := numeric.Solve(mat.NewDense(2, 2, []float64{2, 1, 1, 3}), mat.NewDense(2, 1, []float64{3, 5}))
	require.NoError(t, err)
	require.InDelta(t, 0.8, x.At(0, 0), eps)
	require.InDelta(t, 1.4, x.At(1, 0), eps)

	_, err = numeric.Solve(mat.NewDense(2, 2, []float64{1, 2, 2, 4}), mat.NewDense(2, 1, []float64{1, 1}))
	require.Error(t, err)
}

func TestEigenvalues(t *testing.T) {
	t.Parallel()

	vals, err := numeric.Eigenvalues(mat.NewDense(2, 2, []float64{0, -1, 1, 0}))
	require.NoError(t, err)
	require.Len(t, vals, 2)
	require.InDelta(t, -1.0, imag(vals[0]), eps)
	require.InDelta(t, 1.0, imag(vals[1]), eps)

	vals, err = numeric.Eigenvalues(mat.NewDense(2, 2, []float64{2, 1, 1, 2}))
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(vals[0]), eps)
	require.InDelta(t, 3.0, real(vals[1]), eps)

	_, err = numeric.Eigenvalues(mat.NewDense(1, 2, nil))
	require.ErrorIs(t, err, numeric.ErrNonSquare)
}

func TestSymEigen(t *testing.T) {
	t.Parallel()

	vals, vecs, err := numeric.SymEigen(mat.NewSymDense(2, []float64{2, 1, 1, 2}))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{1, 3}, vals, eps)
	r, c := vecs.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
}
