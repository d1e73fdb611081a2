// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

var detMethods = []matrix.DetMethod{matrix.DetBareiss, matrix.DetBerkowitz, matrix.DetLU}

func TestDet_Rational(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    *matrix.Dense[*big.Rat]
		want string
	}{
		{"3x3", ratMatrix(t, [][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}}), "-3"},
		{"swap needed", ratMatrix(t, [][]int64{{0, 1}, {1, 0}}), "-1"},
		{"singular", ratMatrix(t, [][]int64{{1, 2}, {2, 4}}), "0"},
		{"1x1", ratMatrixS(t, [][]string{{"7/3"}}), "7/3"},
		{"zero column", ratMatrix(t, [][]int64{{0, 1, 2}, {0, 3, 4}, {0, 5, 6}}), "0"},
	}
	for _, tc := range cases {
		tc := tc
		for _, method := range detMethods {
			method := method
			t.Run(tc.name+"/"+method.String(), func(t *testing.T) {
				t.Parallel()
				got, err := matrix.Det(tc.m, matrix.WithDetMethod(method))
				require.NoError(t, err)
				requireRatEqual(t, tc.want, got)
			})
		}
	}
}

func TestDet_Boundaries(t *testing.T) {
	t.Parallel()

	empty, err := matrix.Zeros[*big.Rat](rat, 0, 0)
	require.NoError(t, err)
	for _, method := range detMethods {
		got, err := matrix.Det(empty, matrix.WithDetMethod(method))
		require.NoError(t, err)
		requireRatEqual(t, "1", got)
	}

	_, err = matrix.Det(ratMatrix(t, [][]int64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestDet_Symbolic(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"a", "b"}, {"c", "d"}})
	want := mustExpr(t, "a*d - b*c")
	for _, method := range detMethods {
		got, err := matrix.Det(m, matrix.WithDetMethod(method))
		require.NoError(t, err)
		requireExprEqual(t, want, got)
	}

	v := exprMatrix(t, [][]string{{"1", "x", "x^2"}, {"1", "y", "y^2"}, {"1", "z", "z^2"}})
	got, err := matrix.Det(v)
	require.NoError(t, err)
	requireExprEqual(t, mustExpr(t, "(y - x)*(z - x)*(z - y)"), got)
}

func TestMinorCofactorAdjugate(t *testing.T) {
	t.Parallel()

	m := ratMatrix(t, [][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}})

	minor, err := matrix.Minor(m, 0, 0)
	require.NoError(t, err)
	requireRatEqual(t, "2", minor)

	cof, err := matrix.Cofactor(m, 0, 1)
	require.NoError(t, err)
	requireRatEqual(t, "2", cof)

	_, err = matrix.Minor(m, 3, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	adj, err := matrix.Adjugate(m)
	require.NoError(t, err)
	scaled, err := matrix.Identity[*big.Rat](rat, 3)
	require.NoError(t, err)
	scaled, err = matrix.Scale(scaled, ring.R(-3, 1))
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, scaled, mustMul[*big.Rat](t, adj, m))

	cm, err := matrix.CofactorMatrix(m)
	require.NoError(t, err)
	tr, err := matrix.Transpose(cm)
	require.NoError(t, err)
	requireEqualMatrix[*big.Rat](t, adj, tr)
}

func TestBerkowitzAndCharPoly(t *testing.T) {
	t.Parallel()

	vec, err := matrix.BerkowitzVector(ratMatrix(t, [][]int64{{1, 2}, {3, 4}}))
	require.NoError(t, err)
	require.Len(t, vec, 3)
	requireRatEqual(t, "1", vec[0])
	requireRatEqual(t, "-5", vec[1])
	requireRatEqual(t, "-2", vec[2])

	p, err := matrix.CharPoly(ratMatrix(t, [][]int64{{2, 0}, {0, 3}}))
	require.NoError(t, err)
	require.Equal(t, "lambda", p.Var)
	require.Equal(t, 2, p.Degree())
	require.Equal(t, "lambda^2 - 5*lambda + 6", p.String())
	requireRatEqual(t, "0", p.Eval(ring.R(3, 1)))

	_, ok := p.AsElement()
	require.False(t, ok)

	empty, err := matrix.Zeros[*big.Rat](rat, 0, 0)
	require.NoError(t, err)
	p, err = matrix.CharPoly(empty)
	require.NoError(t, err)
	require.Equal(t, 0, p.Degree())
}

func TestCharPoly_SymbolCollision(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"1", "2"}, {"x", "0"}})
	p, err := matrix.CharPoly(m, matrix.WithCharPolyVar("x"))
	require.NoError(t, err)
	require.Equal(t, "_x", p.Var)
	requireExprEqual(t, mustExpr(t, "-2*x"), p.Coeffs[2])

	el, ok := p.AsElement()
	require.True(t, ok)
	requireExprEqual(t, mustExpr(t, "_x^2 - _x - 2*x"), el)

	p, err = matrix.CharPoly(m)
	require.NoError(t, err)
	require.Equal(t, "lambda", p.Var)
}

func TestIsNilpotent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    *matrix.Dense[*big.Rat]
		want bool
	}{
		{"shift", ratMatrix(t, [][]int64{{0, 1, 0}, {0, 0, 1}, {0, 0, 0}}), true},
		{"rank one square zero", ratMatrix(t, [][]int64{{2, -4}, {1, -2}}), true},
		{"projection", ratMatrix(t, [][]int64{{1, 0}, {0, 0}}), false},
		{"empty", ratMatrix(t, nil), true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := matrix.IsNilpotent(tc.m)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := matrix.IsNilpotent(exprMatrix(t, [][]string{{"x"}, {"y"}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	nil2, err := matrix.IsNilpotent(exprMatrix(t, [][]string{{"x", "-x^2"}, {"1", "-x"}}))
	require.NoError(t, err)
	require.True(t, nil2)
}

func TestDet_AgreesWithSymbolicSubstitution(t *testing.T) {
	t.Parallel()

	m := exprMatrix(t, [][]string{{"t", "1"}, {"1", "t"}})
	d, err := matrix.Det(m)
	require.NoError(t, err)
	at2 := expr.Subs(d, map[string]expr.Expr{"t": expr.Int(2)})
	requireExprEqual(t, expr.Int(3), at2)
}

func TestDet_ClosedForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		m    *matrix.Dense[*big.Rat]
		want string
	}{
		{"1x1", ratMatrix(t, [][]int64{{-4}}), "-4"},
		// 3·5 − 7·2
		{"2x2", ratMatrix(t, [][]int64{{3, 7}, {2, 5}}), "1"},
		// 2·(3·(−2) − 4·5) − (−1)·(1·(−2) − 4·0) + 0
		{"3x3", ratMatrix(t, [][]int64{{2, -1, 0}, {1, 3, 4}, {0, 5, -2}}), "-54"},
		{"3x3 leading zero", ratMatrix(t, [][]int64{{0, 1, 2}, {1, 0, 3}, {4, -3, 8}}), "-2"},
	}
	for _, tc := range cases {
		tc := tc
		for _, method := range detMethods {
			method := method
			t.Run(tc.name+"/"+method.String(), func(t *testing.T) {
				t.Parallel()
				fired := 0
				hook := matrix.WithPivotHook(func(matrix.PivotEvent) { fired++ })
				got, err := matrix.Det(tc.m, matrix.WithDetMethod(method), hook)
				require.NoError(t, err)
				requireRatEqual(t, tc.want, got)
				require.Zero(t, fired)
			})
		}
	}

	t.Run("symbolic 3x3", func(t *testing.T) {
		t.Parallel()
		m := exprMatrix(t, [][]string{{"a", "b", "c"}, {"d", "f", "g"}, {"h", "k", "l"}})
		got, err := matrix.Det(m)
		require.NoError(t, err)
		requireExprEqual(t, mustExpr(t, "a*(f*l - g*k) - b*(d*l - g*h) + c*(d*k - f*h)"), got)
	})

	t.Run("4x4 eliminates", func(t *testing.T) {
		t.Parallel()
		fired := 0
		hook := matrix.WithPivotHook(func(matrix.PivotEvent) { fired++ })
		m := ratMatrix(t, [][]int64{{2, 0, 0, 0}, {0, 3, 0, 0}, {0, 0, 5, 0}, {0, 0, 0, 7}})
		got, err := matrix.Det(m, hook)
		require.NoError(t, err)
		requireRatEqual(t, "210", got)
		require.Positive(t, fired)
	})
}
