// SPDX-License-Identifier: MIT
package intmath_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symla/internal/intmath"
)

func TestFactor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int64
		want []intmath.PrimePower
	}{
		{0, nil},
		{1, nil},
		{-1, nil},
		{97, []intmath.PrimePower{{P: 97, K: 1}}},
		{-360, []intmath.PrimePower{{P: 2, K: 3}, {P: 3, K: 2}, {P: 5, K: 1}}},
		{1 << 10, []intmath.PrimePower{{P: 2, K: 10}}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, intmath.Factor(tc.n), "n=%d", tc.n)
	}
}

func TestSquareSplit(t *testing.T) {
	t.Parallel()

	s, free := intmath.SquareSplit(72)
	require.Equal(t, int64(6), s)
	require.Equal(t, []int64{2}, free)

	s, free = intmath.SquareSplit(49)
	require.Equal(t, int64(7), s)
	require.Empty(t, free)

	s, free = intmath.SquareSplit(30)
	require.Equal(t, int64(1), s)
	require.Equal(t, []int64{2, 3, 5}, free)
}

func TestDivisors(t *testing.T) {
	t.Parallel()

	require.Nil(t, intmath.Divisors(0))
	require.Equal(t, []int64{1}, intmath.Divisors(1))
	require.Equal(t, []int64{1, 2, 3, 4, 6, 12}, intmath.Divisors(-12))
	require.Equal(t, []int64{1, 2, 4, 8}, intmath.Divisors(8))
}

func TestRatSqrt(t *testing.T) {
	t.Parallel()

	r, ok := intmath.RatSqrt(big.NewRat(9, 4))
	require.True(t, ok)
	require.Equal(t, "3/2", r.RatString())

	r, ok = intmath.RatSqrt(new(big.Rat))
	require.True(t, ok)
	require.Zero(t, r.Sign())

	_, ok = intmath.RatSqrt(big.NewRat(2, 1))
	require.False(t, ok)
	_, ok = intmath.RatSqrt(big.NewRat(1, 2))
	require.False(t, ok)
	_, ok = intmath.RatSqrt(big.NewRat(-1, 4))
	require.False(t, ok)

	root, ok := intmath.IsPerfectSquare(big.NewInt(144))
	require.True(t, ok)
	require.Equal(t, int64(12), root.Int64())
}
