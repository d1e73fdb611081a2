// SPDX-License-Identifier: MIT

// Package intmath holds the small integer number theory shared by the exact
// domains: trial-division factorization, divisor enumeration and square-part
// extraction. Inputs are bounded to int64 and trial division stops at
// TrialLimit; a cofactor left above the limit is reported as a single factor.
package intmath

import (
	"math/big"
	"sort"
)

// TrialLimit bounds trial division. Cofactors above TrialLimit² may be
// composite; callers treat them as opaque primes.
const TrialLimit = 1 << 20

// PrimePower is one factor p^k of an integer factorization.
type PrimePower struct {
	P int64
	K int
}

// Factor returns the factorization of |n| in increasing prime order.
// Factor(0) and Factor(±1) return nil.
func Factor(n int64) []PrimePower {
	if n < 0 {
		n = -n
	}
	if n < 2 {
		return nil
	}
	var out []PrimePower
	for p := int64(2); p*p <= n && p <= TrialLimit; p++ {
		if n%p != 0 {
			continue
		}
		k := 0
		for n%p == 0 {
			n /= p
			k++
		}
		out = append(out, PrimePower{P: p, K: k})
	}
	if n > 1 {
		out = append(out, PrimePower{P: n, K: 1})
	}

	return out
}

// SquareSplit writes |n| = s²·f with f square-free (up to TrialLimit) and
// returns s and the prime factors of f.
func SquareSplit(n int64) (s int64, free []int64) {
	s = 1
	for _, pp := range Factor(n) {
		for i := 0; i < pp.K/2; i++ {
			s *= pp.P
		}
		if pp.K%2 == 1 {
			free = append(free, pp.P)
		}
	}

	return s, free
}

// Divisors returns the positive divisors of |n| in increasing order.
// Divisors(0) returns nil.
func Divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return nil
	}
	divs := []int64{1}
	for _, pp := range Factor(n) {
		cur := len(divs)
		mul := int64(1)
		for k := 0; k < pp.K; k++ {
			mul *= pp.P
			for i := 0; i < cur; i++ {
				divs = append(divs, divs[i]*mul)
			}
		}
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i] < divs[j] })

	return divs
}

// IsPerfectSquare reports whether x ≥ 0 is a perfect square and returns its
// integer root.
func IsPerfectSquare(x *big.Int) (*big.Int, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	r := new(big.Int).Sqrt(x)
	if new(big.Int).Mul(r, r).Cmp(x) != 0 {
		return nil, false
	}

	return r, true
}

// RatSqrt returns the exact square root of a non-negative rational, when both
// numerator and denominator are perfect squares.
func RatSqrt(q *big.Rat) (*big.Rat, bool) {
	if q.Sign() < 0 {
		return nil, false
	}
	n, ok := IsPerfectSquare(q.Num())
	if !ok {
		return nil, false
	}
	d, ok := IsPerfectSquare(q.Denom())
	if !ok {
		return nil, false
	}

	return new(big.Rat).SetFrac(n, d), true
}
