// SPDX-License-Identifier: MIT

package expr

import (
	"math/big"
	"sort"

	"github.com/katalvlaran/symla/ring"
)

// Roots finds the roots of the polynomial with the given coefficients,
// leading coefficient first.
//
// Implementation:
//   - Stage 1: simplify coefficients, drop leading zeros, peel the root 0.
//   - Stage 2: rational coefficients go through the rational root theorem.
//   - Stage 3: a remaining factor of degree one or two is solved in closed
//     form, symbolic coefficients included.
//
// complete is false when a factor of degree three or more is left over.
func Roots(coeffs []Expr) (roots []ring.Root[Expr], complete bool) {
	c := make([]Expr, 0, len(coeffs))
	for _, x := range coeffs {
		c = append(c, Simplify(x))
	}
	for len(c) > 1 && IsZero(c[0]) == ring.True {
		c = c[1:]
	}
	if len(c) <= 1 {
		return nil, true
	}
	zeros := 0
	for len(c) > 1 && IsZero(c[len(c)-1]) == ring.True {
		c = c[:len(c)-1]
		zeros++
	}
	if zeros > 0 {
		roots = append(roots, ring.Root[Expr]{Value: Int(0), Mult: zeros})
	}

	if rs, ok := allRational(c); ok {
		found, rest := ring.RationalRoots(rs)
		for _, r := range found {
			roots = append(roots, ring.Root[Expr]{Value: FromRat(r.Value), Mult: r.Mult})
		}
		c = c[:0]
		for _, r := range rest {
			c = append(c, FromRat(r))
		}
	}

	complete = true
	switch len(c) - 1 {
	case 0:
	case 1:
		roots = append(roots, ring.Root[Expr]{Value: Simplify(Neg(Div(c[1], c[0]))), Mult: 1})
	case 2:
		roots = append(roots, quadratic(c[0], c[1], c[2])...)
	default:
		complete = false
	}

	return mergeRoots(roots), complete
}

func allRational(c []Expr) ([]*big.Rat, bool) {
	out := make([]*big.Rat, len(c))
	for i, x := range c {
		r, ok := AsRat(x)
		if !ok {
			return nil, false
		}
		out[i] = r
	}

	return out, true
}

// quadratic solves a*x^2 + b*x + c = 0.
func quadratic(a, b, c Expr) []ring.Root[Expr] {
	disc := Simplify(Sub(Mul(b, b), Mul(Int(4), a, c)))
	twoA := Mul(Int(2), a)
	if IsZero(disc) == ring.True {
		return []ring.Root[Expr]{{Value: Simplify(Div(Neg(b), twoA)), Mult: 2}}
	}
	s := Sqrt(disc)

	return []ring.Root[Expr]{
		{Value: Simplify(Div(Sub(Neg(b), s), twoA)), Mult: 1},
		{Value: Simplify(Div(Add(Neg(b), s), twoA)), Mult: 1},
	}
}

// mergeRoots combines equal roots and sorts them with Compare.
func mergeRoots(rs []ring.Root[Expr]) []ring.Root[Expr] {
	var out []ring.Root[Expr]
	for _, r := range rs {
		merged := false
		for i := range out {
			if Equal(out[i].Value, r.Value) {
				out[i].Mult += r.Mult
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return Compare(out[i].Value, out[j].Value) < 0 })

	return out
}
