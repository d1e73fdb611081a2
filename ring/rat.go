// SPDX-License-Identifier: MIT

package ring

import (
	"math/big"
	"sort"

	"github.com/katalvlaran/symla/internal/intmath"
)

// Rat is the exact rational domain over *big.Rat.
// Every zero test is decided, so the engine never has to assume a pivot.
// Values handed out are always freshly allocated.
type Rat struct{}

// Compile-time capability checks.
var (
	_ Domain[*big.Rat]     = Rat{}
	_ Sqrter[*big.Rat]     = Rat{}
	_ Conjugator[*big.Rat] = Rat{}
	_ RootFinder[*big.Rat] = Rat{}
	_ Orderer[*big.Rat]    = Rat{}
	_ Expander[*big.Rat]   = Rat{}
	_ ZeroProver[*big.Rat] = Rat{}
	_ GCDer[*big.Rat]      = Rat{}
)

// NewRat returns the rational domain.
func NewRat() Rat { return Rat{} }

// R builds the rational a/b. It panics when b == 0, like big.NewRat.
func R(a, b int64) *big.Rat { return big.NewRat(a, b) }

// IsZero implements Oracle; the answer is always decided.
func (Rat) IsZero(x *big.Rat) Ternary { return Of(x.Sign() == 0) }

// Simplify implements Oracle; rationals are always canonical.
func (Rat) Simplify(x *big.Rat) *big.Rat { return x }

// EqualsZero implements ZeroProver.
func (Rat) EqualsZero(x *big.Rat) Ternary { return Of(x.Sign() == 0) }

// ExpandIsZero implements Expander.
func (Rat) ExpandIsZero(x *big.Rat) bool { return x.Sign() == 0 }

func (Rat) Zero() *big.Rat { return new(big.Rat) }
func (Rat) One() *big.Rat { return big.NewRat(1, 1) }
func (Rat) FromInt(n int64) *big.Rat { return big.NewRat(n, 1) }
func (Rat) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rat) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rat) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (Rat) Div(a, b *big.Rat) *big.Rat { return new(big.Rat).Quo(a, b) }
func (Rat) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }
func (Rat) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }
func (Rat) Format(x *big.Rat) string { return x.RatString() }
func (Rat) Compare(a, b *big.Rat) int { return a.Cmp(b) }

// Sqrt implements Sqrter for perfect squares only.
func (Rat) Sqrt(x *big.Rat) (*big.Rat, bool) { return intmath.RatSqrt(x) }

// Conj implements Conjugator; rationals are real.
func (Rat) Conj(x *big.Rat) *big.Rat { return x }

// IsReal implements Conjugator.
func (Rat) IsReal(*big.Rat) Ternary { return True }

// GCD implements GCDer: gcd(a/b, c/d) = gcd(a, c)/lcm(b, d), non-negative.
func (Rat) GCD(a, b *big.Rat) *big.Rat {
	n := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a.Num()), new(big.Int).Abs(b.Num()))
	g := new(big.Int).GCD(nil, nil, a.Denom(), b.Denom())
	d := new(big.Int).Mul(a.Denom(), new(big.Int).Quo(b.Denom(), g))

	return new(big.Rat).SetFrac(n, d)
}

// Roots implements RootFinder with the rational root theorem.
// The result is complete only when the polynomial splits over Q.
func (d Rat) Roots(coeffs []*big.Rat) ([]Root[*big.Rat], bool) {
	roots, rest := RationalRoots(coeffs)

	return roots, len(rest) <= 1
}

// RationalRoots returns the rational roots of the polynomial (leading
// coefficient first) in increasing order, and the deflated remainder that has
// no rational roots left.
//
// Implementation:
//   - Stage 1: drop leading zero coefficients; peel off the root 0.
//   - Stage 2: scale to integer coefficients and enumerate ±p/q with p | a_n
//     and q | a_0.
//   - Stage 3: deflate by every root found, counting multiplicity.
func RationalRoots(coeffs []*big.Rat) (roots []Root[*big.Rat], rest []*big.Rat) {
	c := trimLeadingRat(coeffs)
	if len(c) <= 1 {
		return nil, c
	}

	zeros := 0
	for len(c) > 1 && c[len(c)-1].Sign() == 0 {
		c = c[:len(c)-1]
		zeros++
	}
	if zeros > 0 {
		roots = append(roots, Root[*big.Rat]{Value: new(big.Rat), Mult: zeros})
	}

	for _, cand := range rationalCandidates(c) {
		if len(c) <= 1 {
			break
		}
		mult := 0
		for len(c) > 1 && hornerRat(c, cand).Sign() == 0 {
			c = deflateRat(c, cand)
			mult++
		}
		if mult > 0 {
			roots = append(roots, Root[*big.Rat]{Value: cand, Mult: mult})
		}
	}
	sort.SliceStable(roots, func(i, j int) bool { return roots[i].Value.Cmp(roots[j].Value) < 0 })

	return roots, c
}

func trimLeadingRat(c []*big.Rat) []*big.Rat {
	i := 0
	for i < len(c)-1 && c[i].Sign() == 0 {
		i++
	}

	return c[i:]
}

// hornerRat evaluates the polynomial (leading first) at x.
func hornerRat(c []*big.Rat, x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for _, a := range c {
		acc.Mul(acc, x)
		acc.Add(acc, a)
	}

	return acc
}

// deflateRat divides by (X - r) using synthetic division; r must be a root.
func deflateRat(c []*big.Rat, r *big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(c)-1)
	acc := new(big.Rat)
	for i := 0; i < len(c)-1; i++ {
		acc = new(big.Rat).Add(new(big.Rat).Mul(acc, r), c[i])
		out[i] = acc
	}

	return out
}

// rationalCandidates lists ±p/q in increasing order, or nothing when the
// integerized coefficients do not fit in int64.
func rationalCandidates(c []*big.Rat) []*big.Rat {
	lcm := big.NewInt(1)
	for _, a := range c {
		den := a.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, den)
		lcm.Mul(lcm, new(big.Int).Quo(den, g))
	}
	lead := new(big.Int).Mul(c[0].Num(), new(big.Int).Quo(lcm, c[0].Denom()))
	last := c[len(c)-1]
	cons := new(big.Int).Mul(last.Num(), new(big.Int).Quo(lcm, last.Denom()))
	if !lead.IsInt64() || !cons.IsInt64() {
		return nil
	}

	seen := make(map[string]bool)
	var out []*big.Rat
	for _, p := range intmath.Divisors(cons.Int64()) {
		for _, q := range intmath.Divisors(lead.Int64()) {
			for _, s := range []int64{1, -1} {
				r := big.NewRat(s*p, q)
				key := r.RatString()
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })

	return out
}
