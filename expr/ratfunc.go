// SPDX-License-Identifier: MIT

package expr

import (
	"math"
	"math/big"

	"github.com/katalvlaran/symla/internal/intmath"
)

// maxRationalize bounds the conjugate passes that clear radicals from a
// denominator. Each pass removes one radical atom.
const maxRationalize = 8

// ratfunc is num/den in canonical form. inexact marks values that came from
// floating-point literals; they are converted back on output.
type ratfunc struct {
	num, den *poly
	inexact  bool
}

func rfConst(q *big.Rat) *ratfunc {
	return &ratfunc{num: constPoly(q), den: constPoly(big.NewRat(1, 1))}
}

func rfPoly(p *poly) *ratfunc {
	return &ratfunc{num: p, den: constPoly(big.NewRat(1, 1))}
}

// toRF converts e to canonical form. It fails on floating-point values that
// have no exact binary expansion (Inf, NaN), on division by a provable zero,
// and on denominators whose radicals cannot be cleared.
func toRF(e Expr) (*ratfunc, bool) {
	switch v := e.(type) {
	case num:
		return rfConst(v.v), true
	case flt:
		if math.IsInf(v.v, 0) || math.IsNaN(v.v) {
			return nil, false
		}
		rf := rfConst(new(big.Rat).SetFloat64(v.v))
		rf.inexact = true
		return rf, true
	case sym:
		return rfPoly(atomPoly(symAtom(v.name))), true
	case add:
		acc := rfConst(new(big.Rat))
		for _, t := range v.terms {
			rt, ok := toRF(t)
			if !ok {
				return nil, false
			}
			acc = &ratfunc{
				num:     addPoly(mulPoly(acc.num, rt.den), mulPoly(rt.num, acc.den)),
				den:     mulPoly(acc.den, rt.den),
				inexact: acc.inexact || rt.inexact,
			}
			if !acc.normalize() {
				return nil, false
			}
		}
		return acc, true
	case mul:
		acc := rfConst(big.NewRat(1, 1))
		for _, f := range v.factors {
			rf, ok := toRF(f)
			if !ok {
				return nil, false
			}
			acc = &ratfunc{
				num:     mulPoly(acc.num, rf.num),
				den:     mulPoly(acc.den, rf.den),
				inexact: acc.inexact || rf.inexact,
			}
			if !acc.normalize() {
				return nil, false
			}
		}
		return acc, true
	case pow:
		rf, ok := toRF(v.base)
		if !ok {
			return nil, false
		}
		n := v.exp
		out := &ratfunc{num: rf.num, den: rf.den, inexact: rf.inexact}
		if n < 0 {
			if rf.num.isZero() {
				return nil, false
			}
			out.num, out.den = rf.den, rf.num
			n = -n
		}
		out.num, out.den = powPoly(out.num, n), powPoly(out.den, n)
		if !out.normalize() {
			return nil, false
		}
		return out, true
	case sqrt:
		if v.s == "I" {
			return rfPoly(atomPoly(imagAtom)), true
		}
		rf, ok := toRF(v.arg)
		if !ok {
			return nil, false
		}
		return sqrtRF(rf)
	}

	return nil, false
}

// sqrtRF uses sqrt(n/d) = sqrt(n*d)/d for a radical-free d.
func sqrtRF(rf *ratfunc) (*ratfunc, bool) {
	if len(rf.den.radicals()) > 0 {
		return nil, false
	}
	out := &ratfunc{num: sqrtPoly(mulPoly(rf.num, rf.den)), den: rf.den, inexact: rf.inexact}
	if !out.normalize() {
		return nil, false
	}

	return out, true
}

// sqrtPoly returns the principal square root of p. Symbols are taken to be
// non-negative, so even powers leave the radical.
func sqrtPoly(p *poly) *poly {
	switch len(p.terms) {
	case 0:
		return newPoly()
	case 1:
		t := p.lead()
		var out, left mono
		for _, f := range t.m {
			if f.a.kind == atomSym {
				if h := f.e / 2; h > 0 {
					out = append(out, factor{a: f.a, e: h})
				}
				if f.e%2 == 1 {
					left = append(left, factor{a: f.a, e: 1})
				}
				continue
			}
			left = append(left, f)
		}
		res := mulPoly(sqrtConst(t.c), monoPoly(out, big.NewRat(1, 1)))
		if len(left) > 0 {
			res = mulPoly(res, atomPoly(opaqueAtom(monoPoly(left, big.NewRat(1, 1)))))
		}
		return res
	}
	c := p.lead().c
	monic := scalePoly(p, new(big.Rat).Inv(c))

	return mulPoly(sqrtConst(c), atomPoly(opaqueAtom(monic)))
}

// sqrtConst writes sqrt(q) as (s/b)*sqrt(p1)*...*sqrt(pk)[*I].
func sqrtConst(q *big.Rat) *poly {
	if q.Sign() == 0 {
		return newPoly()
	}
	abs := new(big.Rat).Abs(q)
	var m mono
	k := new(big.Int).Mul(abs.Num(), abs.Denom())
	coeff := new(big.Rat)
	if k.IsInt64() {
		s, free := intmath.SquareSplit(k.Int64())
		coeff.SetFrac(big.NewInt(s), abs.Denom())
		for _, p := range free {
			m = append(m, factor{a: primeAtom(p), e: 1})
		}
	} else {
		coeff.SetInt64(1)
		m = append(m, factor{a: opaqueAtom(constPoly(abs)), e: 1})
	}
	if q.Sign() < 0 {
		m = append(m, factor{a: imagAtom, e: 1})
	}

	return monoPoly(m, coeff)
}

// normalize brings rf to canonical form in place. It reports false when the
// denominator is provably zero.
func (rf *ratfunc) normalize() bool {
	if rf.den.isZero() {
		return false
	}
	if rf.num.isZero() {
		rf.den = constPoly(big.NewRat(1, 1))
		return true
	}

	for i := 0; i < maxRationalize; i++ {
		rads := rf.den.radicals()
		if len(rads) == 0 {
			break
		}
		r := rads[len(rads)-1]
		a, b := rf.den.split(r)
		conj := subPoly(a, mulPoly(atomPoly(r), b))
		rf.num = mulPoly(rf.num, conj)
		rf.den = mulPoly(rf.den, conj)
		if rf.den.isZero() {
			return false
		}
	}
	if rf.num.isZero() {
		rf.den = constPoly(big.NewRat(1, 1))
		return true
	}

	if c, ok := rf.den.constValue(); ok {
		rf.num = scalePoly(rf.num, new(big.Rat).Inv(c))
		rf.den = constPoly(big.NewRat(1, 1))
		return true
	}

	if g := monomialGCD(rf.num, rf.den); len(g) > 0 {
		rf.num = divByMono(rf.num, g)
		rf.den = divByMono(rf.den, g)
	}

	if len(rf.den.radicals()) == 0 {
		if q, ok := divExact(rf.num, rf.den); ok {
			rf.num = q
			rf.den = constPoly(big.NewRat(1, 1))
			return true
		}
		if len(rf.num.radicals()) == 0 {
			if q, ok := divExact(rf.den, rf.num); ok {
				rf.num = constPoly(big.NewRat(1, 1))
				rf.den = q
			}
		}
		rf.cancelUnivariate()
	}

	lc := rf.den.lead().c
	if lc.Cmp(oneRat) != 0 {
		inv := new(big.Rat).Inv(lc)
		rf.num = scalePoly(rf.num, inv)
		rf.den = scalePoly(rf.den, inv)
	}

	return true
}

// cancelUnivariate removes the gcd of a fraction in a single symbol.
func (rf *ratfunc) cancelUnivariate() {
	if len(rf.num.radicals()) > 0 {
		return
	}
	syms := append(rf.num.symbolAtoms(), rf.den.symbolAtoms()...)
	if len(syms) == 0 {
		return
	}
	x := syms[0]
	for _, s := range syms[1:] {
		if s.key != x.key {
			return
		}
	}
	g := gcdUnivariate(rf.num.univariate(x), rf.den.univariate(x))
	if len(g) <= 1 {
		return
	}
	gp := fromUnivariate(g, x)
	n, ok1 := divExact(rf.num, gp)
	d, ok2 := divExact(rf.den, gp)
	if ok1 && ok2 {
		rf.num, rf.den = n, d
	}
}

// fromRF rebuilds an expression from canonical form.
func fromRF(rf *ratfunc) Expr {
	n := rf.num.expr(rf.inexact)
	if rf.den.isOne() {
		return n
	}

	return Div(n, rf.den.expr(rf.inexact))
}

func (p *poly) expr(inexact bool) Expr {
	ts := p.sorted()
	if len(ts) == 0 {
		if inexact {
			return Float(0)
		}
		return Int(0)
	}
	terms := make([]Expr, 0, len(ts))
	for _, t := range ts {
		terms = append(terms, t.expr(inexact))
	}

	return Add(terms...)
}

func (t term) expr(inexact bool) Expr {
	factors := make([]Expr, 0, len(t.m)+1)
	if inexact {
		f, _ := t.c.Float64()
		factors = append(factors, Float(f))
	} else {
		factors = append(factors, FromRat(t.c))
	}
	primes := big.NewInt(1)
	for _, f := range t.m {
		switch f.a.kind {
		case atomSym:
			factors = append(factors, Pow(Symbol(f.a.name), f.e))
		case atomPrime:
			primes.Mul(primes, big.NewInt(f.a.prime))
		case atomImag:
			factors = append(factors, I)
		case atomOpaque:
			factors = append(factors, newSqrt(f.a.rad.expr(inexact)))
		}
	}
	if primes.Cmp(big.NewInt(1)) != 0 {
		factors = append(factors, newSqrt(num{new(big.Rat).SetInt(primes)}))
	}

	return Mul(factors...)
}

// Simplify returns the canonical rational form of e: sums and products are
// expanded, square roots of rationals reduced to prime radicals, and
// denominators cleared of radicals and common factors. Expressions that
// cannot be brought to canonical form are returned unchanged.
func Simplify(e Expr) Expr {
	switch e.(type) {
	case num, flt, sym:
		return e
	}
	rf, ok := toRF(e)
	if !ok {
		return e
	}

	return fromRF(rf)
}
