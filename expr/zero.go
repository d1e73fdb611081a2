// SPDX-License-Identifier: MIT

package expr

import "github.com/katalvlaran/symla/ring"

// IsZero is the cheap structural zero test. It never expands products; a sum
// is decided only when it is free of symbols.
func IsZero(e Expr) ring.Ternary {
	switch v := e.(type) {
	case num:
		return ring.Of(v.v.Sign() == 0)
	case flt:
		return ring.Of(v.v == 0)
	case sym:
		return ring.Unknown
	case sqrt:
		return IsZero(v.arg)
	case pow:
		z := IsZero(v.base)
		if v.exp > 0 {
			return z
		}
		if z == ring.False {
			return ring.False
		}
		return ring.Unknown
	case mul:
		all := true
		for _, f := range v.factors {
			switch IsZero(f) {
			case ring.True:
				return ring.True
			case ring.Unknown:
				all = false
			}
		}
		if all {
			return ring.False
		}
		return ring.Unknown
	case add:
		if len(FreeSymbols(e)) > 0 {
			return ring.Unknown
		}
		return EqualsZero(e)
	}

	return ring.Unknown
}

// EqualsZero decides zero-ness through the canonical form. The answer is
// exact unless nested radicals of non-constant radicands are involved.
func EqualsZero(e Expr) ring.Ternary {
	rf, ok := toRF(e)
	if !ok {
		return ring.Unknown
	}
	if rf.num.isZero() {
		return ring.True
	}
	if rf.num.hasKind(atomOpaque) {
		return ring.Unknown
	}

	return ring.False
}

// IsReal reports whether e is real, taking every symbol to be real.
func IsReal(e Expr) ring.Ternary {
	rf, ok := toRF(e)
	if !ok {
		return ring.Unknown
	}
	if rf.num.hasKind(atomOpaque) || rf.den.hasKind(atomOpaque) {
		return ring.Unknown
	}
	_, im := rf.num.split(imagAtom)

	return ring.Of(im.isZero())
}

// Conj returns the complex conjugate of e, taking every symbol to be real.
func Conj(e Expr) Expr {
	switch v := e.(type) {
	case num, flt, sym:
		return e
	case sqrt:
		if v.s == "I" {
			return Neg(I)
		}
		return Sqrt(Conj(v.arg))
	case pow:
		return Pow(Conj(v.base), v.exp)
	case add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = Conj(t)
		}
		return Add(ts...)
	case mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = Conj(f)
		}
		return Mul(fs...)
	}

	return e
}
