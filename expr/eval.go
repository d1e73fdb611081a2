// SPDX-License-Identifier: MIT

package expr

import (
	"math"
	"math/big"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"
)

// ChopTolerance is the magnitude under which Evalf with chop drops a value.
const ChopTolerance = 1e-12

// FreeSymbols returns the sorted names of the symbols occurring in e.
func FreeSymbols(e Expr) []string {
	seen := make(map[string]struct{})
	walk(e, func(x Expr) {
		if s, ok := x.(sym); ok {
			seen[s.name] = struct{}{}
		}
	})
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// HasFloat reports whether a floating-point literal occurs in e.
func HasFloat(e Expr) bool {
	found := false
	walk(e, func(x Expr) {
		if _, ok := x.(flt); ok {
			found = true
		}
	})

	return found
}

func walk(e Expr, fn func(Expr)) {
	fn(e)
	switch v := e.(type) {
	case add:
		for _, t := range v.terms {
			walk(t, fn)
		}
	case mul:
		for _, f := range v.factors {
			walk(f, fn)
		}
	case pow:
		walk(v.base, fn)
	case sqrt:
		walk(v.arg, fn)
	}
}

// transform rebuilds e bottom-up through the constructors, replacing leaves
// with leaf(x).
func transform(e Expr, leaf func(Expr) Expr) Expr {
	switch v := e.(type) {
	case add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = transform(t, leaf)
		}
		return Add(ts...)
	case mul:
		fs := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			fs[i] = transform(f, leaf)
		}
		return Mul(fs...)
	case pow:
		return Pow(transform(v.base, leaf), v.exp)
	case sqrt:
		if v.s == "I" {
			return leaf(e)
		}
		return Sqrt(transform(v.arg, leaf))
	}

	return leaf(e)
}

// Subs replaces symbols by the expressions in vals.
func Subs(e Expr, vals map[string]Expr) Expr {
	return transform(e, func(x Expr) Expr {
		if s, ok := x.(sym); ok {
			if r, ok := vals[s.name]; ok {
				return r
			}
		}
		return x
	})
}

// Rationalize replaces every finite floating-point literal by the rational
// with the same shortest decimal representation, so 0.1 becomes 1/10.
func Rationalize(e Expr) Expr {
	return transform(e, func(x Expr) Expr {
		f, ok := x.(flt)
		if !ok || math.IsInf(f.v, 0) || math.IsNaN(f.v) {
			return x
		}
		r, ok := new(big.Rat).SetString(strconv.FormatFloat(f.v, 'g', -1, 64))
		if !ok {
			return x
		}
		return num{r}
	})
}

// Evalf evaluates every numeric subexpression in float64 precision. Symbols
// and I are kept. With chop, values of magnitude below ChopTolerance become 0.
func Evalf(e Expr, chop bool) Expr {
	out := transform(e, func(x Expr) Expr {
		if n, ok := x.(num); ok {
			f, _ := n.v.Float64()
			return flt{f}
		}
		return x
	})
	if chop {
		out = chopExpr(out)
	}

	return out
}

func chopExpr(e Expr) Expr {
	switch v := e.(type) {
	case flt:
		if math.Abs(v.v) < ChopTolerance {
			return flt{0}
		}
	case add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = chopExpr(t)
		}
		return Add(ts...)
	case mul:
		c, rest := splitCoeff(v)
		if c.isF && math.Abs(c.f) < ChopTolerance {
			return flt{0}
		}
		return withCoeff(c, rest)
	}

	return e
}

// Literal reports the value of a numeric literal.
func Literal(e Expr) (value float64, isFloat, ok bool) {
	switch v := e.(type) {
	case num:
		f, _ := v.v.Float64()
		return f, false, true
	case flt:
		return v.v, true, true
	}

	return 0, false, false
}

// Complex evaluates a symbol-free expression numerically.
func Complex(e Expr) (complex128, bool) {
	switch v := e.(type) {
	case num:
		f, _ := v.v.Float64()
		return complex(f, 0), true
	case flt:
		return complex(v.v, 0), true
	case sym:
		return 0, false
	case sqrt:
		if v.s == "I" {
			return 1i, true
		}
		a, ok := Complex(v.arg)
		if !ok {
			return 0, false
		}
		return cmplx.Sqrt(a), true
	case pow:
		b, ok := Complex(v.base)
		if !ok {
			return 0, false
		}
		return cmplx.Pow(b, complex(float64(v.exp), 0)), true
	case add:
		var s complex128
		for _, t := range v.terms {
			x, ok := Complex(t)
			if !ok {
				return 0, false
			}
			s += x
		}
		return s, true
	case mul:
		p := complex(1, 0)
		for _, f := range v.factors {
			x, ok := Complex(f)
			if !ok {
				return 0, false
			}
			p *= x
		}
		return p, true
	}

	return 0, false
}

// Compare is a total order: numeric values first, ordered by real then
// imaginary part, then symbolic expressions ordered by their text.
func Compare(a, b Expr) int {
	ca, okA := Complex(a)
	cb, okB := Complex(b)
	switch {
	case okA && okB:
		if c := cmpFloat(real(ca), real(cb)); c != 0 {
			return c
		}
		if c := cmpFloat(imag(ca), imag(cb)); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}

	return strings.Compare(a.String(), b.String())
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}

	return 0
}
