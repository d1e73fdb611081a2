// SPDX-License-Identifier: MIT

package expr

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/symla/internal/intmath"
)

// Expr is an immutable symbolic expression.
//
// Constructors apply only light, automatic normalization: nested sums and
// products are flattened, numeric literals are folded, like terms and like
// powers are collected, and square roots of rationals are reduced. Products
// of sums are never expanded; that is Simplify's job.
type Expr interface {
	// String renders the expression; it doubles as the structural key.
	String() string
	isExpr()
}

type (
	num struct{ v *big.Rat }
	flt struct{ v float64 }
	sym struct{ name string }
	add struct {
		terms []Expr
		s     string
	}
	mul struct {
		factors []Expr // numeric coefficient first, if any
		s       string
	}
	pow struct {
		base Expr
		exp  int
		s    string
	}
	sqrt struct {
		arg Expr
		s   string
	}
)

func (num) isExpr()  {}
func (flt) isExpr()  {}
func (sym) isExpr()  {}
func (add) isExpr()  {}
func (mul) isExpr()  {}
func (pow) isExpr()  {}
func (sqrt) isExpr() {}

// I is the imaginary unit, sqrt(-1).
var I Expr = sqrt{arg: num{big.NewRat(-1, 1)}, s: "I"}

var oneRat = big.NewRat(1, 1)

// Int returns the integer n.
func Int(n int64) Expr { return num{big.NewRat(n, 1)} }

// Rat returns the rational a/b; b must be nonzero.
func Rat(a, b int64) Expr { return num{big.NewRat(a, b)} }

// FromRat wraps a copy of q.
func FromRat(q *big.Rat) Expr { return num{new(big.Rat).Set(q)} }

// Float returns a floating-point literal.
func Float(f float64) Expr { return flt{f} }

// Symbol returns the symbol with the given name.
func Symbol(name string) Expr { return sym{name} }

// Symbols returns one symbol per name.
func Symbols(names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, n := range names {
		out[i] = Symbol(n)
	}

	return out
}

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Neg returns -a.
func Neg(a Expr) Expr { return Mul(Int(-1), a) }

// Div returns a / b.
func Div(a, b Expr) Expr { return Mul(a, Pow(b, -1)) }

// AsRat returns the exact value of a rational literal.
func AsRat(e Expr) (*big.Rat, bool) {
	if n, ok := e.(num); ok {
		return new(big.Rat).Set(n.v), true
	}

	return nil, false
}

// AsFloat returns the value of a floating-point literal.
func AsFloat(e Expr) (float64, bool) {
	if f, ok := e.(flt); ok {
		return f.v, true
	}

	return 0, false
}

// IsNumber reports whether e is a rational or floating-point literal.
func IsNumber(e Expr) bool {
	switch e.(type) {
	case num, flt:
		return true
	}

	return false
}

// ---------- coefficients ----------

// coef is a numeric coefficient that becomes inexact once a float joins in.
type coef struct {
	r   *big.Rat
	f   float64
	isF bool
}

func coefOne() coef { return coef{r: big.NewRat(1, 1)} }

func coefOf(e Expr) (coef, bool) {
	switch v := e.(type) {
	case num:
		return coef{r: v.v}, true
	case flt:
		return coef{f: v.v, isF: true}, true
	}

	return coef{}, false
}

func (c coef) float() float64 {
	if c.isF {
		return c.f
	}
	f, _ := c.r.Float64()

	return f
}

func (c coef) add(o coef) coef {
	if c.isF || o.isF {
		return coef{f: c.float() + o.float(), isF: true}
	}

	return coef{r: new(big.Rat).Add(c.r, o.r)}
}

func (c coef) mul(o coef) coef {
	if c.isF || o.isF {
		return coef{f: c.float() * o.float(), isF: true}
	}

	return coef{r: new(big.Rat).Mul(c.r, o.r)}
}

func (c coef) isZero() bool {
	if c.isF {
		return c.f == 0
	}

	return c.r.Sign() == 0
}

func (c coef) isOne() bool { return !c.isF && c.r.Cmp(oneRat) == 0 }

func (c coef) expr() Expr {
	if c.isF {
		return flt{c.f}
	}

	return num{c.r}
}

// splitCoeff separates the numeric coefficient of a term from the rest.
func splitCoeff(t Expr) (coef, Expr) {
	m, ok := t.(mul)
	if !ok {
		return coefOne(), t
	}
	c, isNum := coefOf(m.factors[0])
	if !isNum {
		return coefOne(), t
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}

	return c, newMul(rest)
}

// withCoeff is the inverse of splitCoeff.
func withCoeff(c coef, rest Expr) Expr {
	if c.isOne() {
		return rest
	}
	if m, ok := rest.(mul); ok {
		fs := make([]Expr, 0, len(m.factors)+1)
		fs = append(fs, c.expr())
		fs = append(fs, m.factors...)

		return newMul(fs)
	}

	return newMul([]Expr{c.expr(), rest})
}

// ---------- Add ----------

// Add returns the sum of xs.
func Add(xs ...Expr) Expr {
	var flat []Expr
	for _, x := range xs {
		if a, ok := x.(add); ok {
			flat = append(flat, a.terms...)
			continue
		}
		flat = append(flat, x)
	}

	constant := coef{r: new(big.Rat)}
	type bucket struct {
		c    coef
		rest Expr
	}
	buckets := make(map[string]*bucket)
	var keys []string
	for _, t := range flat {
		if c, ok := coefOf(t); ok {
			constant = constant.add(c)
			continue
		}
		c, rest := splitCoeff(t)
		key := rest.String()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{c: coef{r: new(big.Rat)}, rest: rest}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.c = b.c.add(c)
	}
	sort.Strings(keys)

	terms := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		b := buckets[k]
		if b.c.isZero() {
			continue
		}
		terms = append(terms, withCoeff(b.c, b.rest))
	}
	if !constant.isZero() {
		terms = append(terms, constant.expr())
	}
	switch len(terms) {
	case 0:
		if constant.isF {
			return flt{0}
		}
		return Int(0)
	case 1:
		return terms[0]
	}

	return newAdd(terms)
}

func newAdd(terms []Expr) add {
	var b strings.Builder
	for i, t := range terms {
		s := t.String()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - ")
			b.WriteString(s[1:])
			continue
		}
		b.WriteString(" + ")
		b.WriteString(s)
	}

	return add{terms: terms, s: b.String()}
}

// ---------- Mul ----------

// Mul returns the product of xs.
func Mul(xs ...Expr) Expr {
	var flat []Expr
	for _, x := range xs {
		if m, ok := x.(mul); ok {
			flat = append(flat, m.factors...)
			continue
		}
		flat = append(flat, x)
	}

	c := coefOne()
	type group struct {
		base Expr
		exp  int
	}
	groups := make(map[string]*group)
	var keys []string
	for _, f := range flat {
		if k, ok := coefOf(f); ok {
			c = c.mul(k)
			continue
		}
		base, exp := f, 1
		if p, ok := f.(pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		g, ok := groups[key]
		if !ok {
			g = &group{base: base}
			groups[key] = g
			keys = append(keys, key)
		}
		g.exp += exp
	}
	if c.isZero() {
		return c.expr()
	}
	sort.Strings(keys)

	factors := make([]Expr, 0, len(keys)+1)
	renormalize := false
	for _, k := range keys {
		g := groups[k]
		if g.exp == 0 {
			continue
		}
		p := Pow(g.base, g.exp)
		if !hasBase(p, k) {
			renormalize = true
		}
		factors = append(factors, p)
	}
	if renormalize {
		return Mul(append([]Expr{c.expr()}, factors...)...)
	}
	if len(factors) == 0 {
		return c.expr()
	}
	if c.isOne() {
		if len(factors) == 1 {
			return factors[0]
		}
		return newMul(factors)
	}

	return newMul(append([]Expr{c.expr()}, factors...))
}

// hasBase reports whether p is still a power of the base keyed by key.
func hasBase(p Expr, key string) bool {
	if pp, ok := p.(pow); ok {
		return pp.base.String() == key
	}

	return p.String() == key
}

func newMul(factors []Expr) mul {
	return mul{factors: factors, s: formatMul(factors)}
}

// formatMul renders a product as numerator/denominator.
func formatMul(factors []Expr) string {
	var numer, denom []string
	sign := ""
	rest := factors
	if c, ok := coefOf(factors[0]); ok {
		rest = factors[1:]
		switch {
		case c.isF:
			if c.f == -1 {
				sign = "-"
			} else {
				numer = append(numer, formatFloat(c.f))
			}
		default:
			n := new(big.Int).Set(c.r.Num())
			if n.Sign() < 0 {
				sign = "-"
				n.Neg(n)
			}
			if n.Cmp(big.NewInt(1)) != 0 {
				numer = append(numer, n.String())
			}
			if !c.r.IsInt() {
				denom = append(denom, c.r.Denom().String())
			}
		}
	}
	for _, f := range rest {
		if p, ok := f.(pow); ok && p.exp < 0 {
			denom = append(denom, formatPow(p.base, -p.exp))
			continue
		}
		numer = append(numer, wrapFactor(f))
	}

	var b strings.Builder
	b.WriteString(sign)
	if len(numer) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(strings.Join(numer, "*"))
	}
	switch len(denom) {
	case 0:
	case 1:
		b.WriteString("/")
		b.WriteString(denom[0])
	default:
		b.WriteString("/(")
		b.WriteString(strings.Join(denom, "*"))
		b.WriteString(")")
	}

	return b.String()
}

func wrapFactor(f Expr) string {
	if _, ok := f.(add); ok {
		return "(" + f.String() + ")"
	}

	return f.String()
}

// ---------- Pow ----------

// Pow returns base^n for an integer exponent n.
func Pow(base Expr, n int) Expr {
	if n == 0 {
		return Int(1)
	}
	if n == 1 {
		return base
	}
	switch b := base.(type) {
	case num:
		if b.v.Sign() == 0 {
			if n < 0 {
				return newPow(base, n)
			}
			return Int(0)
		}
		k := n
		if k < 0 {
			k = -k
		}
		r := new(big.Rat).SetFrac(
			new(big.Int).Exp(b.v.Num(), big.NewInt(int64(k)), nil),
			new(big.Int).Exp(b.v.Denom(), big.NewInt(int64(k)), nil),
		)
		if n < 0 {
			r.Inv(r)
		}
		return num{r}
	case flt:
		return flt{math.Pow(b.v, float64(n))}
	case pow:
		return Pow(b.base, b.exp*n)
	case mul:
		fs := make([]Expr, len(b.factors))
		for i, f := range b.factors {
			fs[i] = Pow(f, n)
		}
		return Mul(fs...)
	case sqrt:
		if n%2 == 0 {
			return Pow(b.arg, n/2)
		}
		return Mul(Pow(b.arg, (n-1)/2), b)
	}

	return newPow(base, n)
}

func newPow(base Expr, n int) pow {
	s := formatPow(base, n)
	if n < 0 {
		s = "1/" + formatPow(base, -n)
	}

	return pow{base: base, exp: n, s: s}
}

func formatPow(base Expr, n int) string {
	bs := base.String()
	switch base.(type) {
	case add, mul, pow:
		bs = "(" + bs + ")"
	case num:
		if !base.(num).v.IsInt() || base.(num).v.Sign() < 0 {
			bs = "(" + bs + ")"
		}
	}
	if n == 1 {
		return bs
	}

	return bs + "^" + strconv.Itoa(n)
}

// ---------- Sqrt ----------

// Sqrt returns the principal square root of x.
// Square roots of rationals are reduced to an integer multiple of a
// square-free radical; negative radicands yield a factor of I.
func Sqrt(x Expr) Expr {
	switch v := x.(type) {
	case num:
		return sqrtRat(v.v)
	case flt:
		if v.v >= 0 {
			return flt{math.Sqrt(v.v)}
		}
		return Mul(flt{math.Sqrt(-v.v)}, I)
	case mul:
		if c, ok := coefOf(v.factors[0]); ok && !c.isF && c.r.Sign() > 0 {
			return Mul(sqrtRat(c.r), newSqrt(newMulOrSingle(v.factors[1:])))
		}
	}

	return newSqrt(x)
}

func newMulOrSingle(fs []Expr) Expr {
	if len(fs) == 1 {
		return fs[0]
	}

	return newMul(fs)
}

func newSqrt(arg Expr) sqrt {
	if n, ok := arg.(num); ok && n.v.Cmp(big.NewRat(-1, 1)) == 0 {
		return I.(sqrt)
	}

	return sqrt{arg: arg, s: "sqrt(" + arg.String() + ")"}
}

// sqrtRat reduces sqrt(a/b) to (s/b)*sqrt(f) with f square-free.
func sqrtRat(q *big.Rat) Expr {
	if q.Sign() == 0 {
		return Int(0)
	}
	neg := q.Sign() < 0
	abs := new(big.Rat).Abs(q)
	k := new(big.Int).Mul(abs.Num(), abs.Denom())
	if !k.IsInt64() {
		if neg {
			return Mul(newSqrt(num{abs}), I)
		}
		return newSqrt(num{abs})
	}
	s, free := intmath.SquareSplit(k.Int64())
	factors := []Expr{num{new(big.Rat).SetFrac(big.NewInt(s), abs.Denom())}}
	if f := prod(free); f > 1 {
		factors = append(factors, sqrt{arg: num{big.NewRat(f, 1)}, s: "sqrt(" + strconv.FormatInt(f, 10) + ")"})
	}
	if neg {
		factors = append(factors, I)
	}

	return Mul(factors...)
}

func prod(xs []int64) int64 {
	p := int64(1)
	for _, x := range xs {
		p *= x
	}

	return p
}

// ---------- String ----------

func (n num) String() string { return n.v.RatString() }
func (f flt) String() string { return formatFloat(f.v) }
func (s sym) String() string { return s.name }
func (a add) String() string { return a.s }
func (m mul) String() string { return m.s }
func (p pow) String() string { return p.s }
func (q sqrt) String() string { return q.s }

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}

	return s
}

// Equal reports structural equality.
func Equal(a, b Expr) bool { return a.String() == b.String() }
