// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Canonical form: multivariate polynomials over Q whose indeterminates
// ("atoms") are symbols and square-root radicals. A radical atom r carries its
// square, so r^2 is always reduced and radical exponents stay in {0, 1}.
// With prime radicals and I this representation is canonical, which makes the
// zero test of a polynomial exact.

type atomKind uint8

const (
	atomSym atomKind = iota
	atomPrime
	atomImag
	atomOpaque
)

type atom struct {
	kind  atomKind
	name  string // symbol name
	prime int64  // atomPrime
	rad   *poly  // atomOpaque radicand
	key   string // total order across kinds
}

func symAtom(name string) *atom {
	return &atom{kind: atomSym, name: name, key: "0:" + name}
}

func primeAtom(p int64) *atom {
	return &atom{kind: atomPrime, prime: p, key: fmt.Sprintf("1:%020d", p)}
}

var imagAtom = &atom{kind: atomImag, key: "2:I"}

func opaqueAtom(rad *poly) *atom {
	return &atom{kind: atomOpaque, rad: rad, key: "3:" + rad.key()}
}

func (a *atom) radical() bool { return a.kind != atomSym }

// square returns a^2 for radical atoms.
func (a *atom) square() *poly {
	switch a.kind {
	case atomPrime:
		return constPoly(big.NewRat(a.prime, 1))
	case atomImag:
		return constPoly(big.NewRat(-1, 1))
	case atomOpaque:
		return a.rad
	}

	return nil
}

type factor struct {
	a *atom
	e int
}

// mono is a product of atoms sorted by key, with positive exponents.
type mono []factor

func (m mono) key() string {
	if len(m) == 0 {
		return ""
	}
	parts := make([]string, len(m))
	for i, f := range m {
		parts[i] = fmt.Sprintf("%s^%d", f.a.key, f.e)
	}

	return strings.Join(parts, "*")
}

func (m mono) has(a *atom) int {
	for _, f := range m {
		if f.a.key == a.key {
			return f.e
		}
	}

	return 0
}

// without drops atom a from m.
func (m mono) without(a *atom) mono {
	out := make(mono, 0, len(m))
	for _, f := range m {
		if f.a.key != a.key {
			out = append(out, f)
		}
	}

	return out
}

// mergeMono multiplies monomials without reducing radicals.
func mergeMono(a, b mono) mono {
	out := make(mono, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].a.key == b[j].a.key:
			out = append(out, factor{a: a[i].a, e: a[i].e + b[j].e})
			i++
			j++
		case a[i].a.key < b[j].a.key:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)

	return append(out, b[j:]...)
}

// compareMono is the lexicographic order on exponent vectors, atoms ordered
// by key with the smallest key most significant.
func compareMono(a, b mono) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].a.key == b[j].a.key:
			if a[i].e != b[j].e {
				if a[i].e > b[j].e {
					return 1
				}
				return -1
			}
			i++
			j++
		case a[i].a.key < b[j].a.key:
			return 1
		default:
			return -1
		}
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}

	return 0
}

// divMono returns a/b when b divides a.
func divMono(a, b mono) (mono, bool) {
	out := make(mono, 0, len(a))
	j := 0
	for _, f := range a {
		if j < len(b) && b[j].a.key == f.a.key {
			if b[j].e > f.e {
				return nil, false
			}
			if e := f.e - b[j].e; e > 0 {
				out = append(out, factor{a: f.a, e: e})
			}
			j++
			continue
		}
		if j < len(b) && b[j].a.key < f.a.key {
			return nil, false
		}
		out = append(out, f)
	}
	if j < len(b) {
		return nil, false
	}

	return out, true
}

type term struct {
	m mono
	c *big.Rat
}

// poly maps monomial keys to terms with nonzero coefficients.
type poly struct {
	terms map[string]term
}

func newPoly() *poly { return &poly{terms: make(map[string]term)} }

func constPoly(q *big.Rat) *poly {
	p := newPoly()
	p.addTerm(nil, q)

	return p
}

func atomPoly(a *atom) *poly {
	p := newPoly()
	p.addTerm(mono{{a: a, e: 1}}, big.NewRat(1, 1))

	return p
}

func monoPoly(m mono, c *big.Rat) *poly {
	p := newPoly()
	p.addTerm(m, c)

	return p
}

// addTerm accumulates c*m in place.
func (p *poly) addTerm(m mono, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	k := m.key()
	if t, ok := p.terms[k]; ok {
		s := new(big.Rat).Add(t.c, c)
		if s.Sign() == 0 {
			delete(p.terms, k)
			return
		}
		p.terms[k] = term{m: t.m, c: s}
		return
	}
	p.terms[k] = term{m: m, c: new(big.Rat).Set(c)}
}

func (p *poly) isZero() bool { return len(p.terms) == 0 }

// constValue returns the value of a constant polynomial.
func (p *poly) constValue() (*big.Rat, bool) {
	switch len(p.terms) {
	case 0:
		return new(big.Rat), true
	case 1:
		if t, ok := p.terms[""]; ok {
			return t.c, true
		}
	}

	return nil, false
}

func (p *poly) isOne() bool {
	v, ok := p.constValue()

	return ok && v.Cmp(oneRat) == 0
}

// sorted returns the terms in decreasing monomial order.
func (p *poly) sorted() []term {
	out := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return compareMono(out[i].m, out[j].m) > 0 })

	return out
}

func (p *poly) lead() term { return p.sorted()[0] }

func (p *poly) key() string {
	ts := p.sorted()
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.c.RatString() + "*" + t.m.key()
	}

	return strings.Join(parts, " + ")
}

func (p *poly) clone() *poly {
	q := newPoly()
	for k, t := range p.terms {
		q.terms[k] = t
	}

	return q
}

func addPoly(a, b *poly) *poly {
	r := a.clone()
	for _, t := range b.terms {
		r.addTerm(t.m, t.c)
	}

	return r
}

func scalePoly(a *poly, q *big.Rat) *poly {
	r := newPoly()
	for _, t := range a.terms {
		r.addTerm(t.m, new(big.Rat).Mul(t.c, q))
	}

	return r
}

func negPoly(a *poly) *poly { return scalePoly(a, big.NewRat(-1, 1)) }

func subPoly(a, b *poly) *poly { return addPoly(a, negPoly(b)) }

// mulMono multiplies two monomials and reduces radical powers.
func mulMono(a, b mono) *poly {
	merged := mergeMono(a, b)
	var extra *poly
	out := make(mono, 0, len(merged))
	for _, f := range merged {
		if f.a.radical() && f.e >= 2 {
			for k := 0; k < f.e/2; k++ {
				if extra == nil {
					extra = f.a.square()
				} else {
					extra = mulPoly(extra, f.a.square())
				}
			}
			f.e %= 2
		}
		if f.e > 0 {
			out = append(out, f)
		}
	}
	base := monoPoly(out, big.NewRat(1, 1))
	if extra == nil {
		return base
	}

	return mulPoly(base, extra)
}

func mulPoly(a, b *poly) *poly {
	r := newPoly()
	for _, ta := range a.terms {
		for _, tb := range b.terms {
			c := new(big.Rat).Mul(ta.c, tb.c)
			m := mulMono(ta.m, tb.m)
			for _, tm := range m.terms {
				r.addTerm(tm.m, new(big.Rat).Mul(c, tm.c))
			}
		}
	}

	return r
}

func powPoly(a *poly, n int) *poly {
	res := constPoly(big.NewRat(1, 1))
	base := a
	for n > 0 {
		if n&1 == 1 {
			res = mulPoly(res, base)
		}
		n >>= 1
		if n > 0 {
			base = mulPoly(base, base)
		}
	}

	return res
}

// radicals lists the radical atoms occurring in p, sorted by key.
func (p *poly) radicals() []*atom {
	seen := make(map[string]*atom)
	for _, t := range p.terms {
		for _, f := range t.m {
			if f.a.radical() {
				seen[f.a.key] = f.a
			}
		}
	}
	out := make([]*atom, 0, len(seen))
	for _, a := range seen {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })

	return out
}

// symbolAtoms lists the symbol atoms occurring in p.
func (p *poly) symbolAtoms() []*atom {
	seen := make(map[string]*atom)
	for _, t := range p.terms {
		for _, f := range t.m {
			if f.a.kind == atomSym {
				seen[f.a.key] = f.a
			}
		}
	}
	out := make([]*atom, 0, len(seen))
	for _, a := range seen {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })

	return out
}

func (p *poly) hasKind(k atomKind) bool {
	for _, t := range p.terms {
		for _, f := range t.m {
			if f.a.kind == k {
				return true
			}
		}
	}

	return false
}

// split writes p = a + r*b for a radical atom r (exponent at most one).
func (p *poly) split(r *atom) (a, b *poly) {
	a, b = newPoly(), newPoly()
	for _, t := range p.terms {
		if t.m.has(r) > 0 {
			b.addTerm(t.m.without(r), t.c)
			continue
		}
		a.addTerm(t.m, t.c)
	}

	return a, b
}

// divExact divides p by a radical-free d, failing unless d divides p.
func divExact(p, d *poly) (*poly, bool) {
	if d.isZero() {
		return nil, false
	}
	ld := d.lead()
	r := p.clone()
	q := newPoly()
	for steps := 0; !r.isZero(); steps++ {
		if steps > 4096 {
			return nil, false
		}
		lr := r.lead()
		m, ok := divMono(lr.m, ld.m)
		if !ok {
			return nil, false
		}
		c := new(big.Rat).Quo(lr.c, ld.c)
		q.addTerm(m, c)
		r = subPoly(r, mulPoly(monoPoly(m, c), d))
	}

	return q, true
}

// monomialGCD returns the common symbol part of every term of a and b.
func monomialGCD(a, b *poly) mono {
	var g mono
	first := true
	for _, p := range []*poly{a, b} {
		for _, t := range p.terms {
			var syms mono
			for _, f := range t.m {
				if f.a.kind == atomSym {
					syms = append(syms, f)
				}
			}
			if first {
				g = syms
				first = false
				continue
			}
			g = minMono(g, syms)
		}
	}

	return g
}

func minMono(a, b mono) mono {
	var out mono
	for _, f := range a {
		e := b.has(f.a)
		if e == 0 {
			continue
		}
		if e > f.e {
			e = f.e
		}
		out = append(out, factor{a: f.a, e: e})
	}

	return out
}

func divByMono(p *poly, m mono) *poly {
	r := newPoly()
	for _, t := range p.terms {
		q, _ := divMono(t.m, m)
		r.addTerm(q, t.c)
	}

	return r
}

// univariate returns the dense coefficients (leading first) of p viewed as a
// polynomial in the single symbol atom x.
func (p *poly) univariate(x *atom) []*big.Rat {
	deg := 0
	for _, t := range p.terms {
		if e := t.m.has(x); e > deg {
			deg = e
		}
	}
	out := make([]*big.Rat, deg+1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for _, t := range p.terms {
		e := t.m.has(x)
		out[deg-e].Add(out[deg-e], t.c)
	}

	return out
}

func fromUnivariate(c []*big.Rat, x *atom) *poly {
	p := newPoly()
	deg := len(c) - 1
	for i, a := range c {
		e := deg - i
		if e == 0 {
			p.addTerm(nil, a)
			continue
		}
		p.addTerm(mono{{a: x, e: e}}, a)
	}

	return p
}

// gcdUnivariate is the monic Euclidean gcd over Q.
func gcdUnivariate(a, b []*big.Rat) []*big.Rat {
	a, b = trimRat(a), trimRat(b)
	for !(len(b) == 1 && b[0].Sign() == 0) {
		a, b = b, remUnivariate(a, b)
	}
	lc := a[0]
	out := make([]*big.Rat, len(a))
	for i, x := range a {
		out[i] = new(big.Rat).Quo(x, lc)
	}

	return out
}

func trimRat(c []*big.Rat) []*big.Rat {
	i := 0
	for i < len(c)-1 && c[i].Sign() == 0 {
		i++
	}

	return c[i:]
}

func remUnivariate(a, b []*big.Rat) []*big.Rat {
	r := make([]*big.Rat, len(a))
	for i := range a {
		r[i] = new(big.Rat).Set(a[i])
	}
	for len(r) >= len(b) && !(len(r) == 1 && r[0].Sign() == 0) {
		q := new(big.Rat).Quo(r[0], b[0])
		for i := range b {
			r[i].Sub(r[i], new(big.Rat).Mul(q, b[i]))
		}
		r = r[1:]
		if len(r) == 0 {
			return []*big.Rat{new(big.Rat)}
		}
		r = trimRat(r)
	}

	return r
}
