// SPDX-License-Identifier: MIT

package matrix

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/symla/ring"
)

// Polynomial is a univariate polynomial over a domain, coefficients leading
// first. It is the result of CharPoly.
type Polynomial[E any] struct {
	Var    string
	Coeffs []E
	dom    ring.Domain[E]
}

// Degree returns len(Coeffs)−1 (−1 for the empty polynomial).
func (p *Polynomial[E]) Degree() int { return len(p.Coeffs) - 1 }

// Eval evaluates the polynomial at x with Horner's rule.
func (p *Polynomial[E]) Eval(x E) E {
	acc := p.dom.Zero()
	for _, c := range p.Coeffs {
		acc = p.dom.Add(p.dom.Mul(acc, x), c)
	}

	return acc
}

// AsElement returns the polynomial as a single domain element in the
// symbol Var. ok is false when the domain cannot mint symbols.
func (p *Polynomial[E]) AsElement() (E, bool) {
	s, ok := p.dom.(ring.Symbolic[E])
	if !ok {
		var zero E
		return zero, false
	}

	return p.Eval(s.Symbol(p.Var)), true
}

// String renders the polynomial as "c0*x^n + c1*x^(n-1) + ... + cn",
// skipping provably zero terms.
func (p *Polynomial[E]) String() string {
	var parts []string
	n := p.Degree()
	for i, c := range p.Coeffs {
		if p.dom.IsZero(c) == ring.True {
			continue
		}
		k := n - i
		cs := p.dom.Format(c)
		if strings.ContainsAny(cs, "+- ") && k > 0 && !isSignedAtom(cs) {
			cs = "(" + cs + ")"
		}
		switch {
		case k == 0:
			parts = append(parts, cs)
		case cs == "1":
			parts = append(parts, powerOf(p.Var, k))
		case cs == "-1":
			parts = append(parts, "-"+powerOf(p.Var, k))
		default:
			parts = append(parts, cs+"*"+powerOf(p.Var, k))
		}
	}
	if len(parts) == 0 {
		return "0"
	}

	return strings.ReplaceAll(strings.Join(parts, " + "), "+ -", "- ")
}

func powerOf(v string, k int) string {
	if k == 1 {
		return v
	}

	return v + "^" + strconv.Itoa(k)
}

// isSignedAtom reports whether s is a single term with a leading minus.
func isSignedAtom(s string) bool {
	return strings.HasPrefix(s, "-") && !strings.ContainsAny(s[1:], "+- ")
}

// CharPoly returns det(λI − m) with coefficients simplified.
//
// Behavior highlights:
//   - The indeterminate defaults to "lambda" (WithCharPolyVar overrides); a
//     name colliding with a free symbol of m is prefixed with '_' until unique.
//   - The 0×0 matrix yields the constant polynomial 1.
//
// Errors: ErrNonSquare.
func CharPoly[E any](m Matrix[E], opts ...Option) (*Polynomial[E], error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, matrixErrorf(opCharPoly, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, matrixErrorf(opCharPoly, err)
	}

	return e.charPoly(d, e.o.charPolyVar), nil
}

func (e *engine[E]) charPoly(m *Dense[E], name string) *Polynomial[E] {
	vec := e.berkowitz(m)
	for k := range vec {
		vec[k] = e.simplify(vec[k])
	}

	return &Polynomial[E]{Var: e.uniqueName(name, false, m), Coeffs: vec, dom: e.dom}
}

// IsNilpotent reports whether m^k = 0 for some k, i.e. whether the
// characteristic polynomial is λ^n. The 0×0 matrix is nilpotent.
//
// Errors: ErrNonSquare.
func IsNilpotent[E any](m Matrix[E], opts ...Option) (bool, error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return false, matrixErrorf(opNilpotent, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return false, matrixErrorf(opNilpotent, err)
	}
	p := e.charPoly(d, "x")
	for _, c := range p.Coeffs[1:] {
		if !e.provablyZero(c) {
			return false, nil
		}
	}

	return true, nil
}
