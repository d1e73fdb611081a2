// SPDX-License-Identifier: MIT

package expr

import "github.com/katalvlaran/symla/ring"

// Field is the symbolic domain over Expr. It supports every optional ring
// capability, so all matrix algorithms accept it.
type Field struct{}

var (
	_ ring.Domain[Expr]     = Field{}
	_ ring.Sqrter[Expr]     = Field{}
	_ ring.Conjugator[Expr] = Field{}
	_ ring.RootFinder[Expr] = Field{}
	_ ring.Symbolic[Expr]   = Field{}
	_ ring.Floating[Expr]   = Field{}
	_ ring.Orderer[Expr]    = Field{}
	_ ring.Expander[Expr]   = Field{}
	_ ring.ZeroProver[Expr] = Field{}
	_ ring.GCDer[Expr]      = Field{}
)

// NewField returns the symbolic domain.
func NewField() Field { return Field{} }

func (Field) IsZero(x Expr) ring.Ternary { return IsZero(x) }
func (Field) Simplify(x Expr) Expr { return Simplify(x) }
func (Field) EqualsZero(x Expr) ring.Ternary { return EqualsZero(x) }
func (Field) ExpandIsZero(x Expr) bool { return EqualsZero(x) == ring.True }

func (Field) Zero() Expr { return Int(0) }
func (Field) One() Expr { return Int(1) }
func (Field) FromInt(n int64) Expr { return Int(n) }
func (Field) Add(a, b Expr) Expr { return Add(a, b) }
func (Field) Sub(a, b Expr) Expr { return Sub(a, b) }
func (Field) Mul(a, b Expr) Expr { return Mul(a, b) }
func (Field) Div(a, b Expr) Expr { return Div(a, b) }
func (Field) Neg(a Expr) Expr { return Neg(a) }
func (Field) Equal(a, b Expr) bool { return Equal(a, b) }
func (Field) Format(x Expr) string { return x.String() }
func (Field) Compare(a, b Expr) int { return Compare(a, b) }
func (Field) Conj(x Expr) Expr { return Conj(x) }
func (Field) IsReal(x Expr) ring.Ternary { return IsReal(x) }

// Sqrt implements ring.Sqrter; every square root is representable.
func (Field) Sqrt(x Expr) (Expr, bool) { return Simplify(Sqrt(x)), true }

// Roots implements ring.RootFinder.
func (Field) Roots(coeffs []Expr) ([]ring.Root[Expr], bool) { return Roots(coeffs) }

func (Field) Symbol(name string) Expr { return Symbol(name) }
func (Field) FreeSymbols(x Expr) []string { return FreeSymbols(x) }
func (Field) HasFloat(x Expr) bool { return HasFloat(x) }
func (Field) Rationalize(x Expr) Expr { return Rationalize(x) }
func (Field) Evalf(x Expr, chop bool) Expr { return Evalf(x, chop) }
func (Field) Literal(x Expr) (float64, bool, bool) { return Literal(x) }

// GCD implements ring.GCDer for rational literals and returns 1 otherwise.
func (Field) GCD(a, b Expr) Expr {
	p, ok1 := AsRat(a)
	q, ok2 := AsRat(b)
	if !ok1 || !ok2 {
		return Int(1)
	}

	return num{ring.Rat{}.GCD(p, q)}
}
