// SPDX-License-Identifier: MIT

package ring

// Oracle is the pluggable zero test used by every elimination algorithm.
//
// Contract:
//   - IsZero must not have side effects; Unknown is always a legal answer.
//   - Simplify returns a value mathematically equal to x, or x itself when no
//     simplification applies. Simplifying an already simplified value must not
//     regress it.
type Oracle[E any] interface {
	IsZero(x E) Ternary
	Simplify(x E) E
}

// Domain is the arithmetic contract of a matrix coefficient type.
// Values are treated as immutable: no method may modify its arguments.
type Domain[E any] interface {
	Oracle[E]

	Zero() E
	One() E
	FromInt(n int64) E

	Add(a, b E) E
	Sub(a, b E) E
	Mul(a, b E) E
	// Div is exact division in the field of fractions of the ring.
	// Dividing by a provable zero is a programmer error; callers test first.
	Div(a, b E) E
	Neg(a E) E

	// Equal is structural equality. It may return false for values that
	// are mathematically equal but not yet simplified.
	Equal(a, b E) bool
	Format(x E) string
}

// Root is one root of a polynomial together with its multiplicity.
type Root[E any] struct {
	Value E
	Mult  int
}

// Sqrter provides principal square roots. ok is false when the root is not
// representable in the domain.
type Sqrter[E any] interface {
	Sqrt(x E) (root E, ok bool)
}

// Conjugator provides complex conjugation.
type Conjugator[E any] interface {
	Conj(x E) E
	IsReal(x E) Ternary
}

// RootFinder finds roots of a polynomial given by its coefficients, leading
// coefficient first. complete reports whether the multiplicities of the
// returned roots add up to the degree.
type RootFinder[E any] interface {
	Roots(coeffs []E) (roots []Root[E], complete bool)
}

// Symbolic domains can create named placeholder symbols.
type Symbolic[E any] interface {
	Symbol(name string) E
	FreeSymbols(x E) []string
}

// Floating domains distinguish exact values from floating-point ones.
type Floating[E any] interface {
	// Literal reports the numeric value of x when x is a plain number
	// literal; float tells whether it is a floating-point literal.
	Literal(x E) (value float64, float bool, ok bool)
	// HasFloat reports whether any floating-point literal occurs in x.
	HasFloat(x E) bool
	// Rationalize replaces floating-point literals with exact rationals.
	Rationalize(x E) E
	// Evalf evaluates x numerically; chop drops negligible residues.
	Evalf(x E, chop bool) E
}

// Orderer supplies a canonical total order.
type Orderer[E any] interface {
	Compare(a, b E) int
}

// Expander decides zero-ness by full expansion.
type Expander[E any] interface {
	ExpandIsZero(x E) bool
}

// ZeroProver is a stronger, more expensive equality-to-zero check.
// Only a True answer is treated as a proof by the engine.
type ZeroProver[E any] interface {
	EqualsZero(x E) Ternary
}

// GCDer provides a greatest common divisor, used to clear common factors
// from vectors. It may return One when no useful divisor is known.
type GCDer[E any] interface {
	GCD(a, b E) E
}

// OracleFuncs adapts plain functions to the Oracle interface.
// A nil field falls back to the wrapped base oracle.
type OracleFuncs[E any] struct {
	Base       Oracle[E]
	IsZeroFn   func(E) Ternary
	SimplifyFn func(E) E
}

// IsZero implements Oracle.
func (o OracleFuncs[E]) IsZero(x E) Ternary {
	if o.IsZeroFn != nil {
		return o.IsZeroFn(x)
	}

	return o.Base.IsZero(x)
}

// Simplify implements Oracle.
func (o OracleFuncs[E]) Simplify(x E) E {
	if o.SimplifyFn != nil {
		return o.SimplifyFn(x)
	}

	return o.Base.Simplify(x)
}

// NoSimplify is a Simplify function that leaves its input untouched.
func NoSimplify[E any](x E) E { return x }

// Pow raises x to a non-negative integer power by repeated squaring.
func Pow[E any](d Domain[E], x E, k int) E {
	res := d.One()
	base := x
	for k > 0 {
		if k&1 == 1 {
			res = d.Mul(res, base)
		}
		k >>= 1
		if k > 0 {
			base = d.Mul(base, base)
		}
	}

	return res
}
