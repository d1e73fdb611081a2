// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math/big"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
)

// Evaluator maps a ring element to its numeric value. ok is false when the
// element has no numeric value (free symbols).
type Evaluator[E any] func(x E) (v complex128, ok bool)

// RatEvaluator evaluates a rational exactly rounded to float64.
func RatEvaluator(x *big.Rat) (complex128, bool) {
	if x == nil {
		return 0, false
	}
	f, _ := x.Float64()

	return complex(f, 0), true
}

// ExprEvaluator evaluates a symbol-free expression, radicals and the
// imaginary unit included.
func ExprEvaluator(x expr.Expr) (complex128, bool) {
	if len(expr.FreeSymbols(x)) > 0 {
		return 0, false
	}

	return expr.Complex(x)
}

// realValue evaluates x and requires a real result.
func realValue[E any](eval Evaluator[E], x E) (float64, error) {
	v, ok := eval(x)
	if !ok {
		return 0, ErrNotNumeric
	}
	if imag(v) != 0 {
		return 0, fmt.Errorf("%v: %w", v, ErrNotReal)
	}

	return real(v), nil
}

// ToDense converts m into a gonum dense matrix, entry by entry.
//
// Errors:
//   - ErrEmpty for a zero dimension.
//   - ErrNotNumeric / ErrNotReal for an entry without a real value; the
//     error names the entry.
func ToDense[E any](m matrix.Matrix[E], eval Evaluator[E]) (*mat.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}
	r, c := m.Rows(), m.Cols()
	if r == 0 || c == 0 {
		return nil, ErrEmpty
	}
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			if data[i*c+j], err = realValue(eval, x); err != nil {
				return nil, fmt.Errorf("entry (%d,%d): %w", i, j, err)
			}
		}
	}

	return mat.NewDense(r, c, data), nil
}

// ToExpr lifts a gonum matrix back into the exact engine as float literals.
func ToExpr(d mat.Matrix) (*matrix.Dense[expr.Expr], error) {
	r, c := d.Dims()
	data := make([]expr.Expr, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, expr.Float(d.At(i, j)))
		}
	}

	return matrix.FromSlice[expr.Expr](expr.NewField(), r, c, data)
}
