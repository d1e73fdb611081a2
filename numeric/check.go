// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"

	"github.com/katalvlaran/symla/matrix"
)

// DetCheck holds both sides of a determinant cross-check.
type DetCheck struct {
	Exact float64 `json:"exact" yaml:"exact"`
	Float float64 `json:"float" yaml:"float"`
}

// CheckDet computes det(m) exactly with matrix.Det (opts apply) and with
// gonum's LU, and compares the two within tol.
//
// Errors: those of matrix.Det and ToDense; ErrNotNumeric / ErrNotReal when
// the exact determinant has no real value; ErrMismatch.
func CheckDet[E any](m matrix.Matrix[E], eval Evaluator[E], tol Tolerance, opts ...matrix.Option) (DetCheck, error) {
	var out DetCheck
	exact, err := matrix.Det(m, opts...)
	if err != nil {
		return out, err
	}
	if out.Exact, err = realValue(eval, exact); err != nil {
		return out, fmt.Errorf("CheckDet: determinant: %w", err)
	}
	d, err := ToDense(m, eval)
	if err != nil {
		return out, fmt.Errorf("CheckDet: %w", err)
	}
	if out.Float, err = Det(d); err != nil {
		return out, fmt.Errorf("CheckDet: %w", err)
	}
	if !tol.equal(out.Exact, out.Float) {
		return out, fmt.Errorf("CheckDet: exact %g, float %g: %w", out.Exact, out.Float, ErrMismatch)
	}

	return out, nil
}

// EigenCheck holds both sides of an eigenvalue cross-check, each expanded by
// multiplicity and sorted.
type EigenCheck struct {
	Exact []complex128
	Float []complex128
}

// CheckEigenvals computes the eigenvalues of m with matrix.Eigenvals (opts
// apply) and with gonum's Eigen, and compares the sorted lists within tol.
//
// Errors: those of matrix.Eigenvals and ToDense; ErrNotNumeric for a
// symbolic eigenvalue; ErrMismatch.
func CheckEigenvals[E any](m matrix.Matrix[E], eval Evaluator[E], tol Tolerance, opts ...matrix.Option) (EigenCheck, error) {
	var out EigenCheck
	roots, err := matrix.Eigenvals(m, opts...)
	if err != nil {
		return out, err
	}
	for _, r := range roots {
		v, ok := eval(r.Value)
		if !ok {
			return out, fmt.Errorf("CheckEigenvals: eigenvalue: %w", ErrNotNumeric)
		}
		for k := 0; k < r.Mult; k++ {
			out.Exact = append(out.Exact, v)
		}
	}
	sortComplex(out.Exact, tol)

	d, err := ToDense(m, eval)
	if err != nil {
		return out, fmt.Errorf("CheckEigenvals: %w", err)
	}
	if out.Float, err = Eigenvalues(d); err != nil {
		return out, fmt.Errorf("CheckEigenvals: %w", err)
	}
	if len(out.Exact) != len(out.Float) {
		return out, fmt.Errorf("CheckEigenvals: %d exact, %d float: %w", len(out.Exact), len(out.Float), ErrMismatch)
	}
	for k := range out.Exact {
		if !tol.equalComplex(out.Exact[k], out.Float[k]) {
			return out, fmt.Errorf("CheckEigenvals: #%d exact %v, float %v: %w", k, out.Exact[k], out.Float[k], ErrMismatch)
		}
	}

	return out, nil
}
