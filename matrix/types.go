// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the reduction, decomposition and
// eigen layers. This file intentionally contains ONLY data types (pivot
// reports, row swaps, method selectors, eigen triples). Errors and options
// live in dedicated files (errors.go, options.go).
package matrix

import "fmt"

// Swap records one row interchange (I, J) performed by an elimination.
// Swaps are replayed in order by PermutationMatrix and PermuteRows.
type Swap struct {
	I, J int
}

// Determined is an entry whose zero-ness a pivot search decided, together
// with the (possibly simplified) value that should be written back.
// Index is relative to the searched column slice.
type Determined[E any] struct {
	Index int
	Value E
}

// PivotResult is the report of a pivot search.
//   - Offset is -1 when no pivot exists.
//   - AssumedNonzero is true when the pivot was chosen without a proof.
//   - Newly lists entries determined during the search; callers write them back.
type PivotResult[E any] struct {
	Offset         int
	Value          E
	AssumedNonzero bool
	Newly          []Determined[E]
}

// Found reports whether a pivot was selected.
func (p PivotResult[E]) Found() bool { return p.Offset >= 0 }

// PivotEvent is emitted to a PivotHook after every successful pivot search.
type PivotEvent struct {
	Op      string // operation tag (e.g., "RREF", "LUDecompositionSimple")
	Column  int    // pivot column in the working matrix
	Offset  int    // row offset of the pivot within the searched slice
	Assumed bool   // pivot chosen without a non-zero proof
	Newly   int    // number of entries decided during the search
}

// PivotHook observes pivot decisions. It must not retain the event.
type PivotHook func(PivotEvent)

// DetMethod selects the determinant algorithm.
type DetMethod int

const (
	// DetBareiss is fraction-free elimination (default).
	DetBareiss DetMethod = iota
	// DetBerkowitz is division-free and never consults the zero oracle.
	DetBerkowitz
	// DetLU multiplies the diagonal of a Doolittle factorization.
	DetLU
)

// String implements fmt.Stringer.
func (m DetMethod) String() string {
	switch m {
	case DetBareiss:
		return "bareiss"
	case DetBerkowitz:
		return "berkowitz"
	case DetLU:
		return "lu"
	default:
		return fmt.Sprintf("DetMethod(%d)", int(m))
	}
}

// ParseDetMethod maps a case-sensitive lower-case name back to a DetMethod.
func ParseDetMethod(s string) (DetMethod, error) {
	for _, m := range []DetMethod{DetBareiss, DetBerkowitz, DetLU} {
		if m.String() == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("matrix: unknown determinant method %q", s)
}

// InverseMethod selects how Inverse, Solve and SolveLeastSquares work.
type InverseMethod int

const (
	// InvGE is Gauss-Jordan elimination on [A | I] (Inverse default).
	InvGE InverseMethod = iota
	// InvLU solves against the identity through an LU factorization.
	InvLU
	// InvADJ divides the adjugate by the Berkowitz determinant.
	InvADJ
	// InvCH uses a Cholesky factorization (SolveLeastSquares default).
	InvCH
	// InvLDL uses an LDLᴴ factorization.
	InvLDL
	// InvQR uses a Gram-Schmidt QR factorization.
	InvQR
	// InvPINV uses the Moore-Penrose pseudoinverse.
	InvPINV
)

// String implements fmt.Stringer.
func (m InverseMethod) String() string {
	switch m {
	case InvGE:
		return "GE"
	case InvLU:
		return "LU"
	case InvADJ:
		return "ADJ"
	case InvCH:
		return "CH"
	case InvLDL:
		return "LDL"
	case InvQR:
		return "QR"
	case InvPINV:
		return "PINV"
	default:
		return fmt.Sprintf("InverseMethod(%d)", int(m))
	}
}

// ParseInverseMethod maps a method name ("GE", "LU", ...) to an InverseMethod.
func ParseInverseMethod(s string) (InverseMethod, error) {
	for m := InvGE; m <= InvPINV; m++ {
		if m.String() == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("matrix: unknown inverse method %q", s)
}

// EigenTriple is one eigenvalue with its algebraic multiplicity and a basis
// of its eigenspace (column vectors).
type EigenTriple[E any] struct {
	Value E
	Mult  int
	Basis []*Dense[E]
}

// GJSolution is the full answer of GaussJordanSolve.
//
// Particular and Homogeneous are always filled: every solution is
// Particular + Σ tᵢ·Homogeneous[i]. X and Params are only available when the
// domain can mint symbols; X is then the general solution expressed in the
// parameter symbols held by Params ((cols-rank) × rhs cols).
type GJSolution[E any] struct {
	X           *Dense[E]
	Params      *Dense[E]
	Particular  *Dense[E]
	Homogeneous []*Dense[E]
	FreeCols    []int
}
