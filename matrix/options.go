// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the exact reduction engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Reusability: Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - Options is not generic so that one option list can be shared by every
//     coefficient type. The two oracle overrides (WithIsZero, WithSimplify)
//     carry a typed function; a function whose element type differs from the
//     matrix it is applied to is a programmer error and panics.
//   - Observability is opt-in: the logger defaults to zap.NewNop() and the
//     pivot hook to nil, so the hot path pays nothing unless asked.
package matrix

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/symla/ring"
)

// ---------- Defaults (single source of truth) ----------

// Method selection.
const (
	// DefaultDetMethod is used by Det, Minor and Cofactor.
	DefaultDetMethod = DetBareiss

	// DefaultInverseMethod is used by Inverse and Solve.
	DefaultInverseMethod = InvGE

	// DefaultLeastSquaresMethod is used by SolveLeastSquares.
	DefaultLeastSquaresMethod = InvCH
)

// Reduction policy.
const (
	// DefaultNormalizeLast defers pivot-row division to the end of RREF.
	DefaultNormalizeLast = true

	// DefaultIntermediateSimplify leaves elimination updates unsimplified.
	DefaultIntermediateSimplify = false

	// DefaultPivotSimplify disables simplification in the naive LU pivot search.
	DefaultPivotSimplify = false

	// DefaultRankCheck lets LUDecompositionSimple factor rank-deficient input.
	DefaultRankCheck = false
)

// Polynomial and eigen policy.
const (
	// DefaultCharPolyVar is the indeterminate name of CharPoly.
	DefaultCharPolyVar = "lambda"

	// DefaultRational replaces floats by rationals before computing eigenvalues.
	DefaultRational = true

	// DefaultErrorWhenIncomplete fails Eigenvals when roots are missing.
	DefaultErrorWhenIncomplete = true

	// DefaultChop drops negligible numeric residues when floats are restored.
	DefaultChop = false

	// DefaultPrimitive keeps eigenvectors exactly as the null space yields them.
	DefaultPrimitive = false

	// DefaultRealsOnly accepts complex eigenvalues in IsDiagonalizable.
	DefaultRealsOnly = false

	// DefaultClearCache drops cached eigen data after IsDiagonalizable/Diagonalize.
	DefaultClearCache = true

	// DefaultSort keeps Diagonalize in eigenvalue discovery order.
	DefaultSort = false

	// DefaultNormalize keeps Diagonalize eigenvectors unnormalized.
	DefaultNormalize = false

	// DefaultCalcTransform makes JordanForm compute the basis P.
	DefaultCalcTransform = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNilLogger       = "matrix: WithLogger: logger must be non-nil"
	panicCharPolyVar     = "matrix: WithCharPolyVar: name must be a non-empty identifier"
	panicDetMethod       = "matrix: WithDetMethod: unknown method"
	panicInverseMethod   = "matrix: WithInverseMethod: unknown method"
	panicOracleTypeMixup = "matrix: oracle override element type does not match the matrix"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	// observability
	logger    *zap.Logger // never nil after gatherOptions
	pivotHook PivotHook   // optional

	// oracle overrides (func(E) ring.Ternary / func(E) E, or nil)
	isZero   any
	simplify any

	// method selection
	detMethod     DetMethod
	inverseMethod InverseMethod
	inverseSet    bool // inverseMethod was chosen explicitly

	// reduction policy
	normalizeLast        bool
	intermediateSimplify bool
	pivotSimplify        bool
	rankCheck            bool

	// polynomial & eigen policy
	charPolyVar         string
	rational            bool
	errorWhenIncomplete bool
	chop                bool
	primitive           bool
	realsOnly           bool
	clearCache          bool
	sort                bool
	normalize           bool
	calcTransform       bool
}

// ---------- Constructors (WithX) ----------

// WithLogger routes debug diagnostics (assumed pivots, eigen retries, Jordan
// fast paths) to l. Panics when l is nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// WithPivotHook registers fn to observe every pivot decision.
// Implementation:
//   - Stage 1: store fn; a nil fn disables the hook.
//
// Behavior highlights:
//   - Called synchronously on the computing goroutine, after write-back of
//     newly determined entries and before the elimination step.
//
// Notes:
//   - The metrics package uses this hook to count assumed pivots.
func WithPivotHook(fn PivotHook) Option {
	return func(o *Options) { o.pivotHook = fn }
}

// WithIsZero overrides the zero test of the matrix domain.
// The element type is inferred from fn and must match the matrix.
func WithIsZero[E any](fn func(E) ring.Ternary) Option {
	return func(o *Options) {
		if fn == nil {
			o.isZero = nil
			return
		}
		o.isZero = fn
	}
}

// WithSimplify overrides the simplifier of the matrix domain.
// Use ring.NoSimplify[E] to disable simplification entirely.
func WithSimplify[E any](fn func(E) E) Option {
	return func(o *Options) {
		if fn == nil {
			o.simplify = nil
			return
		}
		o.simplify = fn
	}
}

// WithDetMethod selects the determinant algorithm for Det, Minor, Cofactor,
// CofactorMatrix and Adjugate.
func WithDetMethod(m DetMethod) Option {
	if m < DetBareiss || m > DetLU {
		panic(panicDetMethod)
	}

	return func(o *Options) { o.detMethod = m }
}

// WithInverseMethod selects the method of Inverse, Solve and SolveLeastSquares.
func WithInverseMethod(m InverseMethod) Option {
	if m < InvGE || m > InvPINV {
		panic(panicInverseMethod)
	}

	return func(o *Options) {
		o.inverseMethod = m
		o.inverseSet = true
	}
}

// WithNormalizeLast controls when RREF divides pivot rows by their pivot:
// true (default) once at the end, false immediately after each pivot.
func WithNormalizeLast(v bool) Option {
	return func(o *Options) { o.normalizeLast = v }
}

// WithIntermediateSimplify simplifies every entry touched by an elimination
// update. It keeps symbolic expressions small at the cost of oracle calls.
func WithIntermediateSimplify(v bool) Option {
	return func(o *Options) { o.intermediateSimplify = v }
}

// WithPivotSimplify lets the naive LU pivot search simplify undecided entries.
func WithPivotSimplify(v bool) Option {
	return func(o *Options) { o.pivotSimplify = v }
}

// WithRankCheck makes LUDecompositionSimple fail with ErrRankDeficient on
// rank-deficient input instead of returning a partial factorization.
func WithRankCheck(v bool) Option {
	return func(o *Options) { o.rankCheck = v }
}

// WithCharPolyVar sets the indeterminate name used by CharPoly.
// A name colliding with a free symbol of the matrix is prefixed with '_'.
func WithCharPolyVar(name string) Option {
	if !isIdent(name) {
		panic(panicCharPolyVar)
	}

	return func(o *Options) { o.charPolyVar = name }
}

// WithRational controls float rationalization before eigenvalue computation.
func WithRational(v bool) Option {
	return func(o *Options) { o.rational = v }
}

// WithErrorWhenIncomplete controls whether Eigenvals fails with
// ErrEigenIncomplete when the roots found do not cover every eigenvalue.
func WithErrorWhenIncomplete(v bool) Option {
	return func(o *Options) { o.errorWhenIncomplete = v }
}

// WithChop drops negligible residues when float results are restored.
func WithChop(v bool) Option {
	return func(o *Options) { o.chop = v }
}

// WithPrimitive divides every eigenvector by the gcd of its entries.
func WithPrimitive(v bool) Option {
	return func(o *Options) { o.primitive = v }
}

// WithRealsOnly makes IsDiagonalizable reject matrices with non-real eigenvalues.
func WithRealsOnly(v bool) Option {
	return func(o *Options) { o.realsOnly = v }
}

// WithClearCache controls whether cached eigen data is dropped after use.
func WithClearCache(v bool) Option {
	return func(o *Options) { o.clearCache = v }
}

// WithSort orders the columns of Diagonalize by ascending eigenvalue.
func WithSort(v bool) Option {
	return func(o *Options) { o.sort = v }
}

// WithNormalize scales the columns of Diagonalize to unit norm.
func WithNormalize(v bool) Option {
	return func(o *Options) { o.normalize = v }
}

// WithCalcTransform controls whether JordanForm computes the basis P.
func WithCalcTransform(v bool) Option {
	return func(o *Options) { o.calcTransform = v }
}

// --------------------------- Option Resolution ---------------------------

// NewOptions resolves option setters against documented defaults.
// It exists mostly for callers that want to inspect defaults in tests.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// DetMethod reports the resolved determinant method.
func (o Options) DetMethod() DetMethod { return o.detMethod }

// InverseMethod reports the resolved inverse method.
func (o Options) InverseMethod() InverseMethod { return o.inverseMethod }

// gatherOptions applies user-provided Option setters on top of defaults and
// finalizes derived invariants.
// Implementation:
//   - Stage 1: start from the Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//   - Stage 3: guarantee a non-nil logger.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := Options{
		logger: zap.NewNop(),

		detMethod:     DefaultDetMethod,
		inverseMethod: DefaultInverseMethod,

		normalizeLast:        DefaultNormalizeLast,
		intermediateSimplify: DefaultIntermediateSimplify,
		pivotSimplify:        DefaultPivotSimplify,
		rankCheck:            DefaultRankCheck,

		charPolyVar:         DefaultCharPolyVar,
		rational:            DefaultRational,
		errorWhenIncomplete: DefaultErrorWhenIncomplete,
		chop:                DefaultChop,
		primitive:           DefaultPrimitive,
		realsOnly:           DefaultRealsOnly,
		clearCache:          DefaultClearCache,
		sort:                DefaultSort,
		normalize:           DefaultNormalize,
		calcTransform:       DefaultCalcTransform,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	return o
}

// isIdent reports whether s is a non-empty ASCII identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
