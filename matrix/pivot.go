// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"github.com/katalvlaran/symla/ring"
)

// FindPivot selects a pivot from col with the multi-pass strategy used by
// row reduction.
//
// Implementation:
//   - Stage 0: numeric fast path. When every entry is a plain literal and at
//     least one is floating point, pick the entry of largest magnitude; if
//     even that is zero by the oracle, report no pivot and mark every
//     non-zero literal as newly determined zero.
//   - Stage 1: return the first entry whose IsZero is False.
//   - Stage 2: simplify each undecided entry and re-test; decided entries
//     are reported in Newly with their simplified value.
//   - Stage 3: ask the domain's ZeroProver about the remaining undecided
//     entries; only a True proof counts.
//   - Stage 4: the first still-undecided entry is returned as an assumed
//     non-zero pivot.
//
// Behavior highlights:
//   - An empty column, or a column of provable zeros, yields Offset = -1.
//   - The input slice is never modified.
//
// Complexity:
//   - O(len(col)) oracle calls per stage.
func FindPivot[E any](dom ring.Domain[E], col []E, opts ...Option) PivotResult[E] {
	return newEngine(dom, gatherOptions(opts...)).findPivot(col)
}

// FindPivotNaive selects the first provably non-zero entry of col.
// When none exists and simplify is true, undecided entries are simplified
// (changed values are reported in Newly) and re-tested. Otherwise the first
// undecided entry is returned as an assumed pivot.
func FindPivotNaive[E any](dom ring.Domain[E], col []E, simplify bool, opts ...Option) PivotResult[E] {
	e := newEngine(dom, gatherOptions(opts...))

	return e.findPivotNaive(col, e.isZero, simplify)
}

func noPivot[E any](newly []Determined[E]) PivotResult[E] {
	return PivotResult[E]{Offset: -1, Newly: newly}
}

func (e *engine[E]) findPivot(col []E) PivotResult[E] {
	if res, ok := e.numericPivot(col); ok {
		return res
	}

	var newly []Determined[E]
	possible := make([]ring.Ternary, len(col))
	for i, x := range col {
		z := e.isZero(x)
		if z == ring.False {
			return PivotResult[E]{Offset: i, Value: x}
		}
		possible[i] = z
	}
	if allTrue(possible) {
		return noPivot(newly)
	}

	for i, x := range col {
		if possible[i] != ring.Unknown {
			continue
		}
		simped := e.simplify(x)
		z := e.isZero(simped)
		if z.Known() {
			newly = append(newly, Determined[E]{Index: i, Value: simped})
		}
		if z == ring.False {
			return PivotResult[E]{Offset: i, Value: simped, Newly: newly}
		}
		possible[i] = z
	}
	if allTrue(possible) {
		return noPivot(newly)
	}

	if zp, ok := e.dom.(ring.ZeroProver[E]); ok {
		for i, x := range col {
			if possible[i] != ring.Unknown {
				continue
			}
			if zp.EqualsZero(x) == ring.True {
				possible[i] = ring.True
				newly = append(newly, Determined[E]{Index: i, Value: e.dom.Zero()})
			}
		}
		if allTrue(possible) {
			return noPivot(newly)
		}
	}

	for i, z := range possible {
		if z == ring.Unknown {
			return PivotResult[E]{Offset: i, Value: col[i], AssumedNonzero: true, Newly: newly}
		}
	}

	return noPivot(newly)
}

// numericPivot is the floating-point fast path of findPivot.
// ok is false when the column does not qualify.
func (e *engine[E]) numericPivot(col []E) (PivotResult[E], bool) {
	fl, ok := e.floating()
	if !ok || len(col) == 0 {
		return PivotResult[E]{}, false
	}
	vals := make([]float64, len(col))
	anyFloat := false
	for i, x := range col {
		v, isFloat, lit := fl.Literal(x)
		if !lit {
			return PivotResult[E]{}, false
		}
		anyFloat = anyFloat || isFloat
		vals[i] = v
	}
	if !anyFloat {
		return PivotResult[E]{}, false
	}

	best := 0
	for i := 1; i < len(vals); i++ {
		if math.Abs(vals[i]) > math.Abs(vals[best]) {
			best = i
		}
	}
	if e.provablyZero(col[best]) {
		var newly []Determined[E]
		if vals[best] != 0 {
			for i, v := range vals {
				if v != 0 {
					newly = append(newly, Determined[E]{Index: i, Value: e.dom.Zero()})
				}
			}
		}
		return noPivot(newly), true
	}

	return PivotResult[E]{Offset: best, Value: col[best]}, true
}

// findPivotNaive is the search used by LU and Bareiss. isZero is the test
// to apply; simplify enables the second pass.
func (e *engine[E]) findPivotNaive(col []E, isZero func(E) ring.Ternary, simplify bool) PivotResult[E] {
	var undecided []int
	for i, x := range col {
		switch isZero(x) {
		case ring.False:
			return PivotResult[E]{Offset: i, Value: x}
		case ring.Unknown:
			undecided = append(undecided, i)
		}
	}
	if len(undecided) == 0 {
		return noPivot[E](nil)
	}
	first := undecided[0]
	if !simplify {
		return PivotResult[E]{Offset: first, Value: col[first], AssumedNonzero: true}
	}

	var newly []Determined[E]
	for _, i := range undecided {
		simped := e.simplify(col[i])
		if e.dom.Equal(simped, col[i]) {
			continue
		}
		newly = append(newly, Determined[E]{Index: i, Value: simped})
		if isZero(simped) == ring.False {
			return PivotResult[E]{Offset: i, Value: simped, Newly: newly}
		}
	}

	return PivotResult[E]{Offset: first, Value: col[first], AssumedNonzero: true, Newly: newly}
}

func allTrue(ts []ring.Ternary) bool {
	for _, t := range ts {
		if t != ring.True {
			return false
		}
	}

	return true
}
