// SPDX-License-Identifier: MIT

package matrix

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/katalvlaran/symla/ring"
)

// engine binds a domain, the resolved zero oracle and the options of one
// public call. Every algorithm is a method on it so nested calls share
// configuration without re-resolving options.
type engine[E any] struct {
	dom    ring.Domain[E]
	oracle ring.Oracle[E]
	o      Options
	log    *zap.Logger
}

// newEngine resolves oracle overrides against dom.
// Panics with panicOracleTypeMixup when an override has the wrong element type.
func newEngine[E any](dom ring.Domain[E], o Options) *engine[E] {
	var of ring.OracleFuncs[E]
	of.Base = dom
	if o.isZero != nil {
		fn, ok := o.isZero.(func(E) ring.Ternary)
		if !ok {
			panic(panicOracleTypeMixup)
		}
		of.IsZeroFn = fn
	}
	if o.simplify != nil {
		fn, ok := o.simplify.(func(E) E)
		if !ok {
			panic(panicOracleTypeMixup)
		}
		of.SimplifyFn = fn
	}

	return &engine[E]{dom: dom, oracle: of, o: o, log: o.logger}
}

// engineFor resolves opts and returns an engine plus a working copy of m.
func engineFor[E any](m Matrix[E], opts []Option) (*engine[E], *Dense[E], error) {
	d, err := toDense(m)
	if err != nil {
		return nil, nil, err
	}

	return newEngine(d.dom, gatherOptions(opts...)), d, nil
}

// with returns a copy of the engine with adjusted options.
func (e *engine[E]) with(set func(*Options)) *engine[E] {
	cp := *e
	set(&cp.o)

	return &cp
}

func (e *engine[E]) isZero(x E) ring.Ternary { return e.oracle.IsZero(x) }
func (e *engine[E]) simplify(x E) E          { return e.oracle.Simplify(x) }

// provablyZero is the truthiness test used throughout elimination:
// only a True answer counts.
func (e *engine[E]) provablyZero(x E) bool { return e.oracle.IsZero(x) == ring.True }

// step applies the intermediate simplification policy to an updated entry.
func (e *engine[E]) step(x E) E {
	if e.o.intermediateSimplify {
		return e.oracle.Simplify(x)
	}

	return x
}

// equalsZero runs the strongest available proof of x == 0.
// Without a ZeroProver it degrades to the oracle after simplification.
func (e *engine[E]) equalsZero(x E) ring.Ternary {
	if zp, ok := e.dom.(ring.ZeroProver[E]); ok {
		return zp.EqualsZero(x)
	}

	return e.oracle.IsZero(e.oracle.Simplify(x))
}

// expandIsZero is the zero test of Bareiss elimination: a full expansion
// when the domain supports it, the oracle (Unknown counted as non-zero)
// otherwise.
func (e *engine[E]) expandIsZero(x E) ring.Ternary {
	if ex, ok := e.dom.(ring.Expander[E]); ok {
		return ring.Of(ex.ExpandIsZero(x))
	}

	return ring.Of(e.provablyZero(x))
}

// notePivot reports a pivot decision to the hook and the debug log.
func (e *engine[E]) notePivot(op string, col int, p PivotResult[E]) {
	if e.o.pivotHook != nil {
		e.o.pivotHook(PivotEvent{Op: op, Column: col, Offset: p.Offset, Assumed: p.AssumedNonzero, Newly: len(p.Newly)})
	}
	if p.AssumedNonzero {
		e.log.Debug("assumed nonzero pivot",
			zap.String("op", op),
			zap.Int("column", col),
			zap.Int("offset", p.Offset),
		)
	}
}

// symbolic returns the symbol factory of the domain, if any.
func (e *engine[E]) symbolic() (ring.Symbolic[E], bool) {
	s, ok := e.dom.(ring.Symbolic[E])
	return s, ok
}

// floating returns the float capability of the domain, if any.
func (e *engine[E]) floating() (ring.Floating[E], bool) {
	f, ok := e.dom.(ring.Floating[E])
	return f, ok
}

// conj conjugates x, or returns it unchanged in domains without a Conjugator.
func (e *engine[E]) conj(x E) E {
	if c, ok := e.dom.(ring.Conjugator[E]); ok {
		return c.Conj(x)
	}

	return x
}

// isReal reports whether x is real; domains without a Conjugator are real.
func (e *engine[E]) isReal(x E) ring.Ternary {
	if c, ok := e.dom.(ring.Conjugator[E]); ok {
		return c.IsReal(x)
	}

	return ring.True
}

// sqrt takes a principal square root or fails with ErrNotRepresentable.
func (e *engine[E]) sqrt(x E) (E, error) {
	s, ok := e.dom.(ring.Sqrter[E])
	if !ok {
		var zero E
		return zero, ErrNotRepresentable
	}
	r, ok := s.Sqrt(e.oracle.Simplify(x))
	if !ok {
		var zero E
		return zero, ErrNotRepresentable
	}

	return r, nil
}

// compare orders two elements canonically; without an Orderer everything
// compares equal so stable sorts keep discovery order.
func (e *engine[E]) compare(a, b E) int {
	if o, ok := e.dom.(ring.Orderer[E]); ok {
		return o.Compare(a, b)
	}

	return 0
}

// sameValue reports whether a and b are provably equal.
func (e *engine[E]) sameValue(a, b E) bool {
	if e.dom.Equal(a, b) {
		return true
	}

	return e.equalsZero(e.dom.Sub(a, b)) == ring.True
}

// uniqueName returns base, prefixed with '_' until it no longer collides
// with a free symbol of m (after stripping trailing digits when digits is set).
func (e *engine[E]) uniqueName(base string, digits bool, ms ...*Dense[E]) string {
	used := e.usedSymbols(digits, ms...)
	name := base
	for {
		if _, hit := used[name]; !hit {
			return name
		}
		name = "_" + name
	}
}

// uniqueGrid returns base, prefixed with '_' until no name base{i}_{j}
// with i < rows and j < cols is a free symbol of ms.
func (e *engine[E]) uniqueGrid(base string, rows, cols int, ms ...*Dense[E]) string {
	used := e.usedSymbols(false, ms...)
	name := base
	for gridCollides(used, name, rows, cols) {
		name = "_" + name
	}

	return name
}

func gridCollides(used map[string]struct{}, prefix string, rows, cols int) bool {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if _, hit := used[gridName(prefix, i, j)]; hit {
				return true
			}
		}
	}

	return false
}

func gridName(prefix string, i, j int) string {
	return prefix + strconv.Itoa(i) + "_" + strconv.Itoa(j)
}

// usedSymbols collects the free symbols of ms; nil for non-symbolic domains.
func (e *engine[E]) usedSymbols(digits bool, ms ...*Dense[E]) map[string]struct{} {
	s, ok := e.symbolic()
	if !ok {
		return nil
	}
	used := make(map[string]struct{})
	for _, m := range ms {
		for _, v := range m.data {
			for _, name := range s.FreeSymbols(v) {
				if digits {
					name = trimDigits(name)
				}
				used[name] = struct{}{}
			}
		}
	}

	return used
}

func trimDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}

	return s[:i]
}
