// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"go.uber.org/zap"
)

// jordanBlockShape is one block of the Jordan structure.
type jordanBlockShape[E any] struct {
	value E
	size  int
}

// shiftCache memoizes (m − λI)^k per eigenvalue for one JordanForm call.
type shiftCache[E any] struct {
	e     *engine[E]
	m     *Dense[E]
	pows  map[int]map[int]*Dense[E] // eigenvalue index -> k -> power
	value []E
}

func newShiftCache[E any](e *engine[E], m *Dense[E], vals []E) *shiftCache[E] {
	return &shiftCache[E]{e: e, m: m, pows: make(map[int]map[int]*Dense[E]), value: vals}
}

// get returns (m − λ_v·I)^k, reusing the power k−1 when present.
func (c *shiftCache[E]) get(v, k int) *Dense[E] {
	byK, ok := c.pows[v]
	if !ok {
		byK = make(map[int]*Dense[E])
		c.pows[v] = byK
	}
	if p, ok := byK[k]; ok {
		return p
	}
	dom := c.e.dom
	var p *Dense[E]
	switch {
	case k == 0:
		p = identity(dom, c.m.r)
	case k == 1:
		p = c.e.simplifyAll(sub(c.m, scale(identity(dom, c.m.r), c.value[v])))
	default:
		p = c.e.simplifyAll(mul(c.get(v, k-1), c.get(v, 1)))
	}
	byK[k] = p

	return p
}

// JordanForm returns P and J with m = P·J·P⁻¹, J in Jordan normal form.
//
// Implementation:
//   - Stage 1: float entries are rationalized; eigenvalues must be complete.
//   - Stage 2: n distinct eigenvalues give a diagonal J and one eigenvector
//     per column of P.
//   - Stage 3: otherwise, per eigenvalue λ (ascending), the nullity chain
//     d_k = n − rank((m−λI)^k) is grown until it reaches the algebraic
//     multiplicity; the number of blocks of size k is 2·d_k − d_(k−1) − d_(k+1)
//     (d_last − d_(last−1) for the largest size). Larger blocks come first.
//   - Stage 4: for a block of size s a generalized eigenvector v is picked
//     from null((m−λI)^s), independent of null((m−λI)^(s−1)) and of the
//     vectors already chosen for λ; the chain (m−λI)^i·v, i = s−1..0, forms
//     the block's columns of P.
//
// Behavior highlights:
//   - Powers of m − λI are cached for the duration of the call.
//   - Float input yields float P and J (WithChop drops residues).
//   - WithCalcTransform(false) skips Stage 4 and returns a nil P.
//
// Errors: ErrNonSquare, ErrEigenIncomplete, ErrMatrixEigenFailed.
func JordanForm[E any](m Matrix[E], opts ...Option) (P, J *Dense[E], err error) {
	e, d, err := engineFor(m, opts)
	if err != nil {
		return nil, nil, matrixErrorf(opJordan, err)
	}
	if err = ValidateSquare[E](d); err != nil {
		return nil, nil, matrixErrorf(opJordan, err)
	}
	P, J, err = e.jordanForm(d)
	if err != nil {
		return nil, nil, matrixErrorf(opJordan, err)
	}

	return P, J, nil
}

func (e *engine[E]) jordanForm(m *Dense[E]) (*Dense[E], *Dense[E], error) {
	dom := e.dom
	if m.r == 0 {
		return newDense(dom, 0, 0), newDense(dom, 0, 0), nil
	}
	mat, hadFloat := e.rationalize(m)
	restore := func(x *Dense[E]) *Dense[E] {
		if hadFloat && x != nil {
			return e.restoreFloats(x)
		}
		return x
	}

	roots, err := e.with(func(o *Options) { o.errorWhenIncomplete = true }).eigenvals(mat)
	if err != nil {
		return nil, nil, err
	}
	e.sortRoots(roots)
	vals := make([]E, len(roots))
	for k, r := range roots {
		vals[k] = r.Value
	}
	cache := newShiftCache(e, mat, vals)

	if len(roots) == mat.c {
		e.log.Debug("jordan fast path", zap.Int("size", mat.c))
		J := DiagValues(dom, vals...)
		if !e.o.calcTransform {
			return nil, restore(J), nil
		}
		cols := make([]*Dense[E], len(vals))
		for v := range vals {
			ns := e.nullspace(cache.get(v, 1))
			if len(ns) == 0 {
				return nil, nil, fmt.Errorf("empty eigenspace for %s: %w", dom.Format(vals[v]), ErrMatrixEigenFailed)
			}
			cols[v] = e.simplifyAll(ns[0])
		}

		return restore(hstack(cols...)), restore(J), nil
	}

	var structure []jordanBlockShape[E]
	owner := make([]int, 0, mat.r) // eigenvalue index per block
	total := 0
	for v, r := range roots {
		chain, err := e.nullityChain(cache, v, r.Mult)
		if err != nil {
			return nil, nil, err
		}
		counts := blocksFromNullityChain(chain)
		for size := len(counts); size >= 1; size-- {
			for k := 0; k < counts[size-1]; k++ {
				structure = append(structure, jordanBlockShape[E]{value: r.Value, size: size})
				owner = append(owner, v)
				total += size
			}
		}
	}
	if total != mat.r {
		return nil, nil, fmt.Errorf("jordan blocks cover %d of %d rows: %w", total, mat.r, ErrMatrixEigenFailed)
	}

	blocks := make([]*Dense[E], len(structure))
	for k, b := range structure {
		blocks[k] = jordanBlock(dom, b.size, b.value)
	}
	J := diagBlocks(dom, mat.r, mat.c, blocks)
	if !e.o.calcTransform {
		return nil, restore(J), nil
	}

	var basis []*Dense[E]
	for v := range roots {
		var chosen []*Dense[E]
		for k, b := range structure {
			if owner[k] != v {
				continue
			}
			big := e.nullspace(cache.get(v, b.size))
			small := e.nullspace(cache.get(v, b.size-1))
			vec, ok := e.pickIndependent(append(small, chosen...), big)
			if !ok {
				return nil, nil, fmt.Errorf("no generalized eigenvector for %s: %w", dom.Format(b.value), ErrMatrixEigenFailed)
			}
			chain := make([]*Dense[E], b.size)
			for i := 0; i < b.size; i++ {
				chain[i] = e.simplifyAll(mul(cache.get(v, i), vec))
			}
			chosen = append(chosen, chain...)
			for i := b.size - 1; i >= 0; i-- {
				basis = append(basis, chain[i])
			}
		}
	}

	return restore(hstack(basis...)), restore(J), nil
}

// nullityChain returns [0, d_1, d_2, ...] with d_k = n − rank((m−λI)^k),
// stopping once the chain reaches mult or stops growing.
func (e *engine[E]) nullityChain(cache *shiftCache[E], v, mult int) ([]int, error) {
	n := cache.m.c
	chain := []int{0}
	nullity := n - e.rank(cache.get(v, 1))
	for k := 2; nullity != chain[len(chain)-1]; k++ {
		chain = append(chain, nullity)
		if nullity == mult {
			break
		}
		nullity = n - e.rank(cache.get(v, k))
		if nullity < chain[len(chain)-1] || nullity > mult {
			return nil, fmt.Errorf("inconsistent nullity chain %v (next %d, multiplicity %d): %w",
				chain, nullity, mult, ErrMatrixEigenFailed)
		}
	}

	return chain, nil
}

// blocksFromNullityChain turns a nullity chain into block counts: entry
// k−1 is the number of blocks of size k.
func blocksFromNullityChain(d []int) []int {
	if len(d) <= 1 {
		return []int{d[0]}
	}
	out := make([]int, 0, len(d)-1)
	for n := 1; n < len(d)-1; n++ {
		out = append(out, 2*d[n]-d[n-1]-d[n+1])
	}

	return append(out, d[len(d)-1]-d[len(d)-2])
}

// pickIndependent returns the first vector of big that is linearly
// independent of small: appended as the last column, it must carry the last
// pivot of the echelon form.
func (e *engine[E]) pickIndependent(small, big []*Dense[E]) (*Dense[E], bool) {
	for _, v := range big {
		cols := append(append([]*Dense[E](nil), small...), v)
		piv := e.echelon(hstack(cols...)).pivots
		if len(piv) > 0 && piv[len(piv)-1] == len(small) {
			return v, true
		}
	}

	return nil, false
}
