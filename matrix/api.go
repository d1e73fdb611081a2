// SPDX-License-Identifier: MIT
// Package matrix: public constructors.
//
// Purpose:
//   - Provide thin, well-documented entry points to build matrices over a domain.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Constructors copy their inputs; later mutation of argument slices has no effect.
//   - Zero-sized shapes are legal everywhere.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/symla/ring"
)

const (
	opFromRows    = "FromRows"
	opFromSlice   = "FromSlice"
	opIdentity    = "Identity"
	opZeros       = "Zeros"
	opDiag        = "Diag"
	opJordanBlock = "JordanBlock"
)

// FromRows builds a matrix from row slices. All rows must have the same
// length; no rows yields the 0×0 matrix.
//
// Errors: ErrBadShape for ragged input.
// Complexity: O(r*c).
func FromRows[E any](dom ring.Domain[E], rows [][]E) (*Dense[E], error) {
	if len(rows) == 0 {
		return newDense(dom, 0, 0), nil
	}
	c := len(rows[0])
	out := newDense(dom, len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, matrixErrorf(opFromRows, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), c, ErrBadShape))
		}
		copy(out.data[i*c:(i+1)*c], row)
	}

	return out, nil
}

// FromSlice builds a rows×cols matrix from row-major data.
//
// Errors: ErrBadShape when sizes are negative or len(data) != rows*cols.
func FromSlice[E any](dom ring.Domain[E], rows, cols int, data []E) (*Dense[E], error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, matrixErrorf(opFromSlice, ErrBadShape)
	}
	out := newDense(dom, rows, cols)
	copy(out.data, data)

	return out, nil
}

// ColumnVector builds an n×1 matrix.
func ColumnVector[E any](dom ring.Domain[E], vals ...E) *Dense[E] {
	out := newDense(dom, len(vals), 1)
	copy(out.data, vals)

	return out
}

// Zeros returns a rows×cols zero matrix.
// Note: Returns (*Dense, error) to surface ErrBadShape.
func Zeros[E any](dom ring.Domain[E], rows, cols int) (*Dense[E], error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opZeros, ErrBadShape)
	}

	return newDense(dom, rows, cols), nil
}

// Identity returns I_n (ones on the diagonal, zeros elsewhere).
// AI-Hints: Use as a neutral element for inverses and augmented systems.
func Identity[E any](dom ring.Domain[E], n int) (*Dense[E], error) {
	if n < 0 {
		return nil, matrixErrorf(opIdentity, ErrBadShape)
	}

	return identity(dom, n), nil
}

func identity[E any](dom ring.Domain[E], n int) *Dense[E] {
	out := newDense(dom, n, n)
	for i := 0; i < n; i++ {
		out.set(i, i, dom.One())
	}

	return out
}

// ZerosLike returns a new zero matrix with the same shape and domain as m.
func ZerosLike[E any](m Matrix[E]) (*Dense[E], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return newDense(m.Ring(), m.Rows(), m.Cols()), nil
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
func IdentityLike[E any](m Matrix[E]) (*Dense[E], error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return identity(m.Ring(), m.Rows()), nil
}

// DiagValues returns the square matrix with vals on the diagonal.
func DiagValues[E any](dom ring.Domain[E], vals ...E) *Dense[E] {
	out := newDense(dom, len(vals), len(vals))
	for i, v := range vals {
		out.set(i, i, v)
	}

	return out
}

// Diag assembles a block-diagonal matrix from blocks, top-left to
// bottom-right. Blocks need not be square; no blocks yields 0×0.
//
// Errors: ErrNilMatrix for a nil block.
func Diag[E any](dom ring.Domain[E], blocks ...Matrix[E]) (*Dense[E], error) {
	ds := make([]*Dense[E], len(blocks))
	r, c := 0, 0
	for k, b := range blocks {
		d, err := toDense(b)
		if err != nil {
			return nil, matrixErrorf(opDiag, err)
		}
		ds[k] = d
		r += d.r
		c += d.c
	}

	return diagBlocks(dom, r, c, ds), nil
}

func diagBlocks[E any](dom ring.Domain[E], r, c int, ds []*Dense[E]) *Dense[E] {
	out := newDense(dom, r, c)
	r0, c0 := 0, 0
	for _, d := range ds {
		for i := 0; i < d.r; i++ {
			for j := 0; j < d.c; j++ {
				out.set(r0+i, c0+j, d.at(i, j))
			}
		}
		r0 += d.r
		c0 += d.c
	}

	return out
}

// JordanBlock returns the size×size block with eigenvalue on the diagonal
// and ones on the superdiagonal.
func JordanBlock[E any](dom ring.Domain[E], size int, eigenvalue E) (*Dense[E], error) {
	if size < 0 {
		return nil, matrixErrorf(opJordanBlock, ErrBadShape)
	}

	return jordanBlock(dom, size, eigenvalue), nil
}

func jordanBlock[E any](dom ring.Domain[E], size int, eigenvalue E) *Dense[E] {
	out := newDense(dom, size, size)
	for i := 0; i < size; i++ {
		out.set(i, i, eigenvalue)
		if i+1 < size {
			out.set(i, i+1, dom.One())
		}
	}

	return out
}

// PermutationMatrix applies swaps, in order, to the rows of I_n.
// P·A then replays the same row interchanges on A.
//
// Errors: ErrOutOfRange for a swap index outside [0, n).
func PermutationMatrix[E any](dom ring.Domain[E], n int, swaps []Swap) (*Dense[E], error) {
	if n < 0 {
		return nil, matrixErrorf("PermutationMatrix", ErrBadShape)
	}
	p := identity(dom, n)
	if err := applySwaps(p, swaps); err != nil {
		return nil, matrixErrorf("PermutationMatrix", err)
	}

	return p, nil
}

// PermuteRows returns a copy of m with swaps applied to its rows in order.
func PermuteRows[E any](m Matrix[E], swaps []Swap) (*Dense[E], error) {
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf("PermuteRows", err)
	}
	if err = applySwaps(d, swaps); err != nil {
		return nil, matrixErrorf("PermuteRows", err)
	}

	return d, nil
}

func applySwaps[E any](d *Dense[E], swaps []Swap) error {
	for _, s := range swaps {
		if s.I < 0 || s.I >= d.r || s.J < 0 || s.J >= d.r {
			return ErrOutOfRange
		}
		d.swapRows(s.I, s.J)
	}

	return nil
}
