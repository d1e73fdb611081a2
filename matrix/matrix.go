// SPDX-License-Identifier: MIT

// Package matrix defines the core Matrix interface for exact linear algebra.
//
// What & Why:
//
//	The Matrix interface provides a uniform read-only abstraction over a
//	two-dimensional array of ring elements, together with the coefficient
//	domain that gives those elements their arithmetic and zero oracle. Every
//	algorithm in the package accepts a Matrix[E] and returns fresh *Dense[E]
//	values; inputs are never mutated.
//
// Complexity:
//
//	Rows(), Cols() and Ring() run in O(1) time.
//	At() performs bounds checking in O(1) time, returning an error on invalid indices.
//	Clone() performs a deep copy of the container in O(rows*cols) time.
package matrix

import "github.com/katalvlaran/symla/ring"

// Matrix is a rows×cols array of elements of the domain Ring().
// Zero-sized shapes (0×n, n×0, 0×0) are legal.
type Matrix[E any] interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (E, error)

	// Ring returns the coefficient domain of the entries.
	Ring() ring.Domain[E]

	// Clone returns a copy of the matrix container.
	// Elements are shared: domain values are immutable.
	Clone() Matrix[E]
}
