// SPDX-License-Identifier: MIT

package codec

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

// RatMatrix parses rows of rationals ("3", "-1/2", "0.25").
func RatMatrix(rows [][]string) (*matrix.Dense[*big.Rat], error) {
	data := make([][]*big.Rat, len(rows))
	for i, r := range rows {
		data[i] = make([]*big.Rat, len(r))
		for j, s := range r {
			q, ok := new(big.Rat).SetString(s)
			if !ok {
				return nil, fmt.Errorf("%w: entry (%d,%d) %q is not a rational", ErrFormat, i, j, s)
			}
			data[i][j] = q
		}
	}

	return matrix.FromRows[*big.Rat](ring.NewRat(), data)
}

// ExprMatrix parses rows of expressions with expr.Parse.
func ExprMatrix(rows [][]string) (*matrix.Dense[expr.Expr], error) {
	data := make([][]expr.Expr, len(rows))
	for i, r := range rows {
		data[i] = make([]expr.Expr, len(r))
		for j, s := range r {
			e, err := expr.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("%w: entry (%d,%d): %v", ErrFormat, i, j, err)
			}
			data[i][j] = e
		}
	}

	return matrix.FromRows[expr.Expr](expr.NewField(), data)
}

// Rows formats m entry by entry with format, the inverse of the parsers.
func Rows[E any](m matrix.Matrix[E], format func(E) string) [][]string {
	if m == nil {
		return nil
	}
	out := make([][]string, m.Rows())
	for i := range out {
		out[i] = make([]string, m.Cols())
		for j := range out[i] {
			x, _ := m.At(i, j)
			out[i][j] = format(x)
		}
	}

	return out
}
