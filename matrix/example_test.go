// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/ring"
)

// ratRows builds a rational matrix from integer rows, ignoring errors.
func ratRows(vals [][]int64) *matrix.Dense[*big.Rat] {
	data := make([][]*big.Rat, len(vals))
	for i, r := range vals {
		data[i] = make([]*big.Rat, len(r))
		for j, v := range r {
			data[i][j] = big.NewRat(v, 1)
		}
	}
	m, _ := matrix.FromRows[*big.Rat](ring.NewRat(), data)

	return m
}

func ExampleDet() {
	m := ratRows([][]int64{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}})
	for _, method := range []matrix.DetMethod{matrix.DetBareiss, matrix.DetBerkowitz, matrix.DetLU} {
		d, _ := matrix.Det(m, matrix.WithDetMethod(method))
		fmt.Println(method, d.RatString())
	}

	// Output:
	// bareiss -3
	// berkowitz -3
	// lu -3
}

func ExampleRREF() {
	m := ratRows([][]int64{{1, 2, 1, 1}, {1, 2, 2, -1}, {2, 4, 0, 6}})
	r, pivots, _ := matrix.RREF(m)
	fmt.Print(r)
	fmt.Println("pivots:", pivots)

	// Output:
	// [1, 2, 0, 3]
	// [0, 0, 1, -2]
	// [0, 0, 0, 0]
	// pivots: [0 2]
}

func ExampleCharPoly() {
	p, _ := matrix.CharPoly(ratRows([][]int64{{2, 0}, {0, 3}}))
	fmt.Println(p)

	// Output:
	// lambda^2 - 5*lambda + 6
}

func ExampleSolve() {
	a := ratRows([][]int64{{2, 1}, {1, 3}})
	b := ratRows([][]int64{{3}, {5}})
	x, _ := matrix.Solve(a, b)
	fmt.Print(x)

	// Output:
	// [4/5]
	// [7/5]
}

func ExampleEigenvects() {
	ts, _ := matrix.Eigenvects(ratRows([][]int64{{2, 1}, {1, 2}}))
	for _, t := range ts {
		var parts []string
		for _, x := range t.Basis[0].Values() {
			parts = append(parts, x.RatString())
		}
		fmt.Printf("%s (x%d): [%s]\n", t.Value.RatString(), t.Mult, strings.Join(parts, " "))
	}

	// Output:
	// 1 (x1): [-1 1]
	// 3 (x1): [1 1]
}

func ExampleJordanForm() {
	_, J, _ := matrix.JordanForm(ratRows([][]int64{{3, 1}, {-1, 1}}), matrix.WithCalcTransform(false))
	fmt.Print(J)

	// Output:
	// [2, 1]
	// [0, 2]
}
