// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/katalvlaran/symla/expr"
	"github.com/katalvlaran/symla/internal/codec"
	"github.com/katalvlaran/symla/matrix"
	"github.com/katalvlaran/symla/numeric"
)

var (
	errUnknownOp     = errors.New("unknown op")
	errUnknownDomain = errors.New("unknown domain")
	errMissingRHS    = errors.New("op needs rhs")
)

// ops lists the supported operations.
var ops = []string{
	"det", "rank", "rref", "inverse", "charpoly", "nullspace", "solve",
	"eigenvals", "eigenvects", "diagonalize", "jordan",
}

// kit bundles the per-domain pieces the generic evaluator needs.
type kit[E any] struct {
	format func(E) string
	eval   numeric.Evaluator[E]
}

var (
	ratKit  = kit[*big.Rat]{format: (*big.Rat).RatString, eval: numeric.RatEvaluator}
	exprKit = kit[expr.Expr]{format: expr.Expr.String, eval: numeric.ExprEvaluator}
)

// evaluate runs doc.Op over doc.Domain ("rat" by default).
func evaluate(doc *codec.Document, check bool, opts []matrix.Option) Result {
	res := Result{Name: doc.Name, Op: strings.ToLower(doc.Op), Domain: strings.ToLower(doc.Domain)}
	if res.Domain == "" {
		res.Domain = "rat"
	}

	var err error
	switch res.Domain {
	case "rat":
		err = parseAndApply(ratKit, codec.RatMatrix, doc, check, opts, &res)
	case "expr":
		err = parseAndApply(exprKit, codec.ExprMatrix, doc, check, opts, &res)
	default:
		err = fmt.Errorf("%w %q (want rat or expr)", errUnknownDomain, doc.Domain)
	}
	if err != nil {
		res.Error = err.Error()
	}

	return res
}

func parseAndApply[E any](
	k kit[E],
	parse func([][]string) (*matrix.Dense[E], error),
	doc *codec.Document,
	check bool,
	opts []matrix.Option,
	res *Result,
) error {
	a, err := parse(doc.Rows)
	if err != nil {
		return err
	}
	var b *matrix.Dense[E]
	if doc.RHS != nil {
		if b, err = parse(doc.RHS); err != nil {
			return fmt.Errorf("rhs: %w", err)
		}
	}

	return apply(k, res.Op, a, b, check, opts, res)
}

func apply[E any](k kit[E], op string, a, b *matrix.Dense[E], check bool, opts []matrix.Option, res *Result) error {
	rows := func(m *matrix.Dense[E]) [][]string {
		if m == nil {
			return nil
		}
		return codec.Rows[E](m, k.format)
	}
	basis := func(vs []*matrix.Dense[E]) [][][]string {
		out := make([][][]string, len(vs))
		for i, v := range vs {
			out[i] = rows(v)
		}
		return out
	}

	switch op {
	case "det":
		d, err := matrix.Det[E](a, opts...)
		if err != nil {
			return err
		}
		res.Scalar = k.format(d)
		if check {
			_, err = numeric.CheckDet[E](a, k.eval, numeric.DefaultTolerance, opts...)
			res.Check = checkStatus(err)
		}

	case "rank":
		r, err := matrix.Rank[E](a, opts...)
		if err != nil {
			return err
		}
		res.Scalar = strconv.Itoa(r)

	case "rref":
		r, pivots, err := matrix.RREF[E](a, opts...)
		if err != nil {
			return err
		}
		res.Matrix, res.Pivots = rows(r), pivots

	case "inverse":
		inv, err := matrix.Inverse[E](a, opts...)
		if err != nil {
			return err
		}
		res.Matrix = rows(inv)

	case "charpoly":
		p, err := matrix.CharPoly[E](a, opts...)
		if err != nil {
			return err
		}
		res.Scalar = p.String()

	case "nullspace":
		ns, err := matrix.Nullspace[E](a, opts...)
		if err != nil {
			return err
		}
		res.Basis = basis(ns)

	case "solve":
		if b == nil {
			return errMissingRHS
		}
		x, err := matrix.Solve[E](a, b, opts...)
		if err != nil {
			return err
		}
		res.Matrix = rows(x)

	case "eigenvals":
		vals, err := matrix.Eigenvals[E](a, opts...)
		if err != nil {
			return err
		}
		for _, r := range vals {
			res.Eigen = append(res.Eigen, Eigen{Value: k.format(r.Value), Mult: r.Mult})
		}
		if check {
			_, err = numeric.CheckEigenvals[E](a, k.eval, numeric.DefaultTolerance, opts...)
			res.Check = checkStatus(err)
		}

	case "eigenvects":
		ts, err := matrix.Eigenvects[E](a, opts...)
		if err != nil {
			return err
		}
		for _, t := range ts {
			res.Eigen = append(res.Eigen, Eigen{Value: k.format(t.Value), Mult: t.Mult, Basis: basis(t.Basis)})
		}

	case "diagonalize":
		P, D, err := matrix.Diagonalize[E](a, nil, opts...)
		if err != nil {
			return err
		}
		res.Matrix, res.Transform = rows(D), rows(P)

	case "jordan":
		P, J, err := matrix.JordanForm[E](a, opts...)
		if err != nil {
			return err
		}
		res.Matrix, res.Transform = rows(J), rows(P)

	default:
		return fmt.Errorf("%w %q (want one of %s)", errUnknownOp, op, strings.Join(ops, ", "))
	}

	return nil
}

func checkStatus(err error) string {
	if err != nil {
		return err.Error()
	}

	return "ok"
}
