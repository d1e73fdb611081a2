// SPDX-License-Identifier: MIT

package expr

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/scanner"
)

// ErrSyntax is returned by Parse for malformed input.
var ErrSyntax = errors.New("expr: syntax error")

// Parse reads an expression such as "x^2 - 2*x*y + sqrt(2)/3".
//
// Grammar: sums and differences of products and quotients of powers. Powers
// use ^ or ** with an integer or half-integer exponent; x^(1/2) is sqrt(x).
// The identifier I is the imaginary unit and sqrt(...) the only function.
// Decimal literals become floating-point values.
func Parse(src string) (Expr, error) {
	p := &parser{}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = fmt.Errorf("%w: %s", ErrSyntax, msg)
		}
	}
	p.next()
	e := p.sum()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail("unexpected %q", p.s.TokenText())
	}
	if p.err != nil {
		return nil, p.err
	}

	return e, nil
}

// MustParse is Parse that panics on error; meant for tests and literals.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return e
}

type parser struct {
	s   scanner.Scanner
	tok rune
	err error
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w at %s: %s", ErrSyntax, p.s.Position, fmt.Sprintf(format, args...))
	}
}

func (p *parser) expect(r rune) {
	if p.tok != r {
		p.fail("expected %q", string(r))
		return
	}
	p.next()
}

func (p *parser) sum() Expr {
	terms := []Expr{p.product()}
	for p.err == nil && (p.tok == '+' || p.tok == '-') {
		op := p.tok
		p.next()
		t := p.product()
		if op == '-' {
			t = Neg(t)
		}
		terms = append(terms, t)
	}

	return Add(terms...)
}

func (p *parser) product() Expr {
	acc := p.unary()
	for p.err == nil && (p.tok == '*' || p.tok == '/') {
		op := p.tok
		p.next()
		rhs := p.unary()
		if op == '/' {
			if IsZero(rhs).IsTrue() {
				p.fail("division by zero")
				return Int(0)
			}
			acc = Div(acc, rhs)
			continue
		}
		acc = Mul(acc, rhs)
	}

	return acc
}

func (p *parser) unary() Expr {
	switch p.tok {
	case '-':
		p.next()
		return Neg(p.unary())
	case '+':
		p.next()
		return p.unary()
	}
	base := p.primary()
	if p.tok == '^' {
		p.next()
		return p.power(base)
	}
	if p.tok == '*' && p.s.Peek() == '*' {
		p.next()
		p.next()
		return p.power(base)
	}

	return base
}

// power parses the exponent after ^ or ** and applies it to base.
func (p *parser) power(base Expr) Expr {
	exp := p.unary()
	if p.err != nil {
		return Int(0)
	}
	q, ok := AsRat(exp)
	if !ok {
		p.fail("exponent must be a rational number, got %s", exp)
		return Int(0)
	}
	switch {
	case q.IsInt():
		if !q.Num().IsInt64() {
			p.fail("exponent %s out of range", q.RatString())
			return Int(0)
		}
		n := int(q.Num().Int64())
		if n < 0 && IsZero(base).IsTrue() {
			p.fail("division by zero")
			return Int(0)
		}
		return Pow(base, n)
	case q.Denom().Cmp(big.NewInt(2)) == 0 && q.Num().IsInt64():
		return Pow(Sqrt(base), int(q.Num().Int64()))
	}
	p.fail("unsupported exponent %s", q.RatString())

	return Int(0)
}

func (p *parser) primary() Expr {
	switch p.tok {
	case scanner.Int:
		r, ok := new(big.Rat).SetString(p.s.TokenText())
		if !ok {
			p.fail("bad integer %q", p.s.TokenText())
			return Int(0)
		}
		p.next()
		return num{r}
	case scanner.Float:
		f, err := strconv.ParseFloat(p.s.TokenText(), 64)
		if err != nil {
			p.fail("bad number %q", p.s.TokenText())
			return Int(0)
		}
		p.next()
		return Float(f)
	case scanner.Ident:
		name := p.s.TokenText()
		p.next()
		if name == "sqrt" && p.tok == '(' {
			p.next()
			arg := p.sum()
			p.expect(')')
			return Sqrt(arg)
		}
		if name == "I" {
			return I
		}
		return Symbol(name)
	case '(':
		p.next()
		e := p.sum()
		p.expect(')')
		return e
	case scanner.EOF:
		p.fail("unexpected end of input")
		return Int(0)
	}
	p.fail("unexpected %q", p.s.TokenText())
	p.next()

	return Int(0)
}
