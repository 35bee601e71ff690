// Package revenue evaluates the free-text cash tallies typed into the daily
// revenue field, e.g. "140+20+50". Only the four arithmetic operators and
// decimal literals are understood; the input never reaches an interpreter.
package revenue

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrSyntax reports a malformed expression.
	ErrSyntax = errors.New("syntax error")
	// ErrDivisionByZero reports a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Node is an expression tree node: either a Literal or a BinaryOp.
type Node interface {
	node()
}

// Literal is a decimal constant.
type Literal struct {
	Value decimal.Decimal
}

// BinaryOp applies one of + - * / to two operands. Unary signs are encoded as
// BinaryOp{Op, Literal{0}, operand}.
type BinaryOp struct {
	Op    byte
	Left  Node
	Right Node
}

func (Literal) node()  {}
func (BinaryOp) node() {}

// Sanitize keeps only digits, the four operators, dots and whitespace.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Evaluate sanitizes input, evaluates it and rounds to 2 decimal places.
// Empty, malformed or non-finite expressions yield 0.
func Evaluate(input string) float64 {
	expr := Sanitize(input)
	if strings.TrimSpace(expr) == "" {
		return 0
	}

	tree, err := Parse(expr)
	if err != nil {
		return 0
	}

	value, err := Eval(tree)
	if err != nil {
		return 0
	}

	result, _ := value.Round(2).Float64()
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// Round rounds v to 2 decimal places, mapping non-finite values to 0.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	result, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return result
}

// Eval computes the value of an expression tree.
func Eval(n Node) (decimal.Decimal, error) {
	switch node := n.(type) {
	case Literal:
		return node.Value, nil
	case BinaryOp:
		left, err := Eval(node.Left)
		if err != nil {
			return decimal.Zero, err
		}
		right, err := Eval(node.Right)
		if err != nil {
			return decimal.Zero, err
		}
		switch node.Op {
		case '+':
			return left.Add(right), nil
		case '-':
			return left.Sub(right), nil
		case '*':
			return left.Mul(right), nil
		case '/':
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			return left.Div(right), nil
		}
		return decimal.Zero, fmt.Errorf("%w: unknown operator %q", ErrSyntax, node.Op)
	}
	return decimal.Zero, fmt.Errorf("%w: unknown node %T", ErrSyntax, n)
}

// Parse builds an expression tree from an already sanitized string using
// standard precedence: * and / bind tighter than + and -, left associative.
func Parse(expr string) (Node, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	p := &parser{toks: toks}
	tree, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected %q at token %d", ErrSyntax, p.toks[p.pos].text, p.pos)
	}
	return tree, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOperator
)

type token struct {
	kind  tokenKind
	text  string
	value decimal.Decimal
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{kind: tokOperator, text: string(c)})
			i++
		case (c >= '0' && c <= '9') || c == '.':
			start := i
			for i < len(expr) && ((expr[i] >= '0' && expr[i] <= '9') || expr[i] == '.') {
				i++
			}
			text := expr[start:i]
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, text)
			}
			toks = append(toks, token{kind: tokNumber, text: text, value: decimal.NewFromFloat(f)})
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrSyntax, c)
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peekOperator(ops string) (byte, bool) {
	if p.pos >= len(p.toks) {
		return 0, false
	}
	t := p.toks[p.pos]
	if t.kind != tokOperator || !strings.Contains(ops, t.text) {
		return 0, false
	}
	return t.text[0], true
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.peekOperator("*/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = BinaryOp{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if op, ok := p.peekOperator("+-"); ok {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return BinaryOp{Op: op, Left: Literal{Value: decimal.Zero}, Right: operand}, nil
	}

	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	t := p.toks[p.pos]
	if t.kind != tokNumber {
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, t.text)
	}
	p.pos++
	return Literal{Value: t.value}, nil
}
