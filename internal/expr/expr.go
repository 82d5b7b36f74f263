// Package expr evaluates user-supplied scalar formulas over a single
// noise value. The grammar is deliberately closed: arithmetic, the N
// placeholder, |...| absolute value, right-associative ^, and a fixed
// whitelist of math functions. The input string is never executed as
// code and evaluation can touch nothing but plain numbers.
package expr

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotFinite marks an expression that parsed fine but produced NaN
// or an infinity for the given input.
var ErrNotFinite = errors.New("expression result is not finite")

// Expr is a parsed expression, reusable across many evaluations.
type Expr struct {
	root node
	src  string
}

// Source returns the original expression text.
func (e *Expr) Source() string { return e.src }

// Parse compiles src into an evaluable expression.
func Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("unexpected %q at offset %d", p.peek().text, p.peek().pos)
	}
	return &Expr{root: root, src: src}, nil
}

// Eval substitutes n for the placeholder and computes the result.
// A non-finite result returns n unchanged together with ErrNotFinite.
func (e *Expr) Eval(n float64) (float64, error) {
	v := e.root.eval(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return n, ErrNotFinite
	}
	return v, nil
}

// Evaluate parses and evaluates in one step. On any failure the
// original value comes back unchanged alongside the error, so callers
// can keep rendering while still observing that the input was bad.
func Evaluate(src string, n float64) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return n, err
	}
	return e.Eval(n)
}

// AST

type node interface {
	eval(n float64) float64
}

type numNode float64

func (v numNode) eval(float64) float64 { return float64(v) }

type placeholderNode struct{}

func (placeholderNode) eval(n float64) float64 { return n }

type unaryNode struct {
	op  byte // '-' or '|'
	arg node
}

func (u unaryNode) eval(n float64) float64 {
	v := u.arg.eval(n)
	if u.op == '|' {
		return math.Abs(v)
	}
	return -v
}

type binaryNode struct {
	op          byte // + - * / ^
	left, right node
}

func (b binaryNode) eval(n float64) float64 {
	l := b.left.eval(n)
	r := b.right.eval(n)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r // div-by-zero surfaces as non-finite at Eval
	default:
		return math.Pow(l, r)
	}
}

type callNode struct {
	fn   func(args []float64) float64
	args []node
}

func (c callNode) eval(n float64) float64 {
	args := make([]float64, len(c.args))
	for i, a := range c.args {
		args[i] = a.eval(n)
	}
	return c.fn(args)
}

// funcSpec is one whitelisted named function.
type funcSpec struct {
	arity int
	fn    func(args []float64) float64
}

var functions = map[string]funcSpec{
	"sin":   {1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos":   {1, func(a []float64) float64 { return math.Cos(a[0]) }},
	"tan":   {1, func(a []float64) float64 { return math.Tan(a[0]) }},
	"sqrt":  {1, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	"abs":   {1, func(a []float64) float64 { return math.Abs(a[0]) }},
	"floor": {1, func(a []float64) float64 { return math.Floor(a[0]) }},
	"ceil":  {1, func(a []float64) float64 { return math.Ceil(a[0]) }},
	"round": {1, func(a []float64) float64 { return math.Round(a[0]) }},
	"exp":   {1, func(a []float64) float64 { return math.Exp(a[0]) }},
	"log":   {1, func(a []float64) float64 { return math.Log(a[0]) }},
	"pow":   {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"min":   {2, func(a []float64) float64 { return math.Min(a[0], a[1]) }},
	"max":   {2, func(a []float64) float64 { return math.Max(a[0], a[1]) }},
	"atan2": {2, func(a []float64) float64 { return math.Atan2(a[0], a[1]) }},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}
