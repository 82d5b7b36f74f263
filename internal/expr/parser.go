package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp     // + - * / ^
	tokLParen
	tokRParen
	tokPipe
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(src) && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			num, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q at offset %d", src[i:j], i)
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], num: num, pos: i})
			i = j
		case isIdentStart(rune(c)):
			j := i
			for j < len(src) && isIdentPart(rune(src[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], pos: i})
			i = j
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			toks = append(toks, token{kind: tokOp, text: string(c), pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == '|':
			toks = append(toks, token{kind: tokPipe, text: "|", pos: i})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			return nil, fmt.Errorf("illegal character %q at offset %d", c, i)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return toks, nil
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentPart(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// Pratt parser. Binding powers: additive 10, multiplicative 20,
// unary minus 25, exponent 30 (right-associative).
type parser struct {
	toks []token
	i    int
}

func (p *parser) atEnd() bool { return p.i >= len(p.toks) }

func (p *parser) peek() token {
	if p.atEnd() {
		return token{pos: -1, text: "end of input"}
	}
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.peek()
	p.i++
	return t
}

func bindingPower(op string) int {
	switch op {
	case "+", "-":
		return 10
	case "*", "/":
		return 20
	case "^":
		return 30
	}
	return 0
}

func (p *parser) parseExpr(minBP int) (node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		t := p.peek()
		if t.kind != tokOp {
			break
		}
		bp := bindingPower(t.text)
		if bp < minBP {
			break
		}
		p.next()
		// Right associativity for ^: recurse at the same power.
		nextBP := bp + 1
		if t.text == "^" {
			nextBP = bp
		}
		right, err := p.parseExpr(nextBP)
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.text[0], left: left, right: right}
	}
	return left, nil
}

func (p *parser) parsePrefix() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numNode(t.num), nil
	case tokOp:
		if t.text == "-" {
			arg, err := p.parseExpr(25)
			if err != nil {
				return nil, err
			}
			return unaryNode{op: '-', arg: arg}, nil
		}
		if t.text == "+" {
			return p.parseExpr(25)
		}
		return nil, fmt.Errorf("unexpected operator %q at offset %d", t.text, t.pos)
	case tokLParen:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokPipe:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokPipe, "|"); err != nil {
			return nil, err
		}
		return unaryNode{op: '|', arg: inner}, nil
	case tokIdent:
		return p.parseIdent(t)
	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", t.text, t.pos)
	}
}

func (p *parser) parseIdent(t token) (node, error) {
	name := strings.ToLower(t.text)
	if t.text == "N" || name == "n" {
		return placeholderNode{}, nil
	}
	if v, ok := constants[name]; ok {
		return numNode(v), nil
	}
	spec, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("unknown identifier %q at offset %d", t.text, t.pos)
	}
	if err := p.expect(tokLParen, "("); err != nil {
		return nil, err
	}
	args := make([]node, 0, spec.arity)
	for {
		arg, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind == tokComma {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	if len(args) != spec.arity {
		return nil, fmt.Errorf("%s takes %d argument(s), got %d", name, spec.arity, len(args))
	}
	return callNode{fn: spec.fn, args: args}, nil
}

func (p *parser) expect(kind tokenKind, what string) error {
	t := p.next()
	if t.kind != kind {
		return fmt.Errorf("expected %q, found %q at offset %d", what, t.text, t.pos)
	}
	return nil
}
