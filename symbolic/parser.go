package symbolic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseError describes a rejected input string. The expression carrying it
// must not be analyzed further.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid expression at position %d: %s", e.Pos, e.Msg)
}

// Parse turns an infix algebraic string into an expression tree. Supported:
// + - * /, ** and ^ (right-associative), unary minus, parentheses, function
// calls over the known function alphabet, the constants pi and e, integer
// and decimal literals. Any other identifier becomes a free symbol; callers
// gate the variable alphabet.
func Parse(input string) (Expr, error) {
	p := &parser{input: input, toks: nil}
	if err := p.tokenize(); err != nil {
		return nil, err
	}
	if len(p.toks) == 0 {
		return nil, &ParseError{Input: input, Pos: 0, Msg: "empty expression"}
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		t := p.peek()
		return nil, &ParseError{Input: input, Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
	}
	return e.Simplify(), nil
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokIdent
	tokOp     // + - * / ^ **
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type parser struct {
	input string
	toks  []token
	i     int
}

func (p *parser) tokenize() error {
	s := p.input
	i := 0
	for i < len(s) {
		c := rune(s[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			seenDot := false
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				if s[j] == '.' {
					if seenDot {
						return &ParseError{Input: s, Pos: j, Msg: "malformed number"}
					}
					seenDot = true
				}
				j++
			}
			if s[i:j] == "." {
				return &ParseError{Input: s, Pos: i, Msg: "malformed number"}
			}
			p.toks = append(p.toks, token{tokNumber, s[i:j], i})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			p.toks = append(p.toks, token{tokIdent, s[i:j], i})
			i = j
		case c == '(':
			p.toks = append(p.toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			p.toks = append(p.toks, token{tokRParen, ")", i})
			i++
		case c == '*':
			if i+1 < len(s) && s[i+1] == '*' {
				p.toks = append(p.toks, token{tokOp, "**", i})
				i += 2
			} else {
				p.toks = append(p.toks, token{tokOp, "*", i})
				i++
			}
		case strings.ContainsRune("+-/^", c):
			p.toks = append(p.toks, token{tokOp, string(c), i})
			i++
		default:
			return &ParseError{Input: s, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return nil
}

func (p *parser) atEnd() bool   { return p.i >= len(p.toks) }
func (p *parser) peek() token   { return p.toks[p.i] }
func (p *parser) advance() token { t := p.toks[p.i]; p.i++; return t }

func (p *parser) errHere(msg string) error {
	pos := len(p.input)
	if !p.atEnd() {
		pos = p.peek().pos
	}
	return &ParseError{Input: p.input, Pos: pos, Msg: msg}
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	if p.atEnd() || p.peek().kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if p.peek().text == op {
			p.advance()
			return op, true
		}
	}
	return "", false
}

// sum := product (('+'|'-') product)*
func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = AddOf(left, right)
		} else {
			left = Subtract(left, right)
		}
	}
}

// product := unary (('*'|'/') unary)*
func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("*", "/")
		if !ok {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			left = MulOf(left, right)
		} else {
			left = Div(left, right)
		}
	}
}

// unary := ('-'|'+') unary | power
func (p *parser) parseUnary() (Expr, error) {
	if op, ok := p.acceptOp("-", "+"); ok {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			return MulOf(N(-1), inner), nil
		}
		return inner, nil
	}
	return p.parsePower()
}

// power := atom (('**'|'^') unary)?  — right-associative, and the exponent
// may carry its own unary minus (x**-2).
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if _, ok := p.acceptOp("**", "^"); ok {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (Expr, error) {
	if p.atEnd() {
		return nil, p.errHere("unexpected end of expression")
	}
	t := p.advance()
	switch t.kind {
	case tokNumber:
		return parseNumber(p.input, t)
	case tokLParen:
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().kind != tokRParen {
			return nil, p.errHere("missing closing parenthesis")
		}
		p.advance()
		return inner, nil
	case tokIdent:
		if !p.atEnd() && p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		switch t.text {
		case "pi":
			return NFloat(math.Pi), nil
		case "e":
			return NFloat(math.E), nil
		}
		return S(t.text), nil
	default:
		return nil, &ParseError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
	}
}

func (p *parser) parseCall(name token) (Expr, error) {
	fn := name.text
	if fn == "ln" {
		fn = "log"
	}
	if fn != "sqrt" && !knownFuncs[fn] {
		return nil, &ParseError{Input: p.input, Pos: name.pos, Msg: fmt.Sprintf("unknown function %q", name.text)}
	}
	p.advance() // consume '('
	arg, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.atEnd() || p.peek().kind != tokRParen {
		return nil, p.errHere("missing closing parenthesis")
	}
	p.advance()
	if fn == "sqrt" {
		return SqrtOf(arg), nil
	}
	return funcOf(fn, arg).Simplify(), nil
}

func parseNumber(input string, t token) (Expr, error) {
	if !strings.Contains(t.text, ".") {
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err == nil {
			return N(n), nil
		}
		// Fall through to float parsing for very large literals.
	}
	f, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return nil, &ParseError{Input: input, Pos: t.pos, Msg: "malformed number"}
	}
	return NFloat(f), nil
}
