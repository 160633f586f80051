package binquery

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed query with the byte offset of the problem.
type ParseError struct {
	Query   string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query %q: offset %d: %s", e.Query, e.Offset, e.Message)
}

// Parse parses query syntax into an expression tree. OR binds loosest, then
// AND, then NOT; parentheses group. AND, OR and NOT are case-insensitive
// keywords; everything else is a key, an operator or a value.
func Parse(query string) (Expr, error) {
	p := &parser{query: query}
	p.next()
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf(p.tok.offset, "unexpected %q after expression", p.tok.text)
	}
	return expr, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokEqual
	tokNotEqual
	tokLParen
	tokRParen
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

type parser struct {
	query string
	pos   int
	tok   token
	err   error
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &ParseError{Query: p.query, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// next advances to the following token. A lexing failure parks the error and
// yields EOF so the parser surfaces it at the failure offset.
func (p *parser) next() {
	for p.pos < len(p.query) && (p.query[p.pos] == ' ' || p.query[p.pos] == '\t') {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.query) {
		p.tok = token{kind: tokEOF, offset: start}
		return
	}
	switch c := p.query[p.pos]; c {
	case '(':
		p.pos++
		p.tok = token{kind: tokLParen, text: "(", offset: start}
	case ')':
		p.pos++
		p.tok = token{kind: tokRParen, text: ")", offset: start}
	case '=':
		p.pos++
		p.tok = token{kind: tokEqual, text: "=", offset: start}
	case '!':
		if p.pos+1 >= len(p.query) || p.query[p.pos+1] != '=' {
			p.err = p.errorf(start, "expected != ")
			p.tok = token{kind: tokEOF, offset: start}
			return
		}
		p.pos += 2
		p.tok = token{kind: tokNotEqual, text: "!=", offset: start}
	case '"':
		end := strings.IndexByte(p.query[p.pos+1:], '"')
		if end < 0 {
			p.err = p.errorf(start, "unterminated string")
			p.tok = token{kind: tokEOF, offset: start}
			return
		}
		text := p.query[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		p.tok = token{kind: tokString, text: text, offset: start}
	default:
		end := p.pos
		for end < len(p.query) && !strings.ContainsRune(" \t()=!\"", rune(p.query[end])) {
			end++
		}
		if end == p.pos {
			p.err = p.errorf(start, "unexpected character %q", c)
			p.tok = token{kind: tokEOF, offset: start}
			return
		}
		text := p.query[p.pos:end]
		p.pos = end
		p.tok = token{kind: tokWord, text: text, offset: start}
	}
}

func (p *parser) keyword(word string) bool {
	return p.tok.kind == tokWord && strings.EqualFold(p.tok.text, word)
}

func (p *parser) parseOr() (Expr, error) {
	term, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Expr{term}
	for p.keyword("OR") {
		p.next()
		term, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return Or{Terms: terms}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	factors := []Expr{factor}
	for p.keyword("AND") {
		p.next()
		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		factors = append(factors, factor)
	}
	if len(factors) == 1 {
		return factors[0], nil
	}
	return And{Terms: factors}, nil
}

func (p *parser) parseFactor() (Expr, error) {
	if p.err != nil {
		return nil, p.err
	}
	switch {
	case p.keyword("NOT"):
		p.next()
		inner, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return Not{Expr: inner}, nil
	case p.tok.kind == tokLParen:
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf(p.tok.offset, "expected )")
		}
		p.next()
		return inner, nil
	case p.tok.kind == tokWord:
		return p.parseCompare()
	default:
		return nil, p.errorf(p.tok.offset, "expected a comparison, NOT or (")
	}
}

func (p *parser) parseCompare() (Expr, error) {
	key := p.tok.text
	p.next()

	var op Op
	switch p.tok.kind {
	case tokEqual:
		op = OpEqual
	case tokNotEqual:
		op = OpNotEqual
	default:
		if p.err != nil {
			return nil, p.err
		}
		return nil, p.errorf(p.tok.offset, "expected = or != after %q", key)
	}
	p.next()

	if p.tok.kind != tokWord && p.tok.kind != tokString {
		if p.err != nil {
			return nil, p.err
		}
		return nil, p.errorf(p.tok.offset, "expected a value after %q%s", key, op)
	}
	value := p.tok.text
	p.next()
	return Compare{Key: key, Op: op, Value: value}, nil
}
