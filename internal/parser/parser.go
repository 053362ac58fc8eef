// Package parser is a parser for rcalc statements
package parser

import (
	"errors"
	"strconv"

	"github.com/takoeight0821/rcalc/internal/ast"
	"github.com/takoeight0821/rcalc/internal/token"
	"github.com/takoeight0821/rcalc/internal/utils"
)

// ErrEndOfInput is returned by ParseStatement once the token stream is exhausted.
var ErrEndOfInput = errors.New("end of input")

type Parser struct {
	tokens  []token.Token
	current int
	err     error
}

// NewParser expects tokens terminated by ENDFILE, as produced by lexer.Lex.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens, 0, nil}
}

// ParseStatement parses the next statement.
// A bare end of line yields a nil node and a nil error.
// End of input directly after an expression terminates it like a newline.
//
// statement = END | assignment END ;
func (p *Parser) ParseStatement() (ast.Node, error) {
	p.err = nil
	if p.IsAtEnd() {
		return nil, ErrEndOfInput
	}
	if p.match(token.END) {
		p.advance()
		return nil, nil
	}

	node := p.assignment()
	if p.err != nil {
		return nil, p.err
	}

	switch {
	case p.match(token.END):
		p.advance()
	case p.IsAtEnd():
	default:
		p.recover(utils.ErrorAt{Where: p.peek(), Err: utils.SyntaxError{Kind: utils.SYNTAXERR}})
		return nil, p.err
	}

	return node, nil
}

// assignment = ID "=" assignment | or ;
func (p *Parser) assignment() ast.Node {
	left := p.or()
	if !p.match(token.ASSIGN) {
		return left
	}

	op := p.advance()
	target, ok := left.(*ast.Ident)
	if !ok {
		p.recover(utils.ErrorAt{Where: op, Err: utils.SyntaxError{Kind: utils.NOTLVAL}})
		return left
	}
	value := p.assignment()
	return &ast.Assign{Token: op, Target: target, Value: value}
}

// or = xor ("|" xor)* ;
func (p *Parser) or() ast.Node {
	expr := p.xor()
	for p.match(token.OR) {
		op := p.advance()
		right := p.xor()
		expr = &ast.Binary{Op: ast.Or, Token: op, Left: expr, Right: right}
	}
	return expr
}

// xor = and ("^" and)* ;
func (p *Parser) xor() ast.Node {
	expr := p.and()
	for p.match(token.XOR) {
		op := p.advance()
		right := p.and()
		expr = &ast.Binary{Op: ast.Xor, Token: op, Left: expr, Right: right}
	}
	return expr
}

// and = addsub ("&" addsub)* ;
func (p *Parser) and() ast.Node {
	expr := p.addsub()
	for p.match(token.AND) {
		op := p.advance()
		right := p.addsub()
		expr = &ast.Binary{Op: ast.And, Token: op, Left: expr, Right: right}
	}
	return expr
}

// addsub = muldiv (("+" | "-") muldiv)* ;
func (p *Parser) addsub() ast.Node {
	expr := p.muldiv()
	for p.match(token.ADDSUB) {
		op := p.advance()
		right := p.muldiv()
		expr = &ast.Binary{Op: additive(op), Token: op, Left: expr, Right: right}
	}
	return expr
}

// muldiv = unary (("*" | "/") unary)* ;
func (p *Parser) muldiv() ast.Node {
	expr := p.unary()
	for p.match(token.MULDIV) {
		op := p.advance()
		right := p.unary()
		kind := ast.Mul
		if op.Lexeme == "/" {
			kind = ast.Div
		}
		expr = &ast.Binary{Op: kind, Token: op, Left: expr, Right: right}
	}
	return expr
}

// unary = ("+" | "-") unary | factor ;
//
// A sign is rewritten as a subtraction (or addition) from zero.
func (p *Parser) unary() ast.Node {
	if !p.match(token.ADDSUB) {
		return p.factor()
	}
	op := p.advance()
	zero := &ast.Int{Token: token.Token{Kind: token.INT, Lexeme: "0", Line: op.Line}, Value: 0}
	right := p.unary()
	return &ast.Binary{Op: additive(op), Token: op, Left: zero, Right: right}
}

// factor = INT | ID | ("++" | "--") ID | "(" assignment ")" ;
func (p *Parser) factor() ast.Node {
	switch t := p.peek(); t.Kind {
	case token.INT:
		p.advance()
		value, err := strconv.ParseInt(t.Lexeme, 10, 32)
		if err != nil {
			p.recover(utils.ErrorAt{Where: t, Err: utils.SyntaxError{Kind: utils.NOTNUMID}})
			return nil
		}
		return &ast.Int{Token: t, Value: int32(value)}
	case token.ID:
		p.advance()
		return &ast.Ident{Name: t}
	case token.INCDEC:
		p.advance()
		if !p.match(token.ID) {
			p.recover(utils.ErrorAt{Where: p.peek(), Err: utils.SyntaxError{Kind: utils.NOTNUMID}})
			return nil
		}
		name := p.advance()
		one := &ast.Int{Token: token.Token{Kind: token.INT, Lexeme: "1", Line: t.Line}, Value: 1}
		kind := ast.Inc
		if t.Lexeme == "--" {
			kind = ast.Dec
		}
		return &ast.Binary{Op: kind, Token: t, Left: &ast.Ident{Name: name}, Right: one}
	case token.LPAREN:
		p.advance()
		expr := p.assignment()
		if p.err != nil {
			return expr
		}
		if !p.match(token.RPAREN) {
			p.recover(utils.ErrorAt{Where: p.peek(), Err: utils.SyntaxError{Kind: utils.MISPAREN}})
			return expr
		}
		p.advance()
		return expr
	default:
		p.recover(utils.ErrorAt{Where: t, Err: utils.SyntaxError{Kind: utils.NOTNUMID}})
		return nil
	}
}

func additive(op token.Token) ast.Op {
	if op.Lexeme == "-" {
		return ast.Sub
	}
	return ast.Add
}

// recover keeps the first error only: every later one is a consequence of it.
func (p *Parser) recover(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.ENDFILE
}

func (p Parser) match(kind token.TokenKind) bool {
	if p.IsAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}
