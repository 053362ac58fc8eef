// Package lexer splits rcalc source text into tokens.
package lexer

import (
	"unicode/utf8"

	"github.com/takoeight0821/rcalc/internal/token"
)

// Lex scans the whole source. It never fails: characters outside the
// language become UNKNOWN tokens and are rejected by the parser when reached,
// so statements before them are still compiled.
// Every newline is an END token and the result always ends with ENDFILE.
func Lex(source string) []token.Token {
	l := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
	}

	for !l.isAtEnd() {
		l.scanToken()
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.ENDFILE, Lexeme: "", Line: l.line})

	return l.tokens
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *lexer) addToken(kind token.TokenKind) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Line: l.line})
}

func (l *lexer) scanToken() {
	l.start = l.current
	char := l.advance()
	switch char {
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		l.tokens = append(l.tokens, token.Token{Kind: token.END, Lexeme: "", Line: l.line})
		l.line++
	case '+', '-':
		if l.peek() == char {
			l.advance()
			l.addToken(token.INCDEC)
		} else {
			l.addToken(token.ADDSUB)
		}
	default:
		if k, ok := reservedSymbols[char]; ok {
			l.addToken(k)
			return
		}
		if isDigit(char) {
			l.integer()
			return
		}
		if isAlpha(char) {
			l.identifier()
			return
		}
		l.addToken(token.UNKNOWN)
	}
}

var reservedSymbols = map[rune]token.TokenKind{
	'*': token.MULDIV,
	'/': token.MULDIV,
	'=': token.ASSIGN,
	'(': token.LPAREN,
	')': token.RPAREN,
	'&': token.AND,
	'|': token.OR,
	'^': token.XOR,
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// Identifiers are ASCII only.
func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func (l *lexer) integer() {
	for isDigit(l.peek()) {
		l.advance()
	}
	l.addToken(token.INT)
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	l.addToken(token.ID)
}
