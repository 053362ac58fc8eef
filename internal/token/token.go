package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=TokenKind
type TokenKind int

const (
	UNKNOWN TokenKind = iota

	// End markers.
	END
	ENDFILE

	// Literals and identifiers.
	INT
	ID

	// Operators.
	ADDSUB
	MULDIV
	ASSIGN
	LPAREN
	RPAREN
	INCDEC
	AND
	OR
	XOR
)

type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d}", t.Kind, t.Lexeme, t.Line)
}

func (t Token) Base() Token {
	return t
}
