package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/rcalc/internal/token"
)

// AST

type Node interface {
	fmt.Stringer
	Base() token.Token
	// Children returns the left and right slots; either may be nil.
	Children() (Node, Node)
}

type Ident struct {
	Name token.Token
}

func (i Ident) String() string {
	return parenthesize("var", i.Name.Lexeme).String()
}

func (i *Ident) Base() token.Token {
	return i.Name
}

func (i *Ident) Children() (Node, Node) {
	return nil, nil
}

var _ Node = &Ident{}

type Int struct {
	token.Token
	Value int32
}

func (i Int) String() string {
	return parenthesize("int", fmt.Sprint(i.Value)).String()
}

func (i *Int) Base() token.Token {
	return i.Token
}

func (i *Int) Children() (Node, Node) {
	return nil, nil
}

var _ Node = &Int{}

// Op is the operator carried by a Binary node.
// Inc and Dec are the desugared prefix `++id` and `--id`.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	And
	Or
	Xor
	Inc
	Dec
)

var opLexemes = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	And: "&",
	Or:  "|",
	Xor: "^",
	Inc: "++",
	Dec: "--",
}

func (op Op) String() string {
	return opLexemes[op]
}

// IsIncDec reports whether op writes its result back to the left identifier.
func (op Op) IsIncDec() bool {
	return op == Inc || op == Dec
}

type Binary struct {
	Op    Op
	Token token.Token
	Left  Node
	Right Node
}

func (b Binary) String() string {
	return parenthesize(b.Op.String(), b.Left, b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Token
}

func (b *Binary) Children() (Node, Node) {
	return b.Left, b.Right
}

var _ Node = &Binary{}

type Assign struct {
	Token  token.Token
	Target *Ident
	Value  Node
}

func (a Assign) String() string {
	return parenthesize("=", a.Target, a.Value).String()
}

func (a *Assign) Base() token.Token {
	return a.Token
}

func (a *Assign) Children() (Node, Node) {
	return a.Target, a.Value
}

var _ Node = &Assign{}

func parenthesize(head string, elems ...any) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	for _, elem := range elems {
		b.WriteString(" ")
		b.WriteString(fmt.Sprint(elem))
	}
	b.WriteString(")")
	return &b
}

// Traverse the [Node] in pre-order (node, left, right).
func Traverse(n Node, f func(Node)) {
	if n == nil {
		return
	}
	f(n)
	left, right := n.Children()
	Traverse(left, f)
	Traverse(right, f)
}

// CountIdents returns how many identifier references occur anywhere under n.
func CountIdents(n Node) int {
	count := 0
	Traverse(n, func(n Node) {
		if _, ok := n.(*Ident); ok {
			count++
		}
	})
	return count
}

// Prefix renders the lexemes of n in pre-order, each followed by a space.
func Prefix(n Node) string {
	var b strings.Builder
	Traverse(n, func(n Node) {
		b.WriteString(n.Base().Lexeme)
		b.WriteString(" ")
	})
	return b.String()
}
