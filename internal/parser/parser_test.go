package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/rcalc/internal/lexer"
	"github.com/takoeight0821/rcalc/internal/parser"
	"github.com/takoeight0821/rcalc/internal/utils"
)

func parseAll(input string) string {
	p := parser.NewParser(lexer.Lex(input))

	var b strings.Builder
	for {
		node, err := p.ParseStatement()
		if errors.Is(err, parser.ErrEndOfInput) {
			break
		}
		if err != nil {
			b.WriteString("error: ")
			b.WriteString(err.Error())
			b.WriteString("\n")
			break
		}
		if node == nil {
			continue
		}
		b.WriteString(node.String())
		b.WriteString("\n")
	}
	return b.String()
}

func TestParseFromTestData(t *testing.T) {
	t.Parallel()
	testcases, err := utils.LoadTestData("../../testdata/testcase.yaml")
	if err != nil {
		t.Fatal(err)
	}
	for _, testcase := range testcases {
		expected, ok := testcase.Expected["parser"]
		if !ok {
			continue
		}
		actual := parseAll(testcase.Input)
		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Errorf("Parse %s mismatch (-want +got):\n%s", testcase.Label, diff)
		}
	}
}

func TestSyntaxErrorKinds(t *testing.T) {
	testcases := []struct {
		input string
		kind  utils.Kind
	}{
		{"(1 + 2\n", utils.MISPAREN},
		{"((x)\n", utils.MISPAREN},
		{"1 + 2 = 3\n", utils.NOTLVAL},
		{"-x = 3\n", utils.NOTLVAL},
		{"++(x)\n", utils.NOTNUMID},
		{"--\n", utils.NOTNUMID},
		{"x * \n", utils.NOTNUMID},
		{")\n", utils.NOTNUMID},
		{"99999999999\n", utils.NOTNUMID},
		{"x y\n", utils.SYNTAXERR},
	}

	for _, testcase := range testcases {
		_, err := parser.NewParser(lexer.Lex(testcase.input)).ParseStatement()
		if !errors.Is(err, testcase.kind) {
			t.Errorf("%q: got %v, expected %v", testcase.input, err, testcase.kind)
		}
		if !errors.Is(err, utils.SYNTAXERR) {
			t.Errorf("%q: %v is not a syntax error", testcase.input, err)
		}
	}
}

func TestParenthesizedTargetIsAssignable(t *testing.T) {
	node, err := parser.NewParser(lexer.Lex("(x) = 1\n")).ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement returned error: %v", err)
	}
	if diff := cmp.Diff("(= (var x) (int 1))", node.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnaryAndIncDecDesugar(t *testing.T) {
	node, err := parser.NewParser(lexer.Lex("x = +y ^ --z")).ParseStatement()
	if err != nil {
		t.Fatalf("ParseStatement returned error: %v", err)
	}
	expected := "(= (var x) (^ (+ (int 0) (var y)) (-- (var z) (int 1))))"
	if diff := cmp.Diff(expected, node.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := parser.NewParser(lexer.Lex("x ) 1")).ParseStatement(); !errors.Is(err, utils.SYNTAXERR) {
		t.Errorf("ParseStatement accepted trailing tokens: %v", err)
	}
}

func TestEndOfInput(t *testing.T) {
	p := parser.NewParser(lexer.Lex(""))
	if _, err := p.ParseStatement(); !errors.Is(err, parser.ErrEndOfInput) {
		t.Errorf("got %v, expected %v", err, parser.ErrEndOfInput)
	}
}
