package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/takoeight0821/rcalc/internal/token"
	"gopkg.in/yaml.v3"
)

// Kind classifies every fatal condition of a run.
// A Kind is itself an error so that errors.Is(err, utils.NOTFOUND) works on wrapped errors.
type Kind int

const (
	UNDEFINED Kind = iota
	MISPAREN
	NOTNUMID
	NOTFOUND
	RUNOUT
	NOTLVAL
	DIVZERO
	SYNTAXERR
	INVALIDVAR
)

var kindMessages = [...]string{
	UNDEFINED:  "undefined",
	MISPAREN:   "mismatched parenthesis",
	NOTNUMID:   "number or identifier expected",
	NOTFOUND:   "variable not defined",
	RUNOUT:     "out of memory",
	NOTLVAL:    "lvalue required as an operand",
	DIVZERO:    "divide by constant zero",
	SYNTAXERR:  "syntax error",
	INVALIDVAR: "invalid variable",
}

func (k Kind) Error() string {
	if k < 0 || int(k) >= len(kindMessages) {
		return fmt.Sprintf("error kind %d", int(k))
	}
	return kindMessages[k]
}

// SyntaxError reports a grammar violation. It matches both its own Kind and SYNTAXERR.
type SyntaxError struct {
	Kind Kind
}

func (e SyntaxError) Error() string {
	if e.Kind == SYNTAXERR {
		return SYNTAXERR.Error()
	}
	return fmt.Sprintf("%s: %s", SYNTAXERR, e.Kind)
}

func (e SyntaxError) Is(target error) bool {
	return target == SYNTAXERR || target == e.Kind
}

type ErrorAt struct {
	Where token.Token
	Err   error
}

func (e ErrorAt) Error() string {
	switch e.Where.Kind {
	case token.ENDFILE:
		return fmt.Sprintf("at end: %s", e.Err.Error())
	case token.END:
		return fmt.Sprintf("at %d: end of line, %s", e.Where.Line, e.Err.Error())
	}
	return fmt.Sprintf("at %d: `%s`, %s", e.Where.Line, e.Where.Lexeme, e.Err.Error())
}

func (e ErrorAt) Unwrap() error {
	return e.Err
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

// LoadTestData reads a yaml table of test cases from path and keeps the enabled ones.
// Unknown keys in a case are an error, so a misspelled field cannot silently disable a check.
func LoadTestData(path string) ([]TestData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var all []TestData
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&all); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	enabled := make([]TestData, 0, len(all))
	for _, d := range all {
		if d.Enable {
			enabled = append(enabled, d)
		}
	}
	return enabled, nil
}

// FindSourceFiles lists the rcalc programs directly under dir.
func FindSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".calc" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}
