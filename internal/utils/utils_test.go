package utils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/takoeight0821/rcalc/internal/token"
	"github.com/takoeight0821/rcalc/internal/utils"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTestDataSkipsDisabled(t *testing.T) {
	path := writeTable(t, `
- label: on
  enable: true
  input: "x = 1"
- label: off
  enable: false
  input: "x = 2"
`)
	cases, err := utils.LoadTestData(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || cases[0].Label != "on" {
		t.Errorf("got %+v, expected only the enabled case", cases)
	}
}

func TestLoadTestDataRejectsUnknownKeys(t *testing.T) {
	path := writeTable(t, `
- label: typo
  enabled: true
  input: "x = 1"
`)
	if _, err := utils.LoadTestData(path); err == nil {
		t.Error("expected an error for the unknown key")
	}
}

func TestErrorAt(t *testing.T) {
	err := utils.ErrorAt{
		Where: token.Token{Kind: token.ID, Lexeme: "w", Line: 3},
		Err:   utils.NOTFOUND,
	}
	if !errors.Is(err, utils.NOTFOUND) {
		t.Errorf("%v does not wrap NOTFOUND", err)
	}
	if errors.Is(err, utils.SYNTAXERR) {
		t.Errorf("%v should not be a syntax error", err)
	}
}
