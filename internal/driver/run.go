package driver

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/takoeight0821/rcalc/internal/asm"
	"github.com/takoeight0821/rcalc/internal/ast"
	"github.com/takoeight0821/rcalc/internal/codegen"
	"github.com/takoeight0821/rcalc/internal/lexer"
	"github.com/takoeight0821/rcalc/internal/parser"
	"github.com/takoeight0821/rcalc/internal/symtab"
)

// ErrHalted is returned when source is fed to a Runner that already emitted EXIT.
var ErrHalted = errors.New("program already exited")

// Runner compiles statements into one instruction stream.
// The symbol table is shared by every statement it sees, across Feed calls.
type Runner struct {
	out   *asm.Writer
	gen   *codegen.Generator
	trace *log.Logger

	started bool
	halted  bool
}

func NewRunner(w io.Writer) *Runner {
	out := asm.NewWriter(w)
	return &Runner{out: out, gen: codegen.NewGenerator(symtab.NewTable(), out)}
}

// SetTrace logs every statement tree in prefix order to logger, followed by
// the variables as they stand after the statement. nil disables tracing.
func (r *Runner) SetTrace(logger *log.Logger) {
	r.trace = logger
}

func (r *Runner) Table() *symtab.Table {
	return r.gen.Table()
}

// Run compiles a whole program and terminates it.
// The returned error is the one that made the program exit with EXIT 1.
func (r *Runner) Run(source string) error {
	if err := r.Feed(source); err != nil {
		return err
	}
	return r.Close()
}

// Feed compiles every statement of source without terminating the program.
// The first error emits EXIT 1 and halts the runner for good.
func (r *Runner) Feed(source string) error {
	if r.halted {
		return ErrHalted
	}
	if err := r.start(); err != nil {
		return err
	}

	p := parser.NewParser(lexer.Lex(source))
	for {
		node, err := p.ParseStatement()
		if errors.Is(err, parser.ErrEndOfInput) {
			break
		}
		if err != nil {
			return r.fail(fmt.Errorf("parse: %w", err))
		}
		if node == nil {
			continue
		}
		if err := r.statement(node); err != nil {
			return r.fail(fmt.Errorf("eval: %w", err))
		}
	}

	return r.out.Flush()
}

// Close reloads the built-ins and emits EXIT 0. It does nothing once the runner has halted.
func (r *Runner) Close() error {
	if r.halted {
		return nil
	}
	if err := r.start(); err != nil {
		return err
	}
	r.halted = true
	if err := r.gen.Epilogue(); err != nil {
		return err
	}
	if err := r.gen.Exit(0); err != nil {
		return err
	}
	return r.out.Flush()
}

func (r *Runner) start() error {
	if r.started {
		return nil
	}
	r.started = true
	return r.gen.Prologue()
}

func (r *Runner) statement(node ast.Node) error {
	if r.trace != nil {
		r.trace.Println(ast.Prefix(node))
	}
	r.gen.Reset()
	if _, err := r.gen.Eval(node); err != nil {
		return err
	}
	if r.trace != nil {
		r.trace.Println(variables(r.gen.Table().Entries()))
	}
	return nil
}

// variables formats the named entries as "name=value" pairs; scratch words are skipped.
func variables(entries []symtab.Symbol) string {
	pairs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%d", e.Name, e.Value))
	}
	return strings.Join(pairs, " ")
}

func (r *Runner) fail(err error) error {
	r.halted = true
	if exitErr := r.gen.Exit(1); exitErr != nil {
		return errors.Join(err, exitErr)
	}
	return errors.Join(err, r.out.Flush())
}
