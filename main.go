package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"
	"github.com/takoeight0821/rcalc/internal/driver"
	"github.com/xyproto/env/v2"
)

func main() {
	const (
		inputUsage = "input file path (- for stdin)"
		treeUsage  = "print the tree of each statement to stderr"
	)
	var inputPath string
	var tree bool
	flag.StringVar(&inputPath, "input", "", inputUsage)
	flag.StringVar(&inputPath, "i", "", inputUsage+" (shorthand)")
	flag.BoolVar(&tree, "tree", env.Bool("RCALC_TREE"), treeUsage)

	flag.Parse()

	r := driver.NewRunner(os.Stdout)
	if tree {
		r.SetTrace(log.New(os.Stderr, "tree: ", 0))
	}

	var err error
	switch {
	case inputPath == "" && isTerminal(os.Stdin):
		err = RunPrompt(r)
	case inputPath == "" || inputPath == "-":
		err = RunReader(r, os.Stdin)
	default:
		err = RunFile(r, inputPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var history = env.Str("RCALC_HISTORY", filepath.Join(xdg.DataHome, "rcalc", ".rcalc_history"))

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// RunPrompt compiles one line at a time until end of input.
func RunPrompt(r *driver.Runner) error {
	line := liner.NewLiner()
	defer line.Close()

	if err := loadHistory(line, history); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
	}
	defer func() {
		if err := saveHistory(line, history); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, io.EOF) {
			return r.Close()
		}
		if err != nil {
			return err
		}
		line.AppendHistory(input)
		if err := r.Feed(input); err != nil {
			return err
		}
	}
}

func loadHistory(line *liner.State, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = line.ReadHistory(f)
	return err
}

func saveHistory(line *liner.State, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := line.WriteHistory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func RunReader(r *driver.Runner, in io.Reader) error {
	bytes, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	return r.Run(string(bytes))
}

func RunFile(r *driver.Runner, path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Run(string(bytes))
}
