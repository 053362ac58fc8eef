// Package symtab holds the variables of a run and the memory words backing them.
//
// The index of an entry is its memory word: entry i lives at address i*WordSize.
// Entries are never removed, except for the unnamed scratch words pushed while
// registers are spilled.
package symtab

import (
	"fmt"

	"github.com/takoeight0821/rcalc/internal/utils"
)

const (
	// Capacity is the maximum number of entries, spill scratch words included.
	Capacity = 64
	// WordSize is the size of a memory word in bytes.
	WordSize = 4
)

// Builtins are declared before the first statement, at indices 0, 1 and 2.
var Builtins = []string{"x", "y", "z"}

type Symbol struct {
	Name  string
	Value int32
}

type Table struct {
	entries []Symbol
}

func NewTable() *Table {
	t := &Table{entries: make([]Symbol, 0, Capacity)}
	for _, name := range Builtins {
		t.entries = append(t.entries, Symbol{Name: name})
	}
	return t
}

// Lookup returns the value of name. Reading a variable that was never assigned is an error.
func (t *Table) Lookup(name string) (int32, error) {
	if i, ok := t.Index(name); ok {
		return t.entries[i].Value, nil
	}
	return 0, fmt.Errorf("%w: %s", utils.NOTFOUND, name)
}

// Assign overwrites name in place, or appends it at the next free index.
func (t *Table) Assign(name string, value int32) (int32, error) {
	if i, ok := t.Index(name); ok {
		t.entries[i].Value = value
		return value, nil
	}
	if len(t.entries) >= Capacity {
		return 0, fmt.Errorf("%w: cannot declare %s", utils.RUNOUT, name)
	}
	t.entries = append(t.entries, Symbol{Name: name, Value: value})
	return value, nil
}

// Index returns the index of the named entry.
func (t *Table) Index(name string) (int, bool) {
	for i, sym := range t.entries {
		if sym.Name != "" && sym.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Push appends an unnamed scratch word and returns its index.
func (t *Table) Push() (int, error) {
	if len(t.entries) >= Capacity {
		return 0, fmt.Errorf("%w: cannot spill", utils.RUNOUT)
	}
	t.entries = append(t.entries, Symbol{})
	return len(t.entries) - 1, nil
}

// Pop drops the last entry.
func (t *Table) Pop() {
	if len(t.entries) > 0 {
		t.entries = t.entries[:len(t.entries)-1]
	}
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Addr returns the byte address of the word at index.
func Addr(index int) int {
	return index * WordSize
}

// Entries returns a copy of the current entries.
func (t *Table) Entries() []Symbol {
	return append([]Symbol(nil), t.entries...)
}
