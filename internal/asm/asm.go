// Package asm models the instructions of the target machine and writes them one per line.
package asm

import (
	"bufio"
	"fmt"
	"io"
)

// Registers is the size of the register file.
const Registers = 8

type Opcode int

const (
	MOV Opcode = iota
	ADD
	SUB
	MUL
	DIV
	AND
	OR
	XOR
	EXIT
)

var mnemonics = [...]string{
	MOV:  "MOV",
	ADD:  "ADD",
	SUB:  "SUB",
	MUL:  "MUL",
	DIV:  "DIV",
	AND:  "AND",
	OR:   "OR",
	XOR:  "XOR",
	EXIT: "EXIT",
}

func (op Opcode) String() string {
	return mnemonics[op]
}

// Operand is a register, a memory address or an immediate value.
type Operand interface {
	fmt.Stringer
	operand()
}

// Reg is a register number; it is always printed modulo Registers.
type Reg int

func (r Reg) String() string {
	n := int(r) % Registers
	if n < 0 {
		n += Registers
	}
	return fmt.Sprintf("r%d", n)
}

func (Reg) operand() {}

// Mem is a byte address.
type Mem int

func (m Mem) String() string {
	return fmt.Sprintf("[%d]", int(m))
}

func (Mem) operand() {}

type Imm int32

func (i Imm) String() string {
	return fmt.Sprintf("%d", int32(i))
}

func (Imm) operand() {}

type Instr struct {
	Op   Opcode
	Args []Operand
}

func (in Instr) String() string {
	s := in.Op.String()
	for _, arg := range in.Args {
		s += " " + arg.String()
	}
	return s
}

func Mov(dst, src Operand) Instr {
	return Instr{Op: MOV, Args: []Operand{dst, src}}
}

func Arith(op Opcode, dst, src Reg) Instr {
	return Instr{Op: op, Args: []Operand{dst, src}}
}

func Exit(code int) Instr {
	return Instr{Op: EXIT, Args: []Operand{Imm(code)}}
}

// Emitter receives generated instructions.
type Emitter interface {
	Emit(Instr) error
}

// Writer prints instructions one per line.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Emit(in Instr) error {
	if _, err := w.w.WriteString(in.String()); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Listing collects instructions in memory.
type Listing []Instr

func (l *Listing) Emit(in Instr) error {
	*l = append(*l, in)
	return nil
}

// Lines renders every instruction of the listing.
func (l Listing) Lines() []string {
	lines := make([]string, len(l))
	for i, in := range l {
		lines[i] = in.String()
	}
	return lines
}
