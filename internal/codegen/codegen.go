// Package codegen walks statement trees, emits machine instructions and keeps
// the symbol table up to date with the values the statements compute.
//
// Registers are handed out by a cursor over an 8-register window. Once more
// than eight values are live, the oldest ones are stored into scratch words
// appended to the symbol table and reloaded as operators consume operands.
package codegen

import (
	"fmt"

	"github.com/takoeight0821/rcalc/internal/asm"
	"github.com/takoeight0821/rcalc/internal/ast"
	"github.com/takoeight0821/rcalc/internal/symtab"
	"github.com/takoeight0821/rcalc/internal/utils"
)

type Generator struct {
	table *symtab.Table
	out   asm.Emitter

	// per statement
	cursor  int // next register, used modulo asm.Registers
	assigns int // assignments evaluated so far

	// word index of each spilled register; spill i saved register i
	spills []int
}

func NewGenerator(table *symtab.Table, out asm.Emitter) *Generator {
	return &Generator{table: table, out: out}
}

// Reset clears the per-statement state. The symbol table and pending spills are kept.
func (g *Generator) Reset() {
	g.cursor = 0
	g.assigns = 0
}

func (g *Generator) Table() *symtab.Table {
	return g.table
}

// Spills returns the number of registers currently saved in scratch words.
func (g *Generator) Spills() int {
	return len(g.spills)
}

// Prologue loads the built-in variables into the first registers.
func (g *Generator) Prologue() error {
	for i := range symtab.Builtins {
		if err := g.emit(asm.Mov(asm.Reg(i), asm.Mem(symtab.Addr(i)))); err != nil {
			return err
		}
	}
	return nil
}

// Epilogue is emitted before a successful exit; it reloads the built-ins like Prologue.
func (g *Generator) Epilogue() error {
	return g.Prologue()
}

func (g *Generator) Exit(code int) error {
	return g.emit(asm.Exit(code))
}

// Eval emits the code of node and returns its value.
func (g *Generator) Eval(node ast.Node) (int32, error) {
	switch n := node.(type) {
	case nil:
		return 0, nil
	case *ast.Ident:
		return g.ident(n)
	case *ast.Int:
		return n.Value, g.load(asm.Imm(n.Value))
	case *ast.Assign:
		return g.assign(n)
	case *ast.Binary:
		if n.Op == ast.Mul || n.Op == ast.Div {
			return g.multiplicative(n)
		}
		return g.binary(n)
	default:
		return 0, utils.ErrorAt{Where: node.Base(), Err: fmt.Errorf("%w: unexpected node %v", utils.UNDEFINED, n)}
	}
}

func (g *Generator) ident(n *ast.Ident) (int32, error) {
	value, err := g.table.Lookup(n.Name.Lexeme)
	if err != nil {
		return 0, utils.ErrorAt{Where: n.Name, Err: err}
	}
	index, _ := g.table.Index(n.Name.Lexeme)
	return value, g.load(asm.Mem(symtab.Addr(index)))
}

// load moves src into the register under the cursor, spilling first when the window is full.
func (g *Generator) load(src asm.Operand) error {
	if g.cursor >= asm.Registers {
		if err := g.spill(); err != nil {
			return err
		}
	}
	if err := g.emit(asm.Mov(asm.Reg(g.cursor), src)); err != nil {
		return err
	}
	g.cursor++
	return nil
}

func (g *Generator) spill() error {
	word, err := g.table.Push()
	if err != nil {
		return err
	}
	if err := g.emit(asm.Mov(asm.Mem(symtab.Addr(word)), asm.Reg(len(g.spills)))); err != nil {
		return err
	}
	g.spills = append(g.spills, word)
	return nil
}

// reload restores the most recent spill into the register it was saved from.
func (g *Generator) reload() error {
	top := len(g.spills) - 1
	if err := g.emit(asm.Mov(asm.Reg(top), asm.Mem(symtab.Addr(g.spills[top])))); err != nil {
		return err
	}
	g.spills = g.spills[:top]
	g.table.Pop()
	return nil
}

// retire frees the result register, unless an assignment of this statement still needs it.
// Write-backs bump the counter before calling retire, so the result stays live.
func (g *Generator) retire() {
	if g.cursor > 0 && g.assigns < 1 {
		g.cursor--
	}
}

// operands returns the two most recently loaded registers.
func (g *Generator) operands() (asm.Reg, asm.Reg) {
	return asm.Reg(g.cursor - 2), asm.Reg(g.cursor - 1)
}

// store writes the latest register back to the named variable.
func (g *Generator) store(target *ast.Ident, value int32) error {
	if _, err := g.table.Assign(target.Name.Lexeme, value); err != nil {
		return utils.ErrorAt{Where: target.Name, Err: err}
	}
	index, _ := g.table.Index(target.Name.Lexeme)
	return g.emit(asm.Mov(asm.Mem(symtab.Addr(index)), asm.Reg(g.cursor-1)))
}

func (g *Generator) assign(n *ast.Assign) (int32, error) {
	value, err := g.Eval(n.Value)
	if err != nil {
		return 0, err
	}
	g.assigns++
	if err := g.store(n.Target, value); err != nil {
		return 0, err
	}
	// A pending spill is left to the operator that consumes this value.
	g.retire()
	return value, nil
}

var opcodes = map[ast.Op]asm.Opcode{
	ast.Add: asm.ADD,
	ast.Sub: asm.SUB,
	ast.Mul: asm.MUL,
	ast.Div: asm.DIV,
	ast.And: asm.AND,
	ast.Or:  asm.OR,
	ast.Xor: asm.XOR,
	ast.Inc: asm.ADD,
	ast.Dec: asm.SUB,
}

// binary handles + - & | ^ and the write-back forms ++ and --.
func (g *Generator) binary(n *ast.Binary) (int32, error) {
	lv, err := g.Eval(n.Left)
	if err != nil {
		return 0, err
	}
	rv, err := g.Eval(n.Right)
	if err != nil {
		return 0, err
	}

	var value int32
	switch n.Op {
	case ast.Add, ast.Inc:
		value = lv + rv
	case ast.Sub, ast.Dec:
		value = lv - rv
	case ast.And:
		value = lv & rv
	case ast.Or:
		value = lv | rv
	case ast.Xor:
		value = lv ^ rv
	}

	dst, src := g.operands()
	if err := g.emit(asm.Arith(opcodes[n.Op], dst, src)); err != nil {
		return 0, err
	}
	g.cursor--

	if n.Op.IsIncDec() {
		target, ok := n.Left.(*ast.Ident)
		if !ok {
			return 0, utils.ErrorAt{Where: n.Token, Err: utils.SyntaxError{Kind: utils.NOTLVAL}}
		}
		g.assigns++
		if err := g.store(target, value); err != nil {
			return 0, err
		}
		g.retire()
	}

	if len(g.spills) > 0 {
		return value, g.reload()
	}
	return value, nil
}

// multiplicative handles * and /. A divisor that evaluates to zero is
// replaced by one when it mentions a variable; a constant zero divisor is fatal.
func (g *Generator) multiplicative(n *ast.Binary) (int32, error) {
	lv, err := g.Eval(n.Left)
	if err != nil {
		return 0, err
	}
	rv, err := g.Eval(n.Right)
	if err != nil {
		return 0, err
	}

	var value int32
	if n.Op == ast.Div {
		if rv == 0 {
			if ast.CountIdents(n.Right) == 0 {
				return 0, utils.ErrorAt{Where: n.Token, Err: utils.DIVZERO}
			}
			rv = 1
		}
		value = lv / rv
	} else {
		value = lv * rv
	}

	dst, src := g.operands()
	if err := g.emit(asm.Arith(opcodes[n.Op], dst, src)); err != nil {
		return 0, err
	}

	if len(g.spills) > 0 {
		return value, g.reload()
	}
	g.cursor--
	return value, nil
}

func (g *Generator) emit(in asm.Instr) error {
	if err := g.out.Emit(in); err != nil {
		return fmt.Errorf("emit %v: %w", in, err)
	}
	return nil
}
