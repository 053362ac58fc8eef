package asm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/rcalc/internal/asm"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "MOV r3 -12", asm.Mov(asm.Reg(3), asm.Imm(-12)).String())
	assert.Equal(t, "MOV r1 [20]", asm.Mov(asm.Reg(9), asm.Mem(20)).String())
	assert.Equal(t, "MOV [0] r7", asm.Mov(asm.Mem(0), asm.Reg(15)).String())
	assert.Equal(t, "XOR r6 r7", asm.Arith(asm.XOR, 6, 7).String())
	assert.Equal(t, "EXIT 1", asm.Exit(1).String())
}

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	w := asm.NewWriter(&b)
	require.NoError(t, w.Emit(asm.Arith(asm.DIV, 0, 1)))
	require.NoError(t, w.Emit(asm.Exit(0)))
	assert.Empty(t, b.String(), "output is buffered until Flush")
	require.NoError(t, w.Flush())
	assert.Equal(t, "DIV r0 r1\nEXIT 0\n", b.String())
}
