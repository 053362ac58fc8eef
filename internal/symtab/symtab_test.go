package symtab_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/rcalc/internal/symtab"
	"github.com/takoeight0821/rcalc/internal/utils"
)

func TestBuiltins(t *testing.T) {
	table := symtab.NewTable()
	require.Equal(t, 3, table.Len())
	for i, name := range []string{"x", "y", "z"} {
		index, ok := table.Index(name)
		assert.True(t, ok, name)
		assert.Equal(t, i, index, name)
		value, err := table.Lookup(name)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), value)
	}
	assert.Equal(t, 8, symtab.Addr(2))
}

func TestAssign(t *testing.T) {
	table := symtab.NewTable()

	value, err := table.Assign("answer", 42)
	require.NoError(t, err)
	assert.Equal(t, int32(42), value)
	assert.Equal(t, 4, table.Len())

	index, ok := table.Index("answer")
	require.True(t, ok)
	assert.Equal(t, 3, index)

	_, err = table.Assign("answer", -1)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len(), "reassignment must not grow the table")
	index, _ = table.Index("answer")
	assert.Equal(t, 3, index, "reassignment must not move the entry")

	value, err = table.Lookup("answer")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), value)
}

func TestLookupUndefined(t *testing.T) {
	table := symtab.NewTable()
	_, err := table.Lookup("w")
	assert.ErrorIs(t, err, utils.NOTFOUND)
}

func TestCapacity(t *testing.T) {
	table := symtab.NewTable()
	for i := table.Len(); i < symtab.Capacity; i++ {
		_, err := table.Assign(fmt.Sprintf("v%d", i), int32(i))
		require.NoError(t, err)
	}

	_, err := table.Assign("overflow", 1)
	assert.ErrorIs(t, err, utils.RUNOUT)
	_, err = table.Push()
	assert.ErrorIs(t, err, utils.RUNOUT)

	_, err = table.Assign("v10", 0)
	assert.NoError(t, err, "existing names stay assignable in a full table")
}

func TestScratchWords(t *testing.T) {
	table := symtab.NewTable()

	word, err := table.Push()
	require.NoError(t, err)
	assert.Equal(t, 3, word)
	assert.Equal(t, 4, table.Len())

	_, ok := table.Index("")
	assert.False(t, ok, "scratch words have no name")

	table.Pop()
	assert.Equal(t, 3, table.Len())
	assert.Len(t, table.Entries(), 3)
}
