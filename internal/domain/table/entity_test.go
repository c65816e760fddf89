//go:build unit

package table_test

import (
	"testing"

	"resto-api/internal/domain/table"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		tbl, err := table.NewTable("  Window 4  ")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, tbl.ID())
		assert.Equal(t, "Window 4", tbl.Name())
		assert.False(t, tbl.IsOccupied(), "a new table starts free")
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := table.NewTable("   ")
		assert.ErrorIs(t, err, table.ErrEmptyName)
	})
}

func TestOccupancyTransitions(t *testing.T) {
	newTable := func(t *testing.T) *table.Table {
		t.Helper()
		tbl, err := table.NewTable("T1")
		require.NoError(t, err)
		return tbl
	}

	t.Run("free to occupied", func(t *testing.T) {
		tbl := newTable(t)
		require.NoError(t, tbl.Occupy())
		assert.True(t, tbl.IsOccupied())
	})

	t.Run("occupying an occupied table fails", func(t *testing.T) {
		tbl := newTable(t)
		require.NoError(t, tbl.Occupy())

		err := tbl.Occupy()
		assert.ErrorIs(t, err, table.ErrAlreadyOccupied)
		assert.True(t, tbl.IsOccupied(), "the failed transition leaves state untouched")
	})

	t.Run("release is unconditional", func(t *testing.T) {
		tbl := newTable(t)
		require.NoError(t, tbl.Occupy())

		tbl.Release()
		assert.False(t, tbl.IsOccupied())

		// Releasing a free table is a no-op, not an error.
		tbl.Release()
		assert.False(t, tbl.IsOccupied())
	})
}

func TestRename(t *testing.T) {
	tbl, err := table.NewTable("T1")
	require.NoError(t, err)

	require.NoError(t, tbl.Rename("  Patio 2 "))
	assert.Equal(t, "Patio 2", tbl.Name())

	assert.ErrorIs(t, tbl.Rename(" "), table.ErrEmptyName)
	assert.Equal(t, "Patio 2", tbl.Name())
}
