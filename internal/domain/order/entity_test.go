//go:build unit

package order_test

import (
	"testing"
	"time"

	"resto-api/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, qty int32, cents int64) order.Line {
	t.Helper()
	l, err := order.NewLine(uuid.New(), qty, order.NewMoney(cents))
	require.NoError(t, err)
	return l
}

func TestNewOrder(t *testing.T) {
	placedAt := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		tableID := uuid.New()
		lines := []order.Line{
			mustLine(t, 2, 1250),
			mustLine(t, 1, 800),
		}

		o, err := order.NewOrder("Alice", order.KindDineIn, &tableID, lines, placedAt)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, int64(3300), o.Total().Cents(), "total is the sum of line subtotals")
		assert.Equal(t, &tableID, o.TableID())
		assert.True(t, o.HoldsTable())
	})

	t.Run("takeaway never binds a table", func(t *testing.T) {
		tableID := uuid.New()
		lines := []order.Line{mustLine(t, 1, 500)}

		o, err := order.NewOrder("Bob", order.KindTakeaway, &tableID, lines, placedAt)
		require.NoError(t, err)

		assert.Nil(t, o.TableID())
		assert.False(t, o.HoldsTable())
	})

	t.Run("dine-in requires a table", func(t *testing.T) {
		lines := []order.Line{mustLine(t, 1, 500)}

		_, err := order.NewOrder("Alice", order.KindDineIn, nil, lines, placedAt)
		assert.ErrorIs(t, err, order.ErrTableRequired)
	})

	t.Run("order needs at least one line", func(t *testing.T) {
		tableID := uuid.New()

		_, err := order.NewOrder("Alice", order.KindDineIn, &tableID, nil, placedAt)
		assert.ErrorIs(t, err, order.ErrNoLines)
	})

	t.Run("empty client name is rejected", func(t *testing.T) {
		tableID := uuid.New()
		lines := []order.Line{mustLine(t, 1, 500)}

		_, err := order.NewOrder("  ", order.KindDineIn, &tableID, lines, placedAt)
		assert.ErrorIs(t, err, order.ErrEmptyClientName)
	})
}

func TestLineSnapshot(t *testing.T) {
	t.Run("subtotal uses the captured price", func(t *testing.T) {
		l := mustLine(t, 3, 450)
		assert.Equal(t, int64(1350), l.Subtotal().Cents())
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		_, err := order.NewLine(uuid.New(), 0, order.NewMoney(100))
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		_, err := order.NewLine(uuid.New(), 1, order.NewMoney(-1))
		assert.ErrorIs(t, err, order.ErrNegativePrice)
	})

	t.Run("free item is allowed", func(t *testing.T) {
		l, err := order.NewLine(uuid.New(), 2, order.NewMoney(0))
		require.NoError(t, err)
		assert.Equal(t, int64(0), l.Subtotal().Cents())
	})
}
