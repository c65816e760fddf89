//go:build unit

package order_test

import (
	"testing"

	"resto-api/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"dine_in", "takeaway"} {
		k, err := order.ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, order.Kind(valid), k)
	}

	for _, invalid := range []string{"", "delivery", "DINE_IN", "dine-in"} {
		_, err := order.ParseKind(invalid)
		assert.ErrorIs(t, err, order.ErrInvalidKind, "input %q", invalid)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "done", "paid"} {
		s, err := order.ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, order.Status(valid), s)
	}

	for _, invalid := range []string{"", "cancelled", "Pending"} {
		_, err := order.ParseStatus(invalid)
		assert.ErrorIs(t, err, order.ErrInvalidStatus, "input %q", invalid)
	}
}

func TestStatusReleasesTable(t *testing.T) {
	assert.False(t, order.StatusPending.ReleasesTable())
	assert.True(t, order.StatusDone.ReleasesTable())
	assert.True(t, order.StatusPaid.ReleasesTable())
}
