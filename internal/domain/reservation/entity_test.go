//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"resto-api/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	window, err := reservation.NewWindow(start, nil)
	require.NoError(t, err)

	t.Run("generates an ID when none is given", func(t *testing.T) {
		r, err := reservation.NewReservation(nil, uuid.New(), "Alice", window)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, "Alice", r.ClientName())
	})

	t.Run("keeps the caller's ID for upsert", func(t *testing.T) {
		id := uuid.New()
		r, err := reservation.NewReservation(&id, uuid.New(), "Alice", window)
		require.NoError(t, err)

		assert.Equal(t, id, r.ID())
	})

	t.Run("trims the client name", func(t *testing.T) {
		r, err := reservation.NewReservation(nil, uuid.New(), "  Alice  ", window)
		require.NoError(t, err)

		assert.Equal(t, "Alice", r.ClientName())
	})

	t.Run("rejects an empty client name", func(t *testing.T) {
		_, err := reservation.NewReservation(nil, uuid.New(), "   ", window)
		assert.ErrorIs(t, err, reservation.ErrEmptyClientName)
	})
}

func TestBlocksSeating(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	window, err := reservation.NewWindow(start, nil)
	require.NoError(t, err)

	r, err := reservation.NewReservation(nil, uuid.New(), "Alice", window)
	require.NoError(t, err)

	inside := start.Add(time.Hour)
	outside := start.Add(3 * time.Hour)

	assert.True(t, r.BlocksSeating("Bob", inside), "another client is blocked during the window")
	assert.False(t, r.BlocksSeating("Alice", inside), "the holder may seat into their own window")
	assert.False(t, r.BlocksSeating("Alice  ", inside), "holder match tolerates surrounding whitespace")
	assert.False(t, r.BlocksSeating("Bob", outside), "nobody is blocked outside the window")
	assert.False(t, r.BlocksSeating("Bob", window.End()), "the window end itself is not covered")
}
