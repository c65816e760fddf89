//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestTable(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO dining_tables (id, name) VALUES ($1, $2)", id, name)
	require.NoError(t, err)
	return id
}

func CreateTestMenuItem(t *testing.T, db DBLike, name string, unitPriceCents int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO menu_items (id, name, unit_price_cents) VALUES ($1, $2, $3)",
		id, name, unitPriceCents)
	require.NoError(t, err)
	return id
}

func CreateTestReservation(t *testing.T, db DBLike, tableID uuid.UUID, clientName string, startsAt, endsAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reservations (id, table_id, client_name, starts_at, ends_at) VALUES ($1, $2, $3, $4, $5)",
		id, tableID, clientName, startsAt, endsAt)
	require.NoError(t, err)
	return id
}

func TableOccupied(t *testing.T, db DBLike, tableID uuid.UUID) bool {
	t.Helper()

	var occupied bool
	err := db.QueryRow(context.Background(),
		"SELECT occupied FROM dining_tables WHERE id = $1", tableID).Scan(&occupied)
	require.NoError(t, err)
	return occupied
}

func OrderStatus(t *testing.T, db DBLike, orderID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	require.NoError(t, err)
	return status
}

// ResetDB wipes all rows between subtests. TRUNCATE ... CASCADE keeps the
// order cheap regardless of foreign keys.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx,
		"TRUNCATE order_lines, orders, reservations, menu_items, dining_tables CASCADE")
	return err
}
