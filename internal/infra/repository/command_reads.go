package repository

import (
	"context"
	"time"

	"resto-api/internal/domain/order"
	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/pkg/pgconv"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the small lookups command handlers need before writing.
// It is bound to a DBTX at construction so the same reads run against the
// pool or inside a transaction.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) TableByID(ctx context.Context, id uuid.UUID) (*shared.TableSnapshot, error) {
	const q = `SELECT id, name, occupied FROM dining_tables WHERE id = $1`
	return r.scanTable(ctx, q, id)
}

// TableByIDForUpdate takes the row lock that serializes occupancy decisions.
// Callers must be inside a transaction or the lock is released immediately.
func (r *CommandReads) TableByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.TableSnapshot, error) {
	const q = `SELECT id, name, occupied FROM dining_tables WHERE id = $1 FOR UPDATE`
	return r.scanTable(ctx, q, id)
}

func (r *CommandReads) scanTable(ctx context.Context, q string, id uuid.UUID) (*shared.TableSnapshot, error) {
	var snap shared.TableSnapshot
	err := r.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.Name, &snap.Occupied)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get table", err)
	}
	return &snap, nil
}

func (r *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	const q = `
		SELECT id, table_id, client_name, starts_at, ends_at
		FROM reservations
		WHERE id = $1`

	var snap shared.ReservationSnapshot
	err := r.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.TableID, &snap.ClientName, &snap.StartsAt, &snap.EndsAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation", err)
	}
	return &snap, nil
}

func (r *CommandReads) ReservationsCovering(ctx context.Context, tableID uuid.UUID, at time.Time) ([]shared.ReservationSnapshot, error) {
	// Half-open window: the instant at which a reservation ends is free.
	const q = `
		SELECT id, table_id, client_name, starts_at, ends_at
		FROM reservations
		WHERE table_id = $1 AND starts_at <= $2 AND $2 < ends_at
		ORDER BY starts_at`

	rows, err := r.db.Query(ctx, q, tableID, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list covering reservations", err)
	}
	defer rows.Close()

	var snaps []shared.ReservationSnapshot
	for rows.Next() {
		var snap shared.ReservationSnapshot
		if err := rows.Scan(&snap.ID, &snap.TableID, &snap.ClientName, &snap.StartsAt, &snap.EndsAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return snaps, nil
}

func (r *CommandReads) OverlapExists(ctx context.Context, tableID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE table_id = $1 AND id <> $4
			  AND starts_at < $3 AND $2 < ends_at
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, tableID, start, end, excludeID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check reservation overlap", err)
	}
	return exists, nil
}

func (r *CommandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	const q = `
		SELECT id, client_name, kind, table_id, status, total_cents, placed_at
		FROM orders
		WHERE id = $1`

	var (
		snap    shared.OrderSnapshot
		kind    string
		status  string
		tableID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.ClientName, &kind, &tableID, &status, &snap.TotalCents, &snap.PlacedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order", err)
	}

	k, err := order.ParseKind(kind)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order kind in store", err)
	}
	s, err := order.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid order status in store", err)
	}
	snap.Kind = k
	snap.Status = s
	snap.TableID = pgconv.UUIDPtrFromPgtype(tableID)
	return &snap, nil
}

func (r *CommandReads) MenuItemByID(ctx context.Context, id uuid.UUID) (*shared.MenuItemSnapshot, error) {
	const q = `SELECT id, name, unit_price_cents FROM menu_items WHERE id = $1`

	var snap shared.MenuItemSnapshot
	err := r.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.Name, &snap.UnitPriceCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("menu item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get menu item", err)
	}
	return &snap, nil
}

func (r *CommandReads) TableReferences(ctx context.Context, tableID uuid.UUID) (*shared.TableRefCounts, error) {
	const q = `
		SELECT
			(SELECT count(*) FROM orders WHERE table_id = $1),
			(SELECT count(*) FROM reservations WHERE table_id = $1)`

	var counts shared.TableRefCounts
	if err := r.db.QueryRow(ctx, q, tableID).Scan(&counts.Orders, &counts.Reservations); err != nil {
		return nil, infra.WrapRepoErr("failed to count table references", err)
	}
	return &counts, nil
}

func (r *CommandReads) MenuItemLineCount(ctx context.Context, menuItemID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM order_lines WHERE menu_item_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, q, menuItemID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count menu item usage", err)
	}
	return count, nil
}
