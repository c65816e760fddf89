package readstore

import (
	"context"
	"time"

	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/pkg/pgconv"
	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindAll(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	const q = `
		SELECT r.id, r.table_id, t.name, r.client_name, r.starts_at, r.ends_at, r.created_at, r.updated_at
		FROM reservations r
		JOIN dining_tables t ON t.id = r.table_id
		WHERE ($1::timestamptz IS NULL OR (r.starts_at < $2 AND r.ends_at > $1))
		  AND ($3::text = '' OR r.client_name ILIKE '%' || $3 || '%')
		ORDER BY r.starts_at`

	var dayStart, dayEnd *time.Time
	if filter.Day != nil {
		d := filter.Day
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		end := start.AddDate(0, 0, 1)
		dayStart, dayEnd = &start, &end
	}

	rows, err := r.db.Query(ctx, q,
		pgconv.TimePtrToPgtype(dayStart), pgconv.TimePtrToPgtype(dayEnd), filter.ClientName)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	return scanReservationViews(rows)
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const q = `
		SELECT r.id, r.table_id, t.name, r.client_name, r.starts_at, r.ends_at, r.created_at, r.updated_at
		FROM reservations r
		JOIN dining_tables t ON t.id = r.table_id
		WHERE r.id = $1`

	var v queries.ReservationView
	err := r.db.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.TableID, &v.TableName, &v.ClientName,
		&v.StartsAt, &v.EndsAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &v, nil
}

func scanReservationViews(rows pgx.Rows) ([]*queries.ReservationView, error) {
	var views []*queries.ReservationView
	for rows.Next() {
		var v queries.ReservationView
		if err := rows.Scan(
			&v.ID, &v.TableID, &v.TableName, &v.ClientName,
			&v.StartsAt, &v.EndsAt, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return views, nil
}
