package readstore

import (
	"context"
	"time"

	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/pkg/pgconv"
	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableReadStore struct {
	db db.DBTX
}

func NewTableReadStore(dbtx db.DBTX) *TableReadStore {
	return &TableReadStore{db: dbtx}
}

func (r *TableReadStore) FindAll(ctx context.Context, at time.Time) ([]*queries.TableView, error) {
	const q = `
		SELECT t.id, t.name, t.occupied, t.created_at, t.updated_at,
		       (SELECT count(*) FROM reservations r WHERE r.table_id = t.id AND r.ends_at > $1)
		FROM dining_tables t
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()

	var views []*queries.TableView
	for rows.Next() {
		var v queries.TableView
		if err := rows.Scan(&v.ID, &v.Name, &v.Occupied, &v.CreatedAt, &v.UpdatedAt, &v.ReservationCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tables", err)
	}
	return views, nil
}

func (r *TableReadStore) FindByID(ctx context.Context, id uuid.UUID, at time.Time) (*queries.TableDetailView, error) {
	const q = `
		SELECT t.id, t.name, t.occupied, t.created_at, t.updated_at,
		       (SELECT count(*) FROM reservations r WHERE r.table_id = t.id AND r.ends_at > $2)
		FROM dining_tables t
		WHERE t.id = $1`

	var v queries.TableDetailView
	err := r.db.QueryRow(ctx, q, id, at).Scan(
		&v.ID, &v.Name, &v.Occupied, &v.CreatedAt, &v.UpdatedAt, &v.ReservationCount,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("table not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find table by ID", err)
	}

	covering, err := r.coveringReservations(ctx, id, at)
	if err != nil {
		return nil, err
	}
	v.Reservations = covering
	return &v, nil
}

func (r *TableReadStore) coveringReservations(ctx context.Context, tableID uuid.UUID, at time.Time) ([]*queries.ReservationView, error) {
	const q = `
		SELECT r.id, r.table_id, t.name, r.client_name, r.starts_at, r.ends_at, r.created_at, r.updated_at
		FROM reservations r
		JOIN dining_tables t ON t.id = r.table_id
		WHERE r.table_id = $1 AND r.starts_at <= $2 AND $2 < r.ends_at
		ORDER BY r.starts_at`

	rows, err := r.db.Query(ctx, q, tableID, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list covering reservations", err)
	}
	defer rows.Close()

	views, err := scanReservationViews(rows)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*queries.ReservationView{}
	}
	return views, nil
}

func (r *TableReadStore) FindOverlapping(ctx context.Context, from, to time.Time) ([]*queries.TableAvailabilityView, error) {
	const q = `
		SELECT t.id, t.name, t.occupied
		FROM dining_tables t
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tables", err)
	}
	defer rows.Close()

	var views []*queries.TableAvailabilityView
	var ids []uuid.UUID
	for rows.Next() {
		var v queries.TableAvailabilityView
		if err := rows.Scan(&v.ID, &v.Name, &v.Occupied); err != nil {
			return nil, infra.WrapRepoErr("failed to scan table", err)
		}
		v.Reservations = []*queries.ReservationView{}
		views = append(views, &v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read tables", err)
	}
	if len(views) == 0 {
		return views, nil
	}

	overlapping, err := r.reservationsForTables(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if res, ok := overlapping[v.ID]; ok {
			v.Reservations = res
		}
	}
	return views, nil
}

// reservationsForTables returns, per table, the reservations overlapping the
// half-open window [from, to).
func (r *TableReadStore) reservationsForTables(ctx context.Context, tableIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID][]*queries.ReservationView, error) {
	const q = `
		SELECT r.id, r.table_id, t.name, r.client_name, r.starts_at, r.ends_at, r.created_at, r.updated_at
		FROM reservations r
		JOIN dining_tables t ON t.id = r.table_id
		WHERE r.table_id = ANY($1) AND r.starts_at < $3 AND $2 < r.ends_at
		ORDER BY r.starts_at`

	rows, err := r.db.Query(ctx, q, tableIDs, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping reservations", err)
	}
	defer rows.Close()

	views, err := scanReservationViews(rows)
	if err != nil {
		return nil, err
	}

	byTable := make(map[uuid.UUID][]*queries.ReservationView)
	for _, v := range views {
		byTable[v.TableID] = append(byTable[v.TableID], v)
	}
	return byTable, nil
}
