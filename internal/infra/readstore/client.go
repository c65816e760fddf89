package readstore

import (
	"context"

	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/pkg/pgconv"
	"resto-api/internal/usecase/queries"
)

// ClientReadStore aggregates clients from orders; there is no client table.
type ClientReadStore struct {
	db db.DBTX
}

func NewClientReadStore(dbtx db.DBTX) *ClientReadStore {
	return &ClientReadStore{db: dbtx}
}

func (r *ClientReadStore) FindAll(ctx context.Context, filter queries.ClientFilter) ([]*queries.ClientView, error) {
	const q = `
		SELECT o.client_name, count(*)::bigint, max(o.placed_at),
		       COALESCE(sum(o.total_cents), 0)::bigint
		FROM orders o
		WHERE ($1::timestamptz IS NULL OR o.placed_at >= $1)
		  AND ($2::timestamptz IS NULL OR o.placed_at < $2)
		GROUP BY o.client_name
		ORDER BY max(o.placed_at) DESC`

	rows, err := r.db.Query(ctx, q,
		pgconv.TimePtrToPgtype(filter.From), pgconv.TimePtrToPgtype(filter.To))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list clients", err)
	}
	defer rows.Close()

	var views []*queries.ClientView
	for rows.Next() {
		var v queries.ClientView
		if err := rows.Scan(&v.Name, &v.OrderCount, &v.LastVisit, &v.TotalSpentCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan client", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read clients", err)
	}
	return views, nil
}

func (r *ClientReadStore) SearchByName(ctx context.Context, term string) ([]*queries.ClientSearchView, error) {
	const q = `
		SELECT o.client_name, count(*)::bigint, max(o.placed_at),
		       COALESCE(sum(o.total_cents), 0)::bigint,
		       (SELECT count(*) FROM reservations r WHERE r.client_name = o.client_name)
		FROM orders o
		WHERE o.client_name ILIKE '%' || $1 || '%'
		GROUP BY o.client_name
		ORDER BY o.client_name`

	rows, err := r.db.Query(ctx, q, term)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search clients", err)
	}
	defer rows.Close()

	var views []*queries.ClientSearchView
	for rows.Next() {
		var v queries.ClientSearchView
		if err := rows.Scan(&v.Name, &v.OrderCount, &v.LastVisit, &v.TotalSpentCents, &v.ReservationCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan client", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read clients", err)
	}
	return views, nil
}
