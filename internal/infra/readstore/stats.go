package readstore

import (
	"context"
	"time"

	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/usecase/queries"
)

// StatsReadStore computes revenue figures from order lines, never from the
// stored totals, so the numbers stay consistent with the snapshots.
type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(dbtx db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: dbtx}
}

func (r *StatsReadStore) TotalRevenue(ctx context.Context) (int64, error) {
	const q = `
		SELECT COALESCE(sum(l.quantity * l.unit_price_cents), 0)::bigint
		FROM order_lines l`

	var total int64
	if err := r.db.QueryRow(ctx, q).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to compute total revenue", err)
	}
	return total, nil
}

func (r *StatsReadStore) MonthlyRevenue(ctx context.Context, since time.Time) ([]*queries.MonthlyRevenuePoint, error) {
	const q = `
		SELECT to_char(date_trunc('month', o.placed_at), 'YYYY-MM'),
		       count(DISTINCT o.id)::bigint,
		       COALESCE(sum(l.quantity * l.unit_price_cents), 0)::bigint
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		WHERE o.placed_at >= $1
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.db.Query(ctx, q, since)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute monthly revenue", err)
	}
	defer rows.Close()

	var points []*queries.MonthlyRevenuePoint
	for rows.Next() {
		var p queries.MonthlyRevenuePoint
		if err := rows.Scan(&p.Month, &p.OrderCount, &p.RevenueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan monthly revenue", err)
		}
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read monthly revenue", err)
	}
	return points, nil
}

func (r *StatsReadStore) TopItems(ctx context.Context, limit int32) ([]*queries.TopItemStat, error) {
	const q = `
		SELECT m.name, sum(l.quantity)::bigint,
		       sum(l.quantity * l.unit_price_cents)::bigint
		FROM order_lines l
		JOIN menu_items m ON m.id = l.menu_item_id
		GROUP BY m.name
		ORDER BY sum(l.quantity) DESC, m.name
		LIMIT $1`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute top items", err)
	}
	defer rows.Close()

	var stats []*queries.TopItemStat
	for rows.Next() {
		var s queries.TopItemStat
		if err := rows.Scan(&s.Name, &s.UnitsSold, &s.RevenueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan top item", err)
		}
		stats = append(stats, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read top items", err)
	}
	return stats, nil
}

func (r *StatsReadStore) RevenueByKind(ctx context.Context) ([]*queries.KindStat, error) {
	const q = `
		SELECT o.kind, count(DISTINCT o.id)::bigint,
		       COALESCE(sum(l.quantity * l.unit_price_cents), 0)::bigint
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		GROUP BY o.kind
		ORDER BY o.kind`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute revenue by kind", err)
	}
	defer rows.Close()

	var stats []*queries.KindStat
	for rows.Next() {
		var s queries.KindStat
		if err := rows.Scan(&s.Kind, &s.OrderCount, &s.RevenueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan kind stat", err)
		}
		stats = append(stats, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read kind stats", err)
	}
	return stats, nil
}

func (r *StatsReadStore) RevenueByWeekday(ctx context.Context) (map[int]*queries.WeekdayStat, error) {
	const q = `
		SELECT EXTRACT(DOW FROM o.placed_at)::int,
		       count(DISTINCT o.id)::bigint,
		       COALESCE(sum(l.quantity * l.unit_price_cents), 0)::bigint
		FROM orders o
		JOIN order_lines l ON l.order_id = o.id
		GROUP BY 1`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute revenue by weekday", err)
	}
	defer rows.Close()

	stats := make(map[int]*queries.WeekdayStat)
	for rows.Next() {
		var (
			dow int
			s   queries.WeekdayStat
		)
		if err := rows.Scan(&dow, &s.OrderCount, &s.RevenueCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan weekday stat", err)
		}
		s.Weekday = time.Weekday(dow).String()
		stats[dow] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read weekday stats", err)
	}
	return stats, nil
}
