package readstore

import (
	"context"

	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/pkg/pgconv"
	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

const orderViewColumns = `
	o.id, o.client_name, o.kind, o.table_id, t.name, o.status,
	o.total_cents, o.placed_at, o.created_at, o.updated_at`

func (r *OrderReadStore) FindAll(ctx context.Context, filter queries.OrderFilter) ([]*queries.OrderView, error) {
	const q = `
		SELECT ` + orderViewColumns + `
		FROM orders o
		LEFT JOIN dining_tables t ON t.id = o.table_id
		WHERE ($1::timestamptz IS NULL OR o.placed_at >= $1)
		  AND ($2::timestamptz IS NULL OR o.placed_at < $2)
		ORDER BY o.placed_at DESC`

	rows, err := r.db.Query(ctx, q,
		pgconv.TimePtrToPgtype(filter.From), pgconv.TimePtrToPgtype(filter.To))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	return r.collectOrders(ctx, rows)
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const q = `
		SELECT ` + orderViewColumns + `
		FROM orders o
		LEFT JOIN dining_tables t ON t.id = o.table_id
		WHERE o.id = $1`

	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	views, err := r.collectOrders(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, infra.WrapRepoErr("order not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return views[0], nil
}

func (r *OrderReadStore) FindByClient(ctx context.Context, name string, partial bool) ([]*queries.OrderView, error) {
	const exact = `
		SELECT ` + orderViewColumns + `
		FROM orders o
		LEFT JOIN dining_tables t ON t.id = o.table_id
		WHERE o.client_name = $1
		ORDER BY o.placed_at DESC`
	const fuzzy = `
		SELECT ` + orderViewColumns + `
		FROM orders o
		LEFT JOIN dining_tables t ON t.id = o.table_id
		WHERE o.client_name ILIKE '%' || $1 || '%'
		ORDER BY o.placed_at DESC`

	q := exact
	if partial {
		q = fuzzy
	}

	rows, err := r.db.Query(ctx, q, name)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by client", err)
	}
	return r.collectOrders(ctx, rows)
}

func (r *OrderReadStore) collectOrders(ctx context.Context, rows pgx.Rows) ([]*queries.OrderView, error) {
	defer rows.Close()

	var views []*queries.OrderView
	var ids []uuid.UUID
	for rows.Next() {
		var (
			v       queries.OrderView
			tableID pgtype.UUID
			name    pgtype.Text
		)
		if err := rows.Scan(
			&v.ID, &v.ClientName, &v.Kind, &tableID, &name, &v.Status,
			&v.TotalCents, &v.PlacedAt, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		v.TableID = pgconv.UUIDPtrFromPgtype(tableID)
		v.TableName = pgconv.StringPtrFromPgtype(name)
		v.Lines = []*queries.OrderLineView{}
		views = append(views, &v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read orders", err)
	}
	if len(views) == 0 {
		return views, nil
	}

	if err := r.attachLines(ctx, ids, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *OrderReadStore) attachLines(ctx context.Context, ids []uuid.UUID, views []*queries.OrderView) error {
	const q = `
		SELECT l.order_id, l.menu_item_id, m.name, l.quantity, l.unit_price_cents
		FROM order_lines l
		JOIN menu_items m ON m.id = l.menu_item_id
		WHERE l.order_id = ANY($1)
		ORDER BY m.name`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to list order lines", err)
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]*queries.OrderLineView, len(views))
	for rows.Next() {
		var (
			orderID uuid.UUID
			line    queries.OrderLineView
		)
		if err := rows.Scan(&orderID, &line.MenuItemID, &line.Name, &line.Quantity, &line.UnitPriceCents); err != nil {
			return infra.WrapRepoErr("failed to scan order line", err)
		}
		line.SubtotalCents = int64(line.Quantity) * line.UnitPriceCents
		byOrder[orderID] = append(byOrder[orderID], &line)
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read order lines", err)
	}

	for _, v := range views {
		if lines, ok := byOrder[v.ID]; ok {
			v.Lines = lines
		}
	}
	return nil
}
