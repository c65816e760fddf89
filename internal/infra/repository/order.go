package repository

import (
	"context"

	"resto-api/internal/domain/order"
	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() shared.OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	const insertOrder = `
		INSERT INTO orders (id, client_name, kind, table_id, status, total_cents, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, insertOrder,
		o.ID(), o.ClientName(), string(o.Kind()), o.TableID(),
		string(o.Status()), o.Total().Cents(), o.PlacedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	const insertLine = `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4)`

	for _, l := range o.Lines() {
		if _, err := tx.Exec(ctx, insertLine, id, l.MenuItemID(), l.Quantity(), l.UnitPrice().Cents()); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order line", err)
		}
	}

	return id, nil
}

func (r *OrderRepository) UpdateHeader(ctx context.Context, tx db.DBTX, id uuid.UUID, clientName string, kind order.Kind, tableID *uuid.UUID, status order.Status) error {
	const q = `
		UPDATE orders
		SET client_name = $2, kind = $3, table_id = $4, status = $5, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id, clientName, string(kind), tableID, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status) error {
	const q = `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to set order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	// order_lines are removed by ON DELETE CASCADE.
	const q = `DELETE FROM orders WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
