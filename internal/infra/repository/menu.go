package repository

import (
	"context"

	"resto-api/internal/domain/menu"
	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type MenuRepository struct{}

func NewMenuRepository() shared.MenuRepository {
	return &MenuRepository{}
}

func (r *MenuRepository) Create(ctx context.Context, tx db.DBTX, item *menu.Item) (uuid.UUID, error) {
	const q = `
		INSERT INTO menu_items (id, name, unit_price_cents)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, q, item.ID(), item.Name(), item.UnitPriceCents()).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create menu item", err)
	}
	return id, nil
}

func (r *MenuRepository) Update(ctx context.Context, tx db.DBTX, item *menu.Item) error {
	const q = `
		UPDATE menu_items
		SET name = $2, unit_price_cents = $3, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, item.ID(), item.Name(), item.UnitPriceCents())
	if err != nil {
		return infra.WrapRepoErr("failed to update menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("menu item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const q = `DELETE FROM menu_items WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("menu item not found", nil, infra.KindNotFound)
	}
	return nil
}
