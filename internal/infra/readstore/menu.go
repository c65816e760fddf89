package readstore

import (
	"context"

	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/pkg/pgconv"
	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type MenuReadStore struct {
	db db.DBTX
}

func NewMenuReadStore(dbtx db.DBTX) *MenuReadStore {
	return &MenuReadStore{db: dbtx}
}

func (r *MenuReadStore) FindAll(ctx context.Context) ([]*queries.MenuItemView, error) {
	const q = `
		SELECT id, name, unit_price_cents, created_at, updated_at
		FROM menu_items
		ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list menu items", err)
	}
	defer rows.Close()

	var views []*queries.MenuItemView
	for rows.Next() {
		var v queries.MenuItemView
		if err := rows.Scan(&v.ID, &v.Name, &v.UnitPriceCents, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan menu item", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read menu items", err)
	}
	return views, nil
}

func (r *MenuReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MenuItemView, error) {
	const q = `
		SELECT id, name, unit_price_cents, created_at, updated_at
		FROM menu_items
		WHERE id = $1`

	var v queries.MenuItemView
	err := r.db.QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.UnitPriceCents, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("menu item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find menu item by ID", err)
	}
	return &v, nil
}

func (r *MenuReadStore) SearchByName(ctx context.Context, term string) ([]*queries.MenuSearchView, error) {
	const q = `
		SELECT m.id, m.name, m.unit_price_cents, m.created_at, m.updated_at,
		       COALESCE(sum(l.quantity), 0)::bigint
		FROM menu_items m
		LEFT JOIN order_lines l ON l.menu_item_id = m.id
		WHERE m.name ILIKE '%' || $1 || '%'
		GROUP BY m.id
		ORDER BY m.name`

	rows, err := r.db.Query(ctx, q, term)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search menu items", err)
	}
	defer rows.Close()

	var views []*queries.MenuSearchView
	for rows.Next() {
		var v queries.MenuSearchView
		if err := rows.Scan(&v.ID, &v.Name, &v.UnitPriceCents, &v.CreatedAt, &v.UpdatedAt, &v.UnitsSold); err != nil {
			return nil, infra.WrapRepoErr("failed to scan menu item", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read menu items", err)
	}
	return views, nil
}
