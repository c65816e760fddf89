package repository

import (
	"context"

	"resto-api/internal/domain/table"
	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type TableRepository struct{}

func NewTableRepository() shared.TableRepository {
	return &TableRepository{}
}

func (r *TableRepository) Create(ctx context.Context, tx db.DBTX, t *table.Table) (uuid.UUID, error) {
	const q = `
		INSERT INTO dining_tables (id, name, occupied)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	if err := tx.QueryRow(ctx, q, t.ID(), t.Name(), t.IsOccupied()).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create table", err)
	}
	return id, nil
}

func (r *TableRepository) Update(ctx context.Context, tx db.DBTX, t *table.Table) error {
	const q = `
		UPDATE dining_tables
		SET name = $2, occupied = $3, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, t.ID(), t.Name(), t.IsOccupied())
	if err != nil {
		return infra.WrapRepoErr("failed to update table", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TableRepository) SetOccupied(ctx context.Context, tx db.DBTX, id uuid.UUID, occupied bool) error {
	const q = `
		UPDATE dining_tables
		SET occupied = $2, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id, occupied)
	if err != nil {
		return infra.WrapRepoErr("failed to set table occupancy", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const q = `DELETE FROM dining_tables WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete table", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}
