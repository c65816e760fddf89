package repository

import (
	"context"

	"resto-api/internal/domain/reservation"
	"resto-api/internal/infra"
	"resto-api/internal/infra/db"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() shared.ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Upsert(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	const q = `
		INSERT INTO reservations (id, table_id, client_name, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET table_id = EXCLUDED.table_id,
		    client_name = EXCLUDED.client_name,
		    starts_at = EXCLUDED.starts_at,
		    ends_at = EXCLUDED.ends_at,
		    updated_at = now()
		RETURNING id`

	w := res.Window()

	var id uuid.UUID
	err := tx.QueryRow(ctx, q, res.ID(), res.TableID(), res.ClientName(), w.Start(), w.End()).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to upsert reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const q = `DELETE FROM reservations WHERE id = $1`

	tag, err := tx.Exec(ctx, q, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
