package commands

import (
	"context"
	"time"

	domtable "resto-api/internal/domain/table"
	"resto-api/internal/infra"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/pkg/patch"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Name string
}

// UpdateTableRequest is a patch: nil fields keep the current value.
type UpdateTableRequest struct {
	Name     *string
	Occupied *bool
}

type CreateTableResult struct {
	TableID uuid.UUID
}

type TableCommands interface {
	Create(ctx context.Context, req CreateTableRequest) (*CreateTableResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTableRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Occupy is the guarded Free → Occupied transition.
	Occupy(ctx context.Context, id uuid.UUID) error
	// Release is idempotent: releasing a free table succeeds.
	Release(ctx context.Context, id uuid.UUID) error
}

type tableUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewTableUseCase(uow shared.UnitOfWork) TableCommands {
	return &tableUseCaseImpl{uow: uow}
}

func (uc *tableUseCaseImpl) Create(ctx context.Context, req CreateTableRequest) (*CreateTableResult, error) {
	t, err := domtable.NewTable(req.Name)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidationFailed)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Tables().Create(ctx, tx.DB(), t)
		if derr != nil {
			return markTableErr(derr)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateTableResult{TableID: createdID}, nil
}

func (uc *tableUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req UpdateTableRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().TableByIDForUpdate(ctx, id)
		if err != nil {
			return markTableErr(err)
		}

		agg := domtable.ReconstructTable(snap.ID, snap.Name, snap.Occupied, time.Time{}, time.Time{})
		if req.Name != nil {
			if err := agg.Rename(*req.Name); err != nil {
				return errs.Mark(err, errs.ErrValidationFailed)
			}
		}
		if patch.Changed(req.Occupied, agg.IsOccupied()) {
			if *req.Occupied {
				if err := agg.Occupy(); err != nil {
					return errs.Mark(err, errs.ErrTableOccupied)
				}
			} else {
				agg.Release()
			}
		}

		if err := tx.Tables().Update(ctx, tx.DB(), agg); err != nil {
			return markTableErr(err)
		}
		return nil
	})
}

func (uc *tableUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().TableByIDForUpdate(ctx, id); err != nil {
			return markTableErr(err)
		}

		refs, err := tx.Reads().TableReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs.Orders > 0 || refs.Reservations > 0 {
			return errs.ErrTableInUse
		}

		if err := tx.Tables().Delete(ctx, tx.DB(), id); err != nil {
			return markTableErr(err)
		}
		return nil
	})
}

func (uc *tableUseCaseImpl) Occupy(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().TableByIDForUpdate(ctx, id)
		if err != nil {
			return markTableErr(err)
		}
		if snap.Occupied {
			return errs.ErrTableOccupied
		}
		return tx.Tables().SetOccupied(ctx, tx.DB(), id, true)
	})
}

func (uc *tableUseCaseImpl) Release(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().TableByIDForUpdate(ctx, id); err != nil {
			return markTableErr(err)
		}
		return tx.Tables().SetOccupied(ctx, tx.DB(), id, false)
	})
}

func markTableErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrTableNotFound)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrTableNameTaken)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrTableInUse)
	default:
		return err
	}
}
