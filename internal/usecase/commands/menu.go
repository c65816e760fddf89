package commands

import (
	"context"
	"time"

	dommenu "resto-api/internal/domain/menu"
	"resto-api/internal/infra"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/pkg/patch"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	Name           string
	UnitPriceCents int64
}

type UpdateMenuItemRequest struct {
	Name           *string
	UnitPriceCents *int64
}

type CreateMenuItemResult struct {
	MenuItemID uuid.UUID
}

type MenuCommands interface {
	Create(ctx context.Context, req CreateMenuItemRequest) (*CreateMenuItemResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) error
	// Delete refuses while any order line references the item; the snapshots
	// on past lines stay untouched either way.
	Delete(ctx context.Context, id uuid.UUID) error
}

type menuUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewMenuUseCase(uow shared.UnitOfWork) MenuCommands {
	return &menuUseCaseImpl{uow: uow}
}

func (uc *menuUseCaseImpl) Create(ctx context.Context, req CreateMenuItemRequest) (*CreateMenuItemResult, error) {
	item, err := dommenu.NewItem(req.Name, req.UnitPriceCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidationFailed)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Menu().Create(ctx, tx.DB(), item)
		if derr != nil {
			return markMenuErr(derr)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateMenuItemResult{MenuItemID: createdID}, nil
}

func (uc *menuUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().MenuItemByID(ctx, id)
		if err != nil {
			return markMenuErr(err)
		}

		name := patch.Coalesce(req.Name, snap.Name)
		price := patch.Coalesce(req.UnitPriceCents, snap.UnitPriceCents)

		item := dommenu.ReconstructItem(snap.ID, snap.Name, snap.UnitPriceCents, time.Time{}, time.Time{})
		if err := item.Update(name, price); err != nil {
			return errs.Mark(err, errs.ErrValidationFailed)
		}

		if err := tx.Menu().Update(ctx, tx.DB(), item); err != nil {
			return markMenuErr(err)
		}
		return nil
	})
}

func (uc *menuUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().MenuItemByID(ctx, id); err != nil {
			return markMenuErr(err)
		}

		count, err := tx.Reads().MenuItemLineCount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return errs.ErrMenuItemInUse
		}

		if err := tx.Menu().Delete(ctx, tx.DB(), id); err != nil {
			return markMenuErr(err)
		}
		return nil
	})
}

func markMenuErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrMenuItemNotFound)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrMenuItemInUse)
	default:
		return err
	}
}
