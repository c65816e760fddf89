package commands

import (
	"context"
	"time"

	domres "resto-api/internal/domain/reservation"
	"resto-api/internal/infra"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/pkg/patch"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// UpsertReservationRequest creates a reservation, or replaces the record when
// ID is present. EndsAt left nil books the default two-hour window.
type UpsertReservationRequest struct {
	ID         *uuid.UUID
	TableID    uuid.UUID
	ClientName string
	StartsAt   time.Time
	EndsAt     *time.Time
}

type PatchReservationRequest struct {
	TableID    *uuid.UUID
	ClientName *string
	StartsAt   *time.Time
	EndsAt     *time.Time
}

type UpsertReservationResult struct {
	ReservationID uuid.UUID
}

type ReservationCommands interface {
	Upsert(ctx context.Context, req UpsertReservationRequest) (*UpsertReservationResult, error)
	Update(ctx context.Context, id uuid.UUID, req PatchReservationRequest) error
	// Delete removes the reservation only; table occupancy is a separate
	// axis and never changes here.
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewReservationUseCase(uow shared.UnitOfWork) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow}
}

func (uc *reservationUseCaseImpl) Upsert(ctx context.Context, req UpsertReservationRequest) (*UpsertReservationResult, error) {
	// The default end is applied before validation and conflict checking.
	window, err := domres.NewWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	res, err := domres.NewReservation(req.ID, req.TableID, req.ClientName, window)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidationFailed)
	}

	var storedID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := uc.store(ctx, tx, res)
		if derr != nil {
			return derr
		}
		storedID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpsertReservationResult{ReservationID: storedID}, nil
}

func (uc *reservationUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req PatchReservationRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return markReservationErr(err)
		}

		startsAt := patch.Coalesce(req.StartsAt, snap.StartsAt)
		endsAt := patch.Coalesce(req.EndsAt, snap.EndsAt)
		window, err := domres.NewWindow(startsAt, &endsAt)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidWindow)
		}

		tableID := patch.Coalesce(req.TableID, snap.TableID)
		clientName := patch.Coalesce(req.ClientName, snap.ClientName)
		res, err := domres.NewReservation(&id, tableID, clientName, window)
		if err != nil {
			return errs.Mark(err, errs.ErrValidationFailed)
		}

		_, err = uc.store(ctx, tx, res)
		return err
	})
}

func (uc *reservationUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ReservationByID(ctx, id); err != nil {
			return markReservationErr(err)
		}
		if err := tx.Reservations().Delete(ctx, tx.DB(), id); err != nil {
			return markReservationErr(err)
		}
		return nil
	})
}

// store runs the conflict check and writes the reservation. Locking the table
// row first serializes concurrent bookings on the same table; the exclusion
// constraint backstops anything that slips through.
func (uc *reservationUseCaseImpl) store(ctx context.Context, tx shared.Tx, res *domres.Reservation) (uuid.UUID, error) {
	if _, err := tx.Reads().TableByIDForUpdate(ctx, res.TableID()); err != nil {
		return uuid.Nil, markTableErr(err)
	}

	w := res.Window()
	conflict, err := tx.Reads().OverlapExists(ctx, res.TableID(), w.Start(), w.End(), res.ID())
	if err != nil {
		return uuid.Nil, err
	}
	if conflict {
		return uuid.Nil, errs.ErrReservationConflict
	}

	id, err := tx.Reservations().Upsert(ctx, tx.DB(), res)
	if err != nil {
		return uuid.Nil, markReservationErr(err)
	}
	return id, nil
}

func markReservationErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrReservationNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrReservationConflict)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrTableNotFound)
	default:
		return err
	}
}
