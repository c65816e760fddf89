package commands

import (
	"context"
	"errors"
	"time"

	domorder "resto-api/internal/domain/order"
	domres "resto-api/internal/domain/reservation"
	"resto-api/internal/infra"
	"resto-api/internal/pkg/clock"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/pkg/patch"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderLineRequest struct {
	MenuItemID uuid.UUID
	Quantity   int32
}

type CreateOrderRequest struct {
	ClientName string
	Kind       string
	TableID    *uuid.UUID
	Lines      []OrderLineRequest
}

// PatchOrderRequest mutates the order header. A nil field keeps the current
// value; switching kind to takeaway drops the table binding.
type PatchOrderRequest struct {
	ClientName *string
	Kind       *string
	TableID    *uuid.UUID
	Status     *string
}

type CreateOrderResult struct {
	OrderID    uuid.UUID
	TotalCents int64
}

type OrderCommands interface {
	Create(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error)
	Update(ctx context.Context, id uuid.UUID, req PatchOrderRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewOrderUseCase(uow shared.UnitOfWork, clk clock.Clock) OrderCommands {
	return &orderUseCaseImpl{uow: uow, clock: clk}
}

func (uc *orderUseCaseImpl) Create(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	kind, err := domorder.ParseKind(req.Kind)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidKind)
	}
	if len(req.Lines) == 0 {
		return nil, errs.ErrEmptyOrder
	}

	now := uc.clock.Now()

	var result CreateOrderResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lines, derr := uc.resolveLines(ctx, tx, req.Lines)
		if derr != nil {
			return derr
		}

		o, derr := domorder.NewOrder(req.ClientName, kind, req.TableID, lines, now)
		if derr != nil {
			if errors.Is(derr, domorder.ErrTableRequired) {
				return errs.Mark(derr, errs.ErrTableRequired)
			}
			return errs.Mark(derr, errs.ErrValidationFailed)
		}

		if o.HoldsTable() {
			if derr = uc.seatAtTable(ctx, tx, *o.TableID(), o.ClientName(), now); derr != nil {
				return derr
			}
		}

		id, derr := tx.Orders().Create(ctx, tx.DB(), o)
		if derr != nil {
			return markOrderErr(derr)
		}
		result = CreateOrderResult{OrderID: id, TotalCents: o.Total().Cents()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *orderUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req PatchOrderRequest) error {
	now := uc.clock.Now()

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OrderByID(ctx, id)
		if err != nil {
			return markOrderErr(err)
		}

		kind := snap.Kind
		if req.Kind != nil {
			if kind, err = domorder.ParseKind(*req.Kind); err != nil {
				return errs.Mark(err, errs.ErrInvalidKind)
			}
		}
		status := snap.Status
		if req.Status != nil {
			if status, err = domorder.ParseStatus(*req.Status); err != nil {
				return errs.Mark(err, errs.ErrInvalidStatus)
			}
		}
		clientName := patch.Coalesce(req.ClientName, snap.ClientName)

		tableID := snap.TableID
		if req.TableID != nil {
			tableID = req.TableID
		}
		if kind == domorder.KindTakeaway {
			tableID = nil
		}
		if kind == domorder.KindDineIn && tableID == nil {
			return errs.ErrTableRequired
		}

		wasHolding := holdsTable(snap.Kind, snap.TableID, snap.Status)
		nowHolding := holdsTable(kind, tableID, status)
		sameTable := wasHolding && nowHolding && *snap.TableID == *tableID

		if wasHolding && !sameTable {
			if err = uc.releaseTable(ctx, tx, *snap.TableID); err != nil {
				return err
			}
		}
		if nowHolding && !sameTable {
			if err = uc.seatAtTable(ctx, tx, *tableID, clientName, now); err != nil {
				return err
			}
		}

		if err = tx.Orders().UpdateHeader(ctx, tx.DB(), id, clientName, kind, tableID, status); err != nil {
			return markOrderErr(err)
		}
		return nil
	})
}

func (uc *orderUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().OrderByID(ctx, id)
		if err != nil {
			return markOrderErr(err)
		}

		if holdsTable(snap.Kind, snap.TableID, snap.Status) {
			if err = uc.releaseTable(ctx, tx, *snap.TableID); err != nil {
				return err
			}
		}

		if err = tx.Orders().Delete(ctx, tx.DB(), id); err != nil {
			return markOrderErr(err)
		}
		return nil
	})
}

// resolveLines snapshots the current menu prices onto the order lines.
// Request lines naming the same item are merged first, since an order holds
// one line per menu item.
func (uc *orderUseCaseImpl) resolveLines(ctx context.Context, tx shared.Tx, reqs []OrderLineRequest) ([]domorder.Line, error) {
	merged := make([]OrderLineRequest, 0, len(reqs))
	index := make(map[uuid.UUID]int, len(reqs))
	for _, lr := range reqs {
		if i, ok := index[lr.MenuItemID]; ok {
			merged[i].Quantity += lr.Quantity
			continue
		}
		index[lr.MenuItemID] = len(merged)
		merged = append(merged, lr)
	}

	lines := make([]domorder.Line, 0, len(merged))
	for _, lr := range merged {
		item, err := tx.Reads().MenuItemByID(ctx, lr.MenuItemID)
		if err != nil {
			return nil, markMenuErr(err)
		}
		line, err := domorder.NewLine(item.ID, lr.Quantity, domorder.NewMoney(item.UnitPriceCents))
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidLine)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// seatAtTable runs the occupancy guard with the table row locked: the table
// must exist, be free, and have no covering reservation held by someone else.
// On success the table flips to occupied within the same transaction.
func (uc *orderUseCaseImpl) seatAtTable(ctx context.Context, tx shared.Tx, tableID uuid.UUID, clientName string, now time.Time) error {
	snap, err := tx.Reads().TableByIDForUpdate(ctx, tableID)
	if err != nil {
		return markTableErr(err)
	}
	if snap.Occupied {
		return errs.ErrTableOccupied
	}

	covering, err := tx.Reads().ReservationsCovering(ctx, tableID, now)
	if err != nil {
		return err
	}
	for _, rs := range covering {
		window, werr := domres.NewWindow(rs.StartsAt, &rs.EndsAt)
		if werr != nil {
			return werr
		}
		res := domres.ReconstructReservation(rs.ID, rs.TableID, rs.ClientName, window, time.Time{}, time.Time{})
		if res.BlocksSeating(clientName, now) {
			return errs.ErrTableReserved
		}
	}

	return tx.Tables().SetOccupied(ctx, tx.DB(), tableID, true)
}

func (uc *orderUseCaseImpl) releaseTable(ctx context.Context, tx shared.Tx, tableID uuid.UUID) error {
	if _, err := tx.Reads().TableByIDForUpdate(ctx, tableID); err != nil {
		return markTableErr(err)
	}
	return tx.Tables().SetOccupied(ctx, tx.DB(), tableID, false)
}

// holdsTable mirrors the binding rule: only a pending dine-in order keeps its
// table occupied. done and paid orders retain table_id for history only.
func holdsTable(kind domorder.Kind, tableID *uuid.UUID, status domorder.Status) bool {
	return kind == domorder.KindDineIn && tableID != nil && !status.ReleasesTable()
}

func markOrderErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrOrderNotFound)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrTableNotFound)
	default:
		return err
	}
}
