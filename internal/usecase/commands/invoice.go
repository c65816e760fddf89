package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	domorder "resto-api/internal/domain/order"
	"resto-api/internal/pkg/clock"
	"resto-api/internal/pkg/config"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/usecase/queries"
	"resto-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type InvoiceResult struct {
	Filename   string
	Path       string
	TotalCents int64
	PDF        []byte
}

type InvoiceRenderer interface {
	Render(o *queries.OrderView, generatedAt time.Time) ([]byte, error)
}

type InvoiceCommands interface {
	// Generate renders the invoice and, unless the order is already paid,
	// marks it paid and releases its table in one transaction.
	Generate(ctx context.Context, orderID uuid.UUID) (*InvoiceResult, error)
}

type invoiceUseCaseImpl struct {
	uow      shared.UnitOfWork
	orders   queries.OrderQueries
	renderer InvoiceRenderer
	clock    clock.Clock
	cfg      config.InvoiceConfig
}

func NewInvoiceUseCase(
	uow shared.UnitOfWork,
	orders queries.OrderQueries,
	renderer InvoiceRenderer,
	clk clock.Clock,
	cfg config.InvoiceConfig,
) InvoiceCommands {
	return &invoiceUseCaseImpl{uow: uow, orders: orders, renderer: renderer, clock: clk, cfg: cfg}
}

func (uc *invoiceUseCaseImpl) Generate(ctx context.Context, orderID uuid.UUID) (*InvoiceResult, error) {
	view, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, markOrderErr(err)
	}

	pdf, err := uc.renderer.Render(view, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("invoice_%s.pdf", orderID)
	path := filepath.Join(uc.cfg.Dir, filename)
	if err := os.MkdirAll(uc.cfg.Dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create invoice directory")
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return nil, errs.Wrap(err, "failed to write invoice file")
	}

	// Re-issuing an invoice for a paid order just serves the document again.
	if view.Status != string(domorder.StatusPaid) {
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			snap, derr := tx.Reads().OrderByID(ctx, orderID)
			if derr != nil {
				return markOrderErr(derr)
			}
			if snap.Status == domorder.StatusPaid {
				return nil
			}

			if holdsTable(snap.Kind, snap.TableID, snap.Status) {
				if derr = uc.releaseOrderTable(ctx, tx, *snap.TableID); derr != nil {
					return derr
				}
			}
			if derr = tx.Orders().SetStatus(ctx, tx.DB(), orderID, domorder.StatusPaid); derr != nil {
				return markOrderErr(derr)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &InvoiceResult{
		Filename:   filename,
		Path:       path,
		TotalCents: view.TotalCents,
		PDF:        pdf,
	}, nil
}

func (uc *invoiceUseCaseImpl) releaseOrderTable(ctx context.Context, tx shared.Tx, tableID uuid.UUID) error {
	if _, err := tx.Reads().TableByIDForUpdate(ctx, tableID); err != nil {
		return markTableErr(err)
	}
	return tx.Tables().SetOccupied(ctx, tx.DB(), tableID, false)
}
