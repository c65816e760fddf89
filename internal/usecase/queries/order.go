package queries

import (
	"context"
	"time"

	"resto-api/internal/infra"
	"resto-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderLineView struct {
	MenuItemID     uuid.UUID `json:"menu_item_id"`
	Name           string    `json:"name"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type OrderView struct {
	ID         uuid.UUID        `json:"id"`
	ClientName string           `json:"client_name"`
	Kind       string           `json:"kind"`
	TableID    *uuid.UUID       `json:"table_id,omitempty"`
	TableName  *string          `json:"table_name,omitempty"`
	Status     string           `json:"status"`
	TotalCents int64            `json:"total_cents"`
	PlacedAt   time.Time        `json:"placed_at"`
	Lines      []*OrderLineView `json:"lines"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type OrderFilter struct {
	From *time.Time
	To   *time.Time
}

type OrderQueries interface {
	List(ctx context.Context, filter OrderFilter) ([]*OrderView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	// ListByClient matches the client name exactly, or as a substring when
	// partial is true.
	ListByClient(ctx context.Context, name string, partial bool) ([]*OrderView, error)
}

type OrderViewRepo interface {
	FindAll(ctx context.Context, filter OrderFilter) ([]*OrderView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByClient(ctx context.Context, name string, partial bool) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) List(ctx context.Context, filter OrderFilter) ([]*OrderView, error) {
	return q.repo.FindAll(ctx, filter)
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByClient(ctx context.Context, name string, partial bool) ([]*OrderView, error) {
	return q.repo.FindByClient(ctx, name, partial)
}
