package queries

import (
	"context"
	"time"

	"resto-api/internal/infra"
	"resto-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type MenuItemView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MenuSearchView adds the sales count; listing stays cheap without it.
type MenuSearchView struct {
	MenuItemView
	UnitsSold int64 `json:"units_sold"`
}

type MenuQueries interface {
	List(ctx context.Context) ([]*MenuItemView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MenuItemView, error)
	Search(ctx context.Context, term string) ([]*MenuSearchView, error)
}

type MenuViewRepo interface {
	FindAll(ctx context.Context) ([]*MenuItemView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItemView, error)
	SearchByName(ctx context.Context, term string) ([]*MenuSearchView, error)
}

type menuQueriesImpl struct {
	repo MenuViewRepo
}

func NewMenuQueries(repo MenuViewRepo) MenuQueries {
	return &menuQueriesImpl{repo: repo}
}

func (q *menuQueriesImpl) List(ctx context.Context) ([]*MenuItemView, error) {
	return q.repo.FindAll(ctx)
}

func (q *menuQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*MenuItemView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrMenuItemNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *menuQueriesImpl) Search(ctx context.Context, term string) ([]*MenuSearchView, error) {
	return q.repo.SearchByName(ctx, term)
}
