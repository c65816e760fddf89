package queries

import (
	"context"
	"time"

	"resto-api/internal/infra"
	"resto-api/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	TableID    uuid.UUID `json:"table_id"`
	TableName  string    `json:"table_name"`
	ClientName string    `json:"client_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReservationFilter narrows the listing; zero values mean no filter.
type ReservationFilter struct {
	// Day keeps reservations whose window intersects that calendar day.
	Day        *time.Time
	ClientName string
}

type ReservationQueries interface {
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type ReservationViewRepo interface {
	FindAll(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error) {
	return q.repo.FindAll(ctx, filter)
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}
