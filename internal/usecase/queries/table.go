package queries

import (
	"context"
	"time"

	"resto-api/internal/domain/reservation"
	"resto-api/internal/infra"
	"resto-api/internal/pkg/clock"
	"resto-api/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type TableView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Occupied         bool      `json:"occupied"`
	ReservationCount int64     `json:"reservation_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type TableDetailView struct {
	TableView
	// Reservations covering the moment of the request.
	Reservations []*ReservationView `json:"reservations"`
}

type TableAvailabilityView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Occupied  bool      `json:"occupied"`
	Available bool      `json:"available"`
	// Reservations overlapping the requested window.
	Reservations []*ReservationView `json:"reservations"`
}

type TableQueries interface {
	List(ctx context.Context) ([]*TableView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TableDetailView, error)
	// Availability reports, per table, whether it can be taken for the
	// half-open window [from, to). from defaults to now, to to from+2h.
	Availability(ctx context.Context, from, to *time.Time) ([]*TableAvailabilityView, error)
}

type TableViewRepo interface {
	FindAll(ctx context.Context, at time.Time) ([]*TableView, error)
	FindByID(ctx context.Context, id uuid.UUID, at time.Time) (*TableDetailView, error)
	FindOverlapping(ctx context.Context, from, to time.Time) ([]*TableAvailabilityView, error)
}

type tableQueriesImpl struct {
	repo TableViewRepo
	clk  clock.Clock
}

func NewTableQueries(repo TableViewRepo, clk clock.Clock) TableQueries {
	return &tableQueriesImpl{repo: repo, clk: clk}
}

func (q *tableQueriesImpl) List(ctx context.Context) ([]*TableView, error) {
	return q.repo.FindAll(ctx, q.clk.Now())
}

func (q *tableQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TableDetailView, error) {
	view, err := q.repo.FindByID(ctx, id, q.clk.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrTableNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *tableQueriesImpl) Availability(ctx context.Context, from, to *time.Time) ([]*TableAvailabilityView, error) {
	start := q.clk.Now()
	if from != nil {
		start = *from
	}
	end := start.Add(reservation.DefaultDuration)
	if to != nil {
		end = *to
	}
	if !end.After(start) {
		return nil, errs.ErrInvalidWindow
	}

	views, err := q.repo.FindOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}

	for _, v := range views {
		v.Available = !v.Occupied && len(v.Reservations) == 0
	}
	return views, nil
}
