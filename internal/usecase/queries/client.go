package queries

import (
	"context"
	"time"
)

// Clients are keyed by name; there is no client table, the aggregates come
// straight off orders and reservations.
type ClientView struct {
	Name            string    `json:"name"`
	OrderCount      int64     `json:"order_count"`
	LastVisit       time.Time `json:"last_visit"`
	TotalSpentCents int64     `json:"total_spent_cents"`
}

type ClientSearchView struct {
	ClientView
	ReservationCount int64 `json:"reservation_count"`
}

type ClientFilter struct {
	From *time.Time
	To   *time.Time
}

type ClientQueries interface {
	List(ctx context.Context, filter ClientFilter) ([]*ClientView, error)
	Search(ctx context.Context, term string) ([]*ClientSearchView, error)
}

type ClientViewRepo interface {
	FindAll(ctx context.Context, filter ClientFilter) ([]*ClientView, error)
	SearchByName(ctx context.Context, term string) ([]*ClientSearchView, error)
}

type clientQueriesImpl struct {
	repo ClientViewRepo
}

func NewClientQueries(repo ClientViewRepo) ClientQueries {
	return &clientQueriesImpl{repo: repo}
}

func (q *clientQueriesImpl) List(ctx context.Context, filter ClientFilter) ([]*ClientView, error) {
	return q.repo.FindAll(ctx, filter)
}

func (q *clientQueriesImpl) Search(ctx context.Context, term string) ([]*ClientSearchView, error) {
	return q.repo.SearchByName(ctx, term)
}
