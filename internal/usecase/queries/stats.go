package queries

import (
	"context"
	"time"

	"resto-api/internal/pkg/clock"
)

const revenueMonths = 6

type MonthlyRevenuePoint struct {
	// Month in "2006-01" form.
	Month        string `json:"month"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type TopItemStat struct {
	Name         string `json:"name"`
	UnitsSold    int64  `json:"units_sold"`
	RevenueCents int64  `json:"revenue_cents"`
}

type KindStat struct {
	Kind         string `json:"kind"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type WeekdayStat struct {
	Weekday      string `json:"weekday"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type RevenueStatsView struct {
	TotalCents    int64                  `json:"total_cents"`
	LastSixMonths []*MonthlyRevenuePoint `json:"last_six_months"`
	TopItems      []*TopItemStat         `json:"top_items"`
	ByKind        []*KindStat            `json:"by_kind"`
	ByWeekday     []*WeekdayStat         `json:"by_weekday"`
}

type StatsQueries interface {
	Revenue(ctx context.Context) (*RevenueStatsView, error)
	// MonthlyHistogram returns one point per month for the last six months,
	// including months with no orders.
	MonthlyHistogram(ctx context.Context) ([]*MonthlyRevenuePoint, error)
}

type StatsViewRepo interface {
	TotalRevenue(ctx context.Context) (int64, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]*MonthlyRevenuePoint, error)
	TopItems(ctx context.Context, limit int32) ([]*TopItemStat, error)
	RevenueByKind(ctx context.Context) ([]*KindStat, error)
	// RevenueByWeekday keys rows by postgres day-of-week (0 = Sunday).
	RevenueByWeekday(ctx context.Context) (map[int]*WeekdayStat, error)
}

type statsQueriesImpl struct {
	repo StatsViewRepo
	clk  clock.Clock
}

func NewStatsQueries(repo StatsViewRepo, clk clock.Clock) StatsQueries {
	return &statsQueriesImpl{repo: repo, clk: clk}
}

func (q *statsQueriesImpl) Revenue(ctx context.Context) (*RevenueStatsView, error) {
	total, err := q.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	monthly, err := q.MonthlyHistogram(ctx)
	if err != nil {
		return nil, err
	}

	top, err := q.repo.TopItems(ctx, 10)
	if err != nil {
		return nil, err
	}

	byKind, err := q.repo.RevenueByKind(ctx)
	if err != nil {
		return nil, err
	}

	byDOW, err := q.repo.RevenueByWeekday(ctx)
	if err != nil {
		return nil, err
	}

	// Monday-first week, every day present even when empty.
	byWeekday := make([]*WeekdayStat, 0, 7)
	for i := 1; i <= 7; i++ {
		dow := i % 7
		stat, ok := byDOW[dow]
		if !ok {
			stat = &WeekdayStat{Weekday: time.Weekday(dow).String()}
		}
		byWeekday = append(byWeekday, stat)
	}

	return &RevenueStatsView{
		TotalCents:    total,
		LastSixMonths: monthly,
		TopItems:      top,
		ByKind:        byKind,
		ByWeekday:     byWeekday,
	}, nil
}

func (q *statsQueriesImpl) MonthlyHistogram(ctx context.Context) ([]*MonthlyRevenuePoint, error) {
	now := q.clk.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	since := first.AddDate(0, -(revenueMonths - 1), 0)

	rows, err := q.repo.MonthlyRevenue(ctx, since)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyRevenuePoint, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	points := make([]*MonthlyRevenuePoint, 0, revenueMonths)
	for i := 0; i < revenueMonths; i++ {
		key := since.AddDate(0, i, 0).Format("2006-01")
		if p, ok := byMonth[key]; ok {
			points = append(points, p)
			continue
		}
		points = append(points, &MonthlyRevenuePoint{Month: key})
	}
	return points, nil
}
