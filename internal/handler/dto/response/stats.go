package response

import (
	"resto-api/internal/usecase/queries"
)

type MonthlyRevenueResponse struct {
	Month        string `json:"month"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type RevenueStatsResponse struct {
	TotalCents    int64                     `json:"total_cents"`
	LastSixMonths []*MonthlyRevenueResponse `json:"last_six_months"`
	TopItems      []*TopItemResponse        `json:"top_items"`
	ByKind        []*KindStatResponse       `json:"by_kind"`
	ByWeekday     []*WeekdayStatResponse    `json:"by_weekday"`
}

type TopItemResponse struct {
	Name         string `json:"name"`
	UnitsSold    int64  `json:"units_sold"`
	RevenueCents int64  `json:"revenue_cents"`
}

type KindStatResponse struct {
	Kind         string `json:"kind"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type WeekdayStatResponse struct {
	Weekday      string `json:"weekday"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
}

func FromRevenueStatsView(v *queries.RevenueStatsView) *RevenueStatsResponse {
	var resp RevenueStatsResponse
	copyView(&resp, v)
	return &resp
}

func FromMonthlyRevenuePoints(points []*queries.MonthlyRevenuePoint) []*MonthlyRevenueResponse {
	resps := make([]*MonthlyRevenueResponse, len(points))
	for i, p := range points {
		var resp MonthlyRevenueResponse
		copyView(&resp, p)
		resps[i] = &resp
	}
	return resps
}
