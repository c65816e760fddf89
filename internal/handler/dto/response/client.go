package response

import (
	"time"

	"resto-api/internal/usecase/queries"
)

type ClientResponse struct {
	Name            string    `json:"name"`
	OrderCount      int64     `json:"order_count"`
	LastVisit       time.Time `json:"last_visit"`
	TotalSpentCents int64     `json:"total_spent_cents"`
}

type ClientSearchResponse struct {
	ClientResponse
	ReservationCount int64 `json:"reservation_count"`
}

func FromClientViews(views []*queries.ClientView) []*ClientResponse {
	resps := make([]*ClientResponse, len(views))
	for i, v := range views {
		var resp ClientResponse
		copyView(&resp, v)
		resps[i] = &resp
	}
	return resps
}

func FromClientSearchViews(views []*queries.ClientSearchView) []*ClientSearchResponse {
	resps := make([]*ClientSearchResponse, len(views))
	for i, v := range views {
		var resp ClientSearchResponse
		copyView(&resp.ClientResponse, &v.ClientView)
		resp.ReservationCount = v.ReservationCount
		resps[i] = &resp
	}
	return resps
}
