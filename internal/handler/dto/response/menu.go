package response

import (
	"time"

	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type MenuItemResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type MenuSearchResponse struct {
	MenuItemResponse
	UnitsSold int64 `json:"units_sold"`
}

func FromMenuItemView(v *queries.MenuItemView) *MenuItemResponse {
	var resp MenuItemResponse
	copyView(&resp, v)
	return &resp
}

func FromMenuItemViews(views []*queries.MenuItemView) []*MenuItemResponse {
	resps := make([]*MenuItemResponse, len(views))
	for i, v := range views {
		resps[i] = FromMenuItemView(v)
	}
	return resps
}

func FromMenuSearchViews(views []*queries.MenuSearchView) []*MenuSearchResponse {
	resps := make([]*MenuSearchResponse, len(views))
	for i, v := range views {
		resps[i] = &MenuSearchResponse{
			MenuItemResponse: *FromMenuItemView(&v.MenuItemView),
			UnitsSold:        v.UnitsSold,
		}
	}
	return resps
}
