package response

import (
	"time"

	"resto-api/internal/usecase/commands"
	"resto-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderLineResponse struct {
	MenuItemID     uuid.UUID `json:"menu_item_id"`
	Name           string    `json:"name"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type OrderResponse struct {
	ID         uuid.UUID            `json:"id"`
	ClientName string               `json:"client_name"`
	Kind       string               `json:"kind"`
	TableID    *uuid.UUID           `json:"table_id,omitempty"`
	TableName  *string              `json:"table_name,omitempty"`
	Status     string               `json:"status"`
	TotalCents int64                `json:"total_cents"`
	PlacedAt   time.Time            `json:"placed_at"`
	Lines      []*OrderLineResponse `json:"lines"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type InvoiceResponse struct {
	Filename   string `json:"filename"`
	TotalCents int64  `json:"total_cents"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	copyView(&resp, v)
	return &resp
}

func FromOrderViews(views []*queries.OrderView) []*OrderResponse {
	resps := make([]*OrderResponse, len(views))
	for i, v := range views {
		resps[i] = FromOrderView(v)
	}
	return resps
}

func FromInvoiceResult(r *commands.InvoiceResult) *InvoiceResponse {
	return &InvoiceResponse{
		Filename:   r.Filename,
		TotalCents: r.TotalCents,
	}
}
