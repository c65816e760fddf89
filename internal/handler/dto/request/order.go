package request

import (
	"github.com/google/uuid"
)

type OrderLineRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int32     `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	ClientName string             `json:"client_name" binding:"required"`
	Kind       string             `json:"kind" binding:"required,oneof=dine_in takeaway"`
	TableID    *uuid.UUID         `json:"table_id,omitempty"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type PatchOrderRequest struct {
	ClientName *string    `json:"client_name,omitempty"`
	Kind       *string    `json:"kind,omitempty" binding:"omitempty,oneof=dine_in takeaway"`
	TableID    *uuid.UUID `json:"table_id,omitempty"`
	Status     *string    `json:"status,omitempty" binding:"omitempty,oneof=pending done paid"`
}
