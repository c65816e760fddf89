package request

type CreateMenuItemRequest struct {
	Name           string `json:"name" binding:"required"`
	UnitPriceCents int64  `json:"unit_price_cents" binding:"min=0"`
}

type UpdateMenuItemRequest struct {
	Name           *string `json:"name,omitempty"`
	UnitPriceCents *int64  `json:"unit_price_cents,omitempty" binding:"omitempty,min=0"`
}
