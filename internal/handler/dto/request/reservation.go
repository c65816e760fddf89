package request

import (
	"time"

	"github.com/google/uuid"
)

// UpsertReservationRequest books a table. Supplying an ID replaces that
// reservation; omitting EndsAt books the default two-hour window.
type UpsertReservationRequest struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	TableID    uuid.UUID  `json:"table_id" binding:"required"`
	ClientName string     `json:"client_name" binding:"required"`
	StartsAt   time.Time  `json:"starts_at" binding:"required"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
}

type PatchReservationRequest struct {
	TableID    *uuid.UUID `json:"table_id,omitempty"`
	ClientName *string    `json:"client_name,omitempty"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
}
