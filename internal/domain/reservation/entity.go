package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyClientName = errors.New("client name is required")

type Reservation struct {
	id         uuid.UUID
	tableID    uuid.UUID
	clientName string
	window     Window
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation creates a reservation aggregate. When id is non-nil the
// caller is requesting upsert semantics for that identifier; otherwise a
// fresh identifier is generated.
func NewReservation(id *uuid.UUID, tableID uuid.UUID, clientName string, window Window) (*Reservation, error) {
	name := strings.TrimSpace(clientName)
	if name == "" {
		return nil, ErrEmptyClientName
	}

	rid := uuid.New()
	if id != nil {
		rid = *id
	}

	return &Reservation{
		id:         rid,
		tableID:    tableID,
		clientName: name,
		window:     window,
	}, nil
}

func ReconstructReservation(
	id, tableID uuid.UUID,
	clientName string,
	window Window,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		tableID:    tableID,
		clientName: clientName,
		window:     window,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// HeldBy reports whether the reservation belongs to the given client.
// Comparison is exact: the original system keys clients by name.
func (r *Reservation) HeldBy(clientName string) bool {
	return r.clientName == strings.TrimSpace(clientName)
}

// BlocksSeating reports whether this reservation prevents clientName from
// taking the table at instant now. A client may seat into their own window.
func (r *Reservation) BlocksSeating(clientName string, now time.Time) bool {
	return r.window.Contains(now) && !r.HeldBy(clientName)
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) TableID() uuid.UUID   { return r.tableID }
func (r *Reservation) ClientName() string   { return r.clientName }
func (r *Reservation) Window() Window       { return r.window }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
