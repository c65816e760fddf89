package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyClientName = errors.New("client name is required")
	ErrNoLines         = errors.New("order needs at least one line")
	ErrTableRequired   = errors.New("dine-in order requires a table")
)

type Order struct {
	id         uuid.UUID
	clientName string
	kind       Kind
	tableID    *uuid.UUID
	status     Status
	lines      []Line
	total      Money
	placedAt   time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewOrder builds a pending order. The total is computed once from the line
// snapshots and never recomputed afterwards.
func NewOrder(clientName string, kind Kind, tableID *uuid.UUID, lines []Line, placedAt time.Time) (*Order, error) {
	name := strings.TrimSpace(clientName)
	if name == "" {
		return nil, ErrEmptyClientName
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	if kind == KindDineIn && tableID == nil {
		return nil, ErrTableRequired
	}
	if kind == KindTakeaway {
		// A takeaway order never binds a table.
		tableID = nil
	}

	total := NewMoney(0)
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}

	return &Order{
		id:         uuid.New(),
		clientName: name,
		kind:       kind,
		tableID:    tableID,
		status:     StatusPending,
		lines:      lines,
		total:      total,
		placedAt:   placedAt,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	clientName string,
	kind Kind,
	tableID *uuid.UUID,
	status Status,
	lines []Line,
	total Money,
	placedAt, createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:         id,
		clientName: clientName,
		kind:       kind,
		tableID:    tableID,
		status:     status,
		lines:      lines,
		total:      total,
		placedAt:   placedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// HoldsTable reports whether the order currently binds a table, i.e. whether
// releasing is needed when it completes, pays out, rebinds or is deleted.
func (o *Order) HoldsTable() bool {
	return o.kind == KindDineIn && o.tableID != nil
}

func (o *Order) ID() uuid.UUID         { return o.id }
func (o *Order) ClientName() string    { return o.clientName }
func (o *Order) Kind() Kind            { return o.kind }
func (o *Order) TableID() *uuid.UUID   { return o.tableID }
func (o *Order) Status() Status        { return o.status }
func (o *Order) Lines() []Line         { return o.lines }
func (o *Order) Total() Money          { return o.total }
func (o *Order) PlacedAt() time.Time   { return o.placedAt }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time  { return o.updatedAt }
