package table

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("table name is required")
	ErrAlreadyOccupied = errors.New("table is already occupied")
)

// Table has exactly two occupancy states, Free and Occupied. Occupancy and
// reservations are independent axes: removing a reservation never frees an
// occupied table.
type Table struct {
	id        uuid.UUID
	name      string
	occupied  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewTable(name string) (*Table, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrEmptyName
	}

	return &Table{
		id:   uuid.New(),
		name: trimmed,
	}, nil
}

func ReconstructTable(id uuid.UUID, name string, occupied bool, createdAt, updatedAt time.Time) *Table {
	return &Table{
		id:        id,
		name:      name,
		occupied:  occupied,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Occupy performs the Free → Occupied transition. The caller is responsible
// for holding the table's row lock so two concurrent requests cannot both
// observe Free.
func (t *Table) Occupy() error {
	if t.occupied {
		return ErrAlreadyOccupied
	}
	t.occupied = true
	return nil
}

// Release performs Occupied → Free. Releasing a free table is a no-op: order
// completion, payment and deletion all release unconditionally.
func (t *Table) Release() {
	t.occupied = false
}

func (t *Table) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	t.name = trimmed
	return nil
}

func (t *Table) ID() uuid.UUID        { return t.id }
func (t *Table) Name() string         { return t.name }
func (t *Table) IsOccupied() bool     { return t.occupied }
func (t *Table) CreatedAt() time.Time { return t.createdAt }
func (t *Table) UpdatedAt() time.Time { return t.updatedAt }
