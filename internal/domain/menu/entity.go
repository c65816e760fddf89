package menu

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("menu item name is required")
	ErrNegativePrice = errors.New("unit price cannot be negative")
)

type Item struct {
	id             uuid.UUID
	name           string
	unitPriceCents int64
	createdAt      time.Time
	updatedAt      time.Time
}

func NewItem(name string, unitPriceCents int64) (*Item, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrEmptyName
	}
	if unitPriceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Item{
		id:             uuid.New(),
		name:           trimmed,
		unitPriceCents: unitPriceCents,
	}, nil
}

func ReconstructItem(id uuid.UUID, name string, unitPriceCents int64, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:             id,
		name:           name,
		unitPriceCents: unitPriceCents,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (i *Item) Update(name string, unitPriceCents int64) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyName
	}
	if unitPriceCents < 0 {
		return ErrNegativePrice
	}
	i.name = trimmed
	i.unitPriceCents = unitPriceCents
	return nil
}

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) Name() string          { return i.name }
func (i *Item) UnitPriceCents() int64 { return i.unitPriceCents }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }
