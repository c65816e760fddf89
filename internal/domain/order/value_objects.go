package order

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind     = errors.New("invalid order kind")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidQuantity = errors.New("line quantity must be positive")
	ErrNegativePrice   = errors.New("line unit price cannot be negative")
)

type Kind string

const (
	KindDineIn   Kind = "dine_in"
	KindTakeaway Kind = "takeaway"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDineIn, KindTakeaway:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusPaid    Status = "paid"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusDone, StatusPaid:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ReleasesTable reports whether entering this status frees a bound table.
func (s Status) ReleasesTable() bool {
	return s == StatusDone || s == StatusPaid
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MultiplyBy(qty int32) Money {
	return Money{cents: m.cents * int64(qty)}
}

// Line is an order line carrying the unit price snapshotted at order
// creation time. Later menu price changes never touch it.
type Line struct {
	menuItemID uuid.UUID
	quantity   int32
	unitPrice  Money
}

func NewLine(menuItemID uuid.UUID, quantity int32, unitPrice Money) (Line, error) {
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if unitPrice.Cents() < 0 {
		return Line{}, ErrNegativePrice
	}
	return Line{menuItemID: menuItemID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (l Line) MenuItemID() uuid.UUID { return l.menuItemID }
func (l Line) Quantity() int32       { return l.quantity }
func (l Line) UnitPrice() Money      { return l.unitPrice }

func (l Line) Subtotal() Money {
	return l.unitPrice.MultiplyBy(l.quantity)
}
