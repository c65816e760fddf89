package shared

import (
	"context"
	"time"

	"resto-api/internal/domain/menu"
	"resto-api/internal/domain/order"
	"resto-api/internal/domain/reservation"
	"resto-api/internal/domain/table"
	"resto-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Tables() TableRepository
	Reservations() ReservationRepository
	Orders() OrderRepository
	Menu() MenuRepository
	Reads() CommandReads
	DB() db.DBTX
}

// Minimal snapshots for command read operations
type TableSnapshot struct {
	ID       uuid.UUID
	Name     string
	Occupied bool
}

type ReservationSnapshot struct {
	ID         uuid.UUID
	TableID    uuid.UUID
	ClientName string
	StartsAt   time.Time
	EndsAt     time.Time
}

type OrderSnapshot struct {
	ID         uuid.UUID
	ClientName string
	Kind       order.Kind
	TableID    *uuid.UUID
	Status     order.Status
	TotalCents int64
	PlacedAt   time.Time
}

type MenuItemSnapshot struct {
	ID             uuid.UUID
	Name           string
	UnitPriceCents int64
}

type TableRefCounts struct {
	Orders       int64
	Reservations int64
}

type CommandReads interface {
	TableByID(ctx context.Context, id uuid.UUID) (*TableSnapshot, error)
	// TableByIDForUpdate locks the table row, serializing every occupancy
	// decision for that table within the surrounding transaction.
	TableByIDForUpdate(ctx context.Context, id uuid.UUID) (*TableSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	// ReservationsCovering returns the reservations of a table whose half-open
	// window contains the given instant.
	ReservationsCovering(ctx context.Context, tableID uuid.UUID, at time.Time) ([]ReservationSnapshot, error)
	// OverlapExists reports whether any reservation of the table overlaps
	// [start, end), excluding the record identified by excludeID.
	OverlapExists(ctx context.Context, tableID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (bool, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	MenuItemByID(ctx context.Context, id uuid.UUID) (*MenuItemSnapshot, error)
	TableReferences(ctx context.Context, tableID uuid.UUID) (*TableRefCounts, error)
	MenuItemLineCount(ctx context.Context, menuItemID uuid.UUID) (int64, error)
}

type TableRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *table.Table) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, t *table.Table) error
	SetOccupied(ctx context.Context, tx db.DBTX, id uuid.UUID, occupied bool) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ReservationRepository interface {
	// Upsert inserts the reservation or, when its identifier already exists,
	// replaces table, client and window.
	Upsert(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	// UpdateHeader rewrites the mutable order columns with fully resolved
	// values; patch merging happens in the usecase, never in SQL strings.
	UpdateHeader(ctx context.Context, tx db.DBTX, id uuid.UUID, clientName string, kind order.Kind, tableID *uuid.UUID, status order.Status) error
	SetStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type MenuRepository interface {
	Create(ctx context.Context, tx db.DBTX, item *menu.Item) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, item *menu.Item) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}
