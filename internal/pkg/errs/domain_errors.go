package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Table errors
	ErrTableNotFound  = errors.New("table not found")
	ErrTableNameTaken = errors.New("table name already exists")
	ErrTableOccupied  = errors.New("table already occupied")
	ErrTableReserved  = errors.New("table reserved by another client")
	ErrTableInUse     = errors.New("table referenced by orders or reservations")
	ErrTableRequired  = errors.New("table required for dine-in order")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationConflict = errors.New("reservation window conflict")
	ErrInvalidWindow       = errors.New("invalid reservation window")

	// Order errors
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order has no lines")
	ErrInvalidKind   = errors.New("invalid order kind")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidLine   = errors.New("invalid order line")

	// Menu errors
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMenuItemInUse    = errors.New("menu item referenced by order lines")
	ErrInvalidPrice     = errors.New("unit price cannot be negative")

	// Operation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrStoreFailure     = errors.New("database operation failed")
)
