package repository

import (
	"context"
	"errors"

	"hailer/internal/domain/entity"
)

// ErrOrderNotFound is returned when the referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrStateConflict is returned by Transition when the order was not in the
// expected prior state. The conditional write makes each transition atomic
// under concurrent callers.
var ErrStateConflict = errors.New("order not in expected state")

// OrderRepository defines operations over order records and their lifecycle state.
type OrderRepository interface {
	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	// FindCurrentByRiderID retrieves the rider's open (non-terminal) order.
	// Returns ErrOrderNotFound when the rider has none.
	FindCurrentByRiderID(ctx context.Context, riderID int64) (*entity.Order, error)

	// DriverRequested reports whether a driver has been requested for the order.
	DriverRequested(ctx context.Context, orderID int64) (bool, error)

	// Transition advances the order from one state to its successor as a
	// single compare-and-swap write. Returns ErrStateConflict when the order
	// is no longer in the from state, ErrOrderNotFound when it does not exist.
	Transition(ctx context.Context, orderID int64, from, to entity.OrderStatus) error
}
