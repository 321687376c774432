package repository

import (
	"context"
	"errors"

	"hailer/internal/domain/entity"
)

// ErrDriverNotFound is returned when the referenced driver does not exist.
var ErrDriverNotFound = errors.New("driver not found")

// ErrOrderAlreadyAssigned is returned by AssignOrder when another dispatch won
// the conditional write for the same order.
var ErrOrderAlreadyAssigned = errors.New("order already assigned to a driver")

// DriverRepository defines operations over driver participants and their profiles.
type DriverRepository interface {
	// FindByID retrieves a single driver with their profile.
	FindByID(ctx context.Context, driverID int64) (*entity.Driver, error)

	// ListActiveByCarClass retrieves all active drivers of the given vehicle
	// class, in store discovery order.
	ListActiveByCarClass(ctx context.Context, class entity.CarClass) ([]*entity.Driver, error)

	// SetActive toggles whether the driver is accepting rides.
	SetActive(ctx context.Context, driverID int64, active bool) error

	// AssignOrder atomically binds the order to the driver: sets the order's
	// driver reference and driver-requested flag and advances CREATED ->
	// REQUESTED. The write is conditional on the order still being
	// unassigned; a lost race yields ErrOrderAlreadyAssigned.
	AssignOrder(ctx context.Context, orderID, driverID int64) error

	// SetCurrentOrder records (or clears, with nil) the order a driver is serving.
	SetCurrentOrder(ctx context.Context, driverID int64, orderID *int64) error

	// SetCoordinates updates the driver's last reported position.
	SetCoordinates(ctx context.Context, driverID int64, coords entity.Coordinates) error

	// SetDeviceToken stores the driver's push-notification device token.
	SetDeviceToken(ctx context.Context, driverID int64, token string) error
}
