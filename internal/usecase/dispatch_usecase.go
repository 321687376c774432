package usecase

import (
	"context"

	"hailer/internal/domain/entity"
)

// FindDriversInput defines the query for the eligible-driver search.
// Destination uses the "lat,lon" store encoding at this boundary.
type FindDriversInput struct {
	Destination string          `json:"destination" validate:"required"`
	CarClass    entity.CarClass `json:"carClass" validate:"required"`
}

// RequestDriverInput binds a rider's open order to a chosen driver.
type RequestDriverInput struct {
	DriverID int64 `json:"driverId" validate:"required"`
	RiderID  int64 `json:"-"`
}

// DispatchUsecase covers the driver-matching and driver-request operations.
type DispatchUsecase interface {
	// FindEligibleDrivers returns all active drivers of the requested class
	// whose planar distance to the destination is strictly below the
	// configured threshold, in discovery order. Unparsable coordinate data
	// fails the whole operation with a malformed-coordinate error.
	FindEligibleDrivers(ctx context.Context, input *FindDriversInput) ([]*entity.Driver, error)

	// RequestDriver assigns the rider's current open order to the named
	// driver and flags the order as driver-requested. Losing a concurrent
	// assignment race is an invalid-state outcome.
	RequestDriver(ctx context.Context, input *RequestDriverInput) error

	// DriverRequested reports whether a driver has been requested for the order.
	DriverRequested(ctx context.Context, orderID int64) (bool, error)
}
