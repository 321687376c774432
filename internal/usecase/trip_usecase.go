package usecase

import (
	"context"

	"hailer/internal/domain/entity"
)

// AcceptOrderInput is the driver's acceptance of a requested order.
type AcceptOrderInput struct {
	DriverID int64 `json:"-"`
	OrderID  int64 `json:"orderId" validate:"required"`
}

// SetAvailabilityInput toggles whether a driver accepts rides.
type SetAvailabilityInput struct {
	DriverID int64 `json:"-"`
	Active   bool  `json:"active"`
}

// UpdateLocationInput is a driver position report.
type UpdateLocationInput struct {
	DriverID int64   `json:"-"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// RegisterDeviceInput stores the driver's push device token.
type RegisterDeviceInput struct {
	DriverID int64  `json:"-"`
	Token    string `json:"token" validate:"required"`
}

// TripUsecase drives an order through its lifecycle and maintains driver state.
// Every transition is strict: calling an operation against an order in any
// other state is rejected.
type TripUsecase interface {
	// AcceptOrder moves the order REQUESTED -> ASSIGNED and records it as the
	// driver's current order. Only the requested driver may accept.
	AcceptOrder(ctx context.Context, input *AcceptOrderInput) (*entity.Order, error)

	// StartTrip moves the order ASSIGNED -> IN_PROGRESS.
	StartTrip(ctx context.Context, orderID int64) error

	// CompleteTrip moves the order IN_PROGRESS -> COMPLETED and frees the driver.
	CompleteTrip(ctx context.Context, orderID int64) error

	// SetAvailability toggles the driver's active flag.
	SetAvailability(ctx context.Context, input *SetAvailabilityInput) error

	// UpdateLocation records the driver's last reported position.
	UpdateLocation(ctx context.Context, input *UpdateLocationInput) error

	// RegisterDevice stores the driver's FCM device token for dispatch pushes.
	RegisterDevice(ctx context.Context, input *RegisterDeviceInput) error
}
