package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hailer/internal/delivery/http/middleware"
	"hailer/internal/delivery/http/response"
	"hailer/internal/domain/entity"
	"hailer/internal/usecase"
)

// orderPayload is the order shape returned to clients.
type orderPayload struct {
	ID              int64  `json:"id"`
	RiderID         int64  `json:"riderId"`
	Destination     string `json:"destination"`
	DriverID        *int64 `json:"driverId,omitempty"`
	Status          string `json:"status"`
	DriverRequested bool   `json:"driverRequested"`
}

func toOrderPayload(o *entity.Order) *orderPayload {
	return &orderPayload{
		ID:              o.ID,
		RiderID:         o.RiderID,
		Destination:     o.Destination.String(),
		DriverID:        o.DriverID,
		Status:          o.Status.String(),
		DriverRequested: o.DriverRequested,
	}
}

// TripHandler holds dependencies for trip-lifecycle and driver-state handlers.
type TripHandler struct {
	uc     usecase.TripUsecase
	logger *slog.Logger
}

// NewTripHandler is the constructor for TripHandler, injected by Fx.
func NewTripHandler(uc usecase.TripUsecase, logger *slog.Logger) *TripHandler {
	return &TripHandler{
		uc:     uc,
		logger: logger,
	}
}

func orderIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// AcceptOrder handles the driver's acceptance of a requested order.
func (h *TripHandler) AcceptOrder(c echo.Context) error {
	driverID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	orderID, err := orderIDParam(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.AcceptOrder(c.Request().Context(), &usecase.AcceptOrderInput{
		DriverID: driverID,
		OrderID:  orderID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderPayload(order), "Order accepted")
}

// StartTrip handles the transition of an assigned order into progress.
func (h *TripHandler) StartTrip(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := h.uc.StartTrip(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Trip started")
}

// CompleteTrip handles the completion of an in-progress order.
func (h *TripHandler) CompleteTrip(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	if err := h.uc.CompleteTrip(c.Request().Context(), orderID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Trip completed")
}

// SetAvailability toggles whether the authenticated driver accepts rides.
func (h *TripHandler) SetAvailability(c echo.Context) error {
	driverID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	var input usecase.SetAvailabilityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}
	input.DriverID = driverID

	if err := h.uc.SetAvailability(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Availability updated")
}

// UpdateLocation records the authenticated driver's position report.
func (h *TripHandler) UpdateLocation(c echo.Context) error {
	driverID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	var input usecase.UpdateLocationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	input.DriverID = driverID

	if err := h.uc.UpdateLocation(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Location updated")
}

// RegisterDevice stores the authenticated driver's push device token.
func (h *TripHandler) RegisterDevice(c echo.Context) error {
	driverID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	var input usecase.RegisterDeviceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	input.DriverID = driverID

	if err := h.uc.RegisterDevice(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Device registered")
}
