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

// driverPayload is the matching-result shape returned to riders.
type driverPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CarClass    string `json:"carClass"`
	Coordinates string `json:"coordinates"`
}

func toDriverPayloads(drivers []*entity.Driver) []*driverPayload {
	payloads := make([]*driverPayload, 0, len(drivers))
	for _, d := range drivers {
		payloads = append(payloads, &driverPayload{
			ID:          d.ID,
			Name:        d.Name,
			CarClass:    d.Profile().CarClass.String(),
			Coordinates: d.Profile().Coordinates.String(),
		})
	}

	return payloads
}

// DispatchHandler holds dependencies for driver-matching handlers.
type DispatchHandler struct {
	uc     usecase.DispatchUsecase
	logger *slog.Logger
}

// NewDispatchHandler is the constructor for DispatchHandler, injected by Fx.
func NewDispatchHandler(uc usecase.DispatchUsecase, logger *slog.Logger) *DispatchHandler {
	return &DispatchHandler{
		uc:     uc,
		logger: logger,
	}
}

// FindDrivers handles the eligible-driver search for a destination.
func (h *DispatchHandler) FindDrivers(c echo.Context) error {
	input := usecase.FindDriversInput{
		Destination: c.QueryParam("destination"),
		CarClass:    entity.CarClass(c.QueryParam("carClass")),
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	drivers, err := h.uc.FindEligibleDrivers(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toDriverPayloads(drivers), "Eligible drivers found")
}

// RequestDriver handles the rider's request to bind their open order to a driver.
func (h *DispatchHandler) RequestDriver(c echo.Context) error {
	riderID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	var input usecase.RequestDriverInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid driver request input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	input.RiderID = riderID

	if err := h.uc.RequestDriver(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Driver requested successfully")
}

// DriverRequested reports whether a driver has been requested for the order.
func (h *DispatchHandler) DriverRequested(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	requested, err := h.uc.DriverRequested(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"driverRequested": requested}, "")
}
