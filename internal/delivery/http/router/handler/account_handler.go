// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hailer/internal/delivery/http/middleware"
	"hailer/internal/delivery/http/response"
	"hailer/internal/domain/entity"
	"hailer/internal/usecase"
)

// participantPayload is the participant shape returned to clients. The
// password hash never leaves the service.
type participantPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func toParticipantPayload(p *entity.Participant) *participantPayload {
	return &participantPayload{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Role:  p.Role.String(),
	}
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// SignUp handles the rider registration request.
func (h *AccountHandler) SignUp(c echo.Context) error {
	var input usecase.SignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-up input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.SignUp(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toParticipantPayload(output.Participant), "Account registered successfully")
}

// SignIn handles the sign-in request.
func (h *AccountHandler) SignIn(c echo.Context) error {
	var input usecase.SignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.SignIn(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"participant": toParticipantPayload(output.Participant),
		"accessToken": output.AccessToken,
	}, "Signed in successfully")
}

// ChangeName handles the rename request for the authenticated participant.
func (h *AccountHandler) ChangeName(c echo.Context) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	var input usecase.ChangeNameInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change-name input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	input.ParticipantID = participantID

	participant, err := h.uc.ChangeName(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toParticipantPayload(participant), "Name changed successfully")
}

// ChangePassword handles the password change request for the authenticated participant.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	participantID, ok := middleware.ParticipantID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Participant ID missing from token")
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change-password input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	input.ParticipantID = participantID

	participant, err := h.uc.ChangePassword(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toParticipantPayload(participant), "Password changed successfully")
}
