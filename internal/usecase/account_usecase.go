// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"hailer/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new rider.
type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// SignInInput defines the data required for a participant to sign in.
type SignInInput struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangeNameInput defines the data required to rename a participant.
type ChangeNameInput struct {
	ParticipantID int64  `json:"-"`
	NewName       string `json:"newName" validate:"required"`
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	ParticipantID     int64  `json:"-"`
	Current           string `json:"current" validate:"required"`
	NewPassword       string `json:"newPassword" validate:"required"`
	RepeatNewPassword string `json:"repeatNewPassword" validate:"required"`
}

// --- Output DTOs ---

// SignUpOutput returns the newly created participant.
type SignUpOutput struct {
	Participant *entity.Participant
}

// SignInOutput returns the signed-in participant and their access token.
type SignInOutput struct {
	Participant *entity.Participant
	AccessToken string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract the delivery layer (API handlers) depends on.
type AccountUsecase interface {
	// SignUp registers a new rider account. Name conflicts and invalid
	// credential sets are business outcomes, returned as domain errors.
	SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error)

	// SignIn authenticates a participant by name and password. Signing in a
	// driver marks the driver active.
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)

	// ChangeName renames a participant, rejecting names already taken.
	ChangeName(ctx context.Context, input *ChangeNameInput) (*entity.Participant, error)

	// ChangePassword replaces a participant's password after verifying the
	// current one and the repeat confirmation.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) (*entity.Participant, error)
}
