// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"hailer/internal/domain/entity"
)

// ErrParticipantNotFound is a domain-specific error returned when a participant is not found.
var ErrParticipantNotFound = errors.New("participant not found")

// ErrNameTaken is returned by Create/Update when the unique name constraint is
// violated. Name uniqueness is enforced by the store, not by a read-then-write
// check, so two concurrent sign-ups with the same name cannot both succeed.
var ErrNameTaken = errors.New("participant name already taken")

// ParticipantRepository defines the standard operations for participant persistence.
// The application layer depends on this interface, not the concrete implementation.
type ParticipantRepository interface {
	// FindByID retrieves a single participant by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Participant, error)

	// FindByName retrieves a single participant by their unique name.
	FindByName(ctx context.Context, name string) (*entity.Participant, error)

	// Create persists a new participant. The generated ID is written back to
	// the entity. Returns ErrNameTaken on a name collision.
	Create(ctx context.Context, participant *entity.Participant) error

	// Update modifies an existing participant record. Returns ErrNameTaken on
	// a name collision.
	Update(ctx context.Context, participant *entity.Participant) error

	// UpdatePassword replaces only the stored password hash for the given
	// participant, leaving every other column untouched. Returns
	// ErrParticipantNotFound when no such participant exists.
	UpdatePassword(ctx context.Context, participantID int64, passwordHash string) error
}
