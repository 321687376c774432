// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Participant is the core entity of the system: any account holder, rider or
// driver. Name is unique across all participants and doubles as the sign-in
// identifier.
type Participant struct {
	ID            int64          // Surrogate integer key assigned by the store.
	Name          string         // Unique display name, used for sign-in.
	PasswordHash  string         // bcrypt hash of the participant's password.
	Email         string         // Contact email.
	Phone         string         // Contact phone number.
	Role          Role           // Capability tag: rider or driver.
	DriverProfile *DriverProfile // Nil unless Role is RoleDriver.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDriver reports whether the participant holds the driver role.
func (p *Participant) IsDriver() bool {
	return p.Role == RoleDriver
}
