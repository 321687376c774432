package service

// TokenService issues and validates the access tokens handed out at sign-in.
type TokenService interface {
	// Generate creates a signed access token for the participant.
	Generate(participantID int64, roles []string) (string, error)

	// Validate parses and verifies a token string, returning the embedded
	// participant ID and roles.
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims is the validated content of an access token.
type TokenClaims struct {
	ParticipantID int64
	Roles         []string
}
