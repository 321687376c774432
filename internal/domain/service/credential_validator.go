package service

// CredentialValidator checks the syntactic validity of sign-up credentials.
// The rule set (password length bounds, email/phone formats) is configuration,
// not code; implementations read it from the application config.
type CredentialValidator interface {
	// ValidateCredentials checks the full credential set for sign-up.
	// A nil return means all fields are acceptable.
	ValidateCredentials(password, email, phone string) error

	// ValidatePassword checks a single password against the policy.
	ValidatePassword(password string) error
}
