package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hailer/config"
)

func newTestValidator() *credentialValidator {
	return NewCredentialValidator(&config.Config{
		Credential: &config.CredentialPolicyConfig{
			MinPasswordLength: 8,
			MaxPasswordLength: 64,
			EmailRule:         "required,email",
			PhoneRule:         "required,e164",
		},
	}).(*credentialValidator)
}

func TestValidateCredentials(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		password string
		email    string
		phone    string
		wantErr  bool
	}{
		{"valid", "password123", "rider@example.com", "+14155550100", false},
		{"password too short", "short", "rider@example.com", "+14155550100", true},
		{"password too long", strings.Repeat("a", 65), "rider@example.com", "+14155550100", true},
		{"empty password", "", "rider@example.com", "+14155550100", true},
		{"malformed email", "password123", "not-an-email", "+14155550100", true},
		{"empty email", "password123", "", "+14155550100", true},
		{"phone without plus", "password123", "rider@example.com", "14155550100", true},
		{"empty phone", "password123", "rider@example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCredentials(tt.password, tt.email, tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword_BoundsAreInclusive(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidatePassword(strings.Repeat("a", 8)))
	assert.NoError(t, v.ValidatePassword(strings.Repeat("a", 64)))
	assert.Error(t, v.ValidatePassword(strings.Repeat("a", 7)))
	assert.Error(t, v.ValidatePassword(strings.Repeat("a", 65)))
}
