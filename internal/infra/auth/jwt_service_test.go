package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hailer/config"
)

func newTestJWTConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AccessTokenTTL: ttl},
	}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTestJWTConfig("", time.Minute))
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("test-secret", 15*time.Minute))
	require.NoError(t, err)

	token, err := svc.Generate(42, []string{"driver"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.ParticipantID)
	assert.Equal(t, []string{"driver"}, claims.Roles)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestJWTConfig("issuer-secret", time.Minute))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestJWTConfig("other-secret", time.Minute))
	require.NoError(t, err)

	token, err := issuer.Generate(7, []string{"rider"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("test-secret", -time.Minute))
	require.NoError(t, err)

	token, err := svc.Generate(7, []string{"rider"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig("test-secret", time.Minute))
	require.NoError(t, err)

	_, err = svc.Validate("not-a-token")
	assert.Error(t, err)
}
