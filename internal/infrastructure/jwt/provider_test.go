package jwtinfra

import (
	"testing"

	"github.com/docucare-api/internal/config"
	"github.com/docucare-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", TokenExpiryDays: 2}
}

func TestNewProvider_RequiresSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{TokenExpiryDays: 2})
	assert.Error(t, err)
}

func TestSignAndVerify_RoundTrip(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	token, err := p.Sign("u1", domain.RolePatient)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RolePatient, claims.Role)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestSign_RejectsUnknownRole(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	_, err = p.Sign("u1", "Janitor")
	assert.Error(t, err)
}

func TestVerify_RejectsWrongSigningMethod(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	// alg=none token with otherwise valid-looking claims.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1", Role: domain.RolePatient})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	p, err := NewProvider(testConfig())
	require.NoError(t, err)

	token, err := p.Sign("u1", domain.RolePatient)
	require.NoError(t, err)

	_, err = p.Verify(token + "x")
	assert.Error(t, err)
}
