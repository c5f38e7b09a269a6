package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Claims must satisfy the claims interface echo-jwt hands to its
// NewClaimsFunc.
var _ jwt.Claims = (*Claims)(nil)

func TestJWTService_AccessTokenRoundtrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	principalID := uuid.New().String()

	token, err := svc.GenerateAccessToken(principalID, "driver@example.com", "driver")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, principalID, claims.PrincipalID)
	assert.Equal(t, "driver@example.com", claims.Email)
	assert.Equal(t, "driver", claims.Role)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(uuid.New().String(), "driver@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(uuid.New().String(), "driver@example.com", "driver")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}
