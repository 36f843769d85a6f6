package services_test

import (
	"testing"
	"time"

	"orderhub/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func issueToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateTokenAcceptsValidToken(t *testing.T) {
	auth := services.NewAuthService("secret")
	signed := issueToken(t, "secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := auth.ValidateToken(signed)
	assert.NoError(t, err)

	userID, err := auth.UserIDFromClaims(claims)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	auth := services.NewAuthService("secret")
	signed := issueToken(t, "other-secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := auth.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	auth := services.NewAuthService("secret")
	signed := issueToken(t, "secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := auth.ValidateToken(signed)
	assert.Error(t, err)
}

func TestUserIDFromClaimsRequiresNumericSubject(t *testing.T) {
	auth := services.NewAuthService("secret")

	_, err := auth.UserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = auth.UserIDFromClaims(jwt.MapClaims{"sub": "jane"})
	assert.Error(t, err)
}
