package utils

import (
	"testing"
	"time"

	"brandbase/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	user := models.User{
		Email: "jane@example.com",
		Role:  models.UserRoleUser,
		Tier:  models.TierGold,
	}
	user.ID = "7d07f0a5-3f7b-4dc7-b0f8-3a1f3c2b9f6e"
	return user
}

func TestGenerateJWT_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	user := testUser()

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, "gold", claims.Tier)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWT_RejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateJWT(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestParseJWT_RejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	claims := Claims{
		UserID: "someone",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	_, err = ParseJWT(token)
	require.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	user := testUser()

	token, err := GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}
