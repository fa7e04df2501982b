package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedTestToken(t, jwt.MapClaims{
		"sub":   "u1",
		"email": "user@x.com",
		"exp":   exp.Unix(),
	})

	claims, ok := parseClaims(token)
	require.True(t, ok)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "user@x.com", claims.Email)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	assert.False(t, claims.Expired())
}

func TestParseClaims_ExpiredToken(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	claims, ok := parseClaims(token)
	require.True(t, ok)
	assert.True(t, claims.Expired())
}

func TestParseClaims_NoExpiry(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"sub": "u1"})

	claims, ok := parseClaims(token)
	require.True(t, ok)
	assert.False(t, claims.Expired())
}

func TestParseClaims_OpaqueToken(t *testing.T) {
	_, ok := parseClaims("not-a-jwt")
	assert.False(t, ok)
}
