package authclient_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/sunnypayments/go-auth-client"
)

func signedTokenWithExpiry(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiry(t *testing.T) {
	expiresAt := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	tokenString := signedTokenWithExpiry(t, expiresAt)

	got, err := authclient.TokenExpiry(tokenString)
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(got))
}

func TestTokenExpiryMalformedToken(t *testing.T) {
	_, err := authclient.TokenExpiry("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, authclient.ErrTokenInvalid)
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = authclient.TokenExpiry(signed)
	assert.ErrorIs(t, err, authclient.ErrTokenInvalid)
}

func TestSessionFromToken(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	tokenString := signedTokenWithExpiry(t, expiresAt)

	session, err := authclient.SessionFromToken(tokenString, "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, tokenString, session.AccessToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
	assert.True(t, expiresAt.Equal(session.ExpiresAt))
	assert.True(t, session.Valid(time.Now()))
}

func TestSessionFromTokenInvalid(t *testing.T) {
	_, err := authclient.SessionFromToken("garbage", "")
	assert.ErrorIs(t, err, authclient.ErrTokenInvalid)
}
