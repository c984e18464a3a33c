package authclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry claim from an access token without
// verifying its signature. Tokens are otherwise opaque to the SDK; this is
// only used to recover a missing session expiry from the token itself.
func TokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, ErrTokenInvalid
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrTokenInvalid
	}
	return exp.Time, nil
}

// SessionFromToken builds a minimal session from a bearer token, deriving
// the expiry from the token claims. Useful when a caller holds only a raw
// token (e.g. received out of band) and wants the SDK to manage it.
func SessionFromToken(accessToken, refreshToken string) (*Session, error) {
	expiresAt, err := TokenExpiry(accessToken)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
