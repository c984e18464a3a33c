package authclient

import (
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// JWKSValidator verifies access tokens against the auth server's JWK Set.
// Wiring it into a SessionManager (WithTokenValidator) makes a stored session
// with a token the server no longer recognizes take the refresh path instead
// of being trusted locally.
type JWKSValidator struct {
	jwks   *keyfunc.JWKS
	logger Logger
}

var _ TokenValidator = (*JWKSValidator)(nil)

// NewJWKSValidator fetches the JWK Set from jwksURL and keeps it refreshed
// in the background until Close is called.
func NewJWKSValidator(jwksURL string, logger Logger) (*JWKSValidator, error) {
	if logger == nil {
		logger = defLogger{}
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			logger.Error("background JWKS refresh failed: %s", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to fetch JWK set").
			WithTextCode(textCodeTokenInvalid)
	}

	return &JWKSValidator{jwks: jwks, logger: logger}, nil
}

// Validate parses and verifies the token signature and registered claims
func (v *JWKSValidator) Validate(tokenString string) error {
	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc)
	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return ErrSessionExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}

// Close stops the background JWKS refresh
func (v *JWKSValidator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
