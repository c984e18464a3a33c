package authclient

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeSessionExpired   = "SESSION_EXPIRED"
	textCodeNoRefreshToken   = "NO_REFRESH_TOKEN"
	textCodeRequestFailed    = "AUTH_REQUEST_FAILED"
	textCodeRequestRejected  = "AUTH_REQUEST_REJECTED"
	textCodeTokenInvalid     = "TOKEN_INVALID"
	textCodeNotInitialized   = "SESSION_NOT_INITIALIZED"
	textCodeInvalidArguments = "INVALID_AUTH_PAYLOAD"
)

// ErrSessionExpired is returned when a stored session is past its expiry and
// could not be refreshed.
var ErrSessionExpired = goerrors.New("session expired", goerrors.CategoryAuth).
	WithTextCode(textCodeSessionExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoRefreshToken is returned when a refresh is requested but no refresh
// token is available locally.
var ErrNoRefreshToken = goerrors.New("no refresh token available", goerrors.CategoryAuth).
	WithTextCode(textCodeNoRefreshToken).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid is returned when local token validation fails for a reason
// other than expiry.
var ErrTokenInvalid = goerrors.New("invalid access token", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenInvalid).
	WithCode(goerrors.CodeUnauthorized)

// ErrNotInitialized is returned when session state is consumed before
// Initialize has settled.
var ErrNotInitialized = goerrors.New("session manager not initialized", goerrors.CategoryOperation).
	WithTextCode(textCodeNotInitialized)

// NewRequestError wraps a transport-level failure (non-2xx status) with the
// server-supplied or status-line message.
func NewRequestError(status int, message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryOperation).
		WithTextCode(textCodeRequestFailed).
		WithCode(status)
}

// NewRejectedError wraps an application-level rejection (success=false with
// an error object in the body).
func NewRejectedError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithTextCode(textCodeRequestRejected).
		WithCode(goerrors.CodeUnauthorized)
}

func invalidPayload(err error) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid auth payload").
		WithTextCode(textCodeInvalidArguments).
		WithCode(goerrors.CodeBadRequest)
}

// IsRequestError will check for transport-level failures
func IsRequestError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == textCodeRequestFailed
}

// IsAuthError will check for authentication-category failures
func IsAuthError(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryAuth
}
