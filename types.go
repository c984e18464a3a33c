package authclient

import (
	"context"
	"fmt"
	"time"
)

// Logger is the minimal logging surface consumed by the SDK
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Storage is the persistence capability backing the token store. Browser
// localStorage, files, sqlite, and redis all fit behind it. Implementations
// treat missing keys as ("", false) and never fabricate errors for absence.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenStore owns the persisted token bytes and serialized user/session.
// Every method is safe to call with no storage attached, operations become
// no-ops returning zero values.
type TokenStore interface {
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	SetTokens(ctx context.Context, access, refresh string)
	ClearTokens(ctx context.Context)
	StoreSession(ctx context.Context, user *User, session *Session)
	StoredUser(ctx context.Context) *User
	StoredSession(ctx context.Context) *Session
}

// Platform abstracts the host environment: where the process runs, what
// referred it, and how to perform a top-level navigation. Non-browser hosts
// plug in a no-op implementation so the core stays testable.
type Platform interface {
	Hostname() string
	Referrer() string
	Navigate(url string)
	NavigatePath(path string)
}

// TokenValidator validates access tokens locally without tying callers to a
// specific signing implementation.
type TokenValidator interface {
	Validate(tokenString string) error
}

// TokenValidatorFunc adapts a function into a TokenValidator.
type TokenValidatorFunc func(tokenString string) error

// Validate satisfies the TokenValidator interface.
func (f TokenValidatorFunc) Validate(tokenString string) error {
	if f == nil {
		return ErrTokenInvalid
	}
	return f(tokenString)
}

// Clock lets tests pin the reference instant used for expiry decisions
type Clock func() time.Time

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHCLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
