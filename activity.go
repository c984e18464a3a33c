package authclient

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventSignInSuccess  ActivityEventType = "auth.signin.success"
	ActivityEventSignInFailure  ActivityEventType = "auth.signin.failure"
	ActivityEventSignUpSuccess  ActivityEventType = "auth.signup.success"
	ActivityEventSignUpFailure  ActivityEventType = "auth.signup.failure"
	ActivityEventSocialSuccess  ActivityEventType = "auth.social.success"
	ActivityEventSocialFailure  ActivityEventType = "auth.social.failure"
	ActivityEventSignOut        ActivityEventType = "auth.signout"
	ActivityEventRefreshSuccess ActivityEventType = "auth.refresh.success"
	ActivityEventRefreshFailure ActivityEventType = "auth.refresh.failure"
)

// ActivityEvent captures audit-friendly information about an auth action.
type ActivityEvent struct {
	EventType  ActivityEventType
	UserID     string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events for auditing/telemetry purposes.
// Sinks run best-effort; failures are logged, never surfaced to callers.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
