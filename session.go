package authclient

import (
	"context"
	"sync"
	"time"
)

// SessionState names the lifecycle phase of the local session.
type SessionState string

const (
	StateUninitialized   SessionState = "uninitialized"
	StateLoading         SessionState = "loading"
	StateAuthenticated   SessionState = "authenticated"
	StateUnauthenticated SessionState = "unauthenticated"
)

// AuthState is the derived, in-memory session snapshot handed to observers.
// Invariant: IsAuthenticated == (User != nil && Session != nil).
type AuthState struct {
	User            *User
	Session         *Session
	IsLoading       bool
	IsAuthenticated bool
}

// StateListener receives a snapshot after every settled transition
type StateListener func(AuthState)

// SessionManager owns the in-memory AuthState and derives it from the token
// store plus expiry. It is constructed once per process by the composition
// root and passed to consumers explicitly; there is no package-level
// singleton. Multiple managers do not share in-memory state and must each
// re-derive it from the store.
type SessionManager struct {
	client    *Client
	store     TokenStore
	logger    Logger
	sink      ActivitySink
	validator TokenValidator
	now       Clock

	// op serializes mutating operations (single-flight) so e.g. a SignOut
	// cannot interleave with a RefreshSession
	op sync.Mutex

	mu        sync.RWMutex
	state     SessionState
	snapshot  AuthState
	listeners []StateListener
}

// SessionOption configures the SessionManager
type SessionOption func(*SessionManager)

// WithSessionLogger overrides the manager logger
func WithSessionLogger(logger Logger) SessionOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithActivitySink configures an ActivitySink for emitting auth events
func WithActivitySink(sink ActivitySink) SessionOption {
	return func(m *SessionManager) {
		m.sink = normalizeActivitySink(sink)
	}
}

// WithClock injects a custom clock (useful for tests)
func WithClock(clock Clock) SessionOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithTokenValidator adds local validation of stored access tokens during
// initialization. A validation failure is treated like an expired session
// (refresh path), never a hard error.
func WithTokenValidator(v TokenValidator) SessionOption {
	return func(m *SessionManager) {
		m.validator = v
	}
}

// NewSessionManager returns an uninitialized manager over client and store
func NewSessionManager(client *Client, store TokenStore, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		client: client,
		store:  store,
		logger: defLogger{},
		sink:   noopActivitySink{},
		now:    time.Now,
		state:  StateUninitialized,
		snapshot: AuthState{
			IsLoading: true,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// State returns the current snapshot by value
func (m *SessionManager) State() AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// SessionState returns the lifecycle phase
func (m *SessionManager) SessionState() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the authenticated user, or nil
func (m *SessionManager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot.User
}

// OnChange registers a listener invoked after every settled transition.
// Listeners receive snapshots by value and must guard against their own
// lifecycle; the manager has no cancellation primitive.
func (m *SessionManager) OnChange(fn StateListener) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *SessionManager) setState(state SessionState, user *User, session *Session, loading bool) {
	m.mu.Lock()
	m.state = state
	m.snapshot = AuthState{
		User:            user,
		Session:         session,
		IsLoading:       loading,
		IsAuthenticated: user != nil && session != nil,
	}
	snapshot := m.snapshot
	listeners := make([]StateListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (m *SessionManager) setLoading(loading bool) {
	m.mu.Lock()
	prev := m.snapshot
	m.snapshot = AuthState{
		User:            prev.User,
		Session:         prev.Session,
		IsLoading:       loading,
		IsAuthenticated: prev.IsAuthenticated,
	}
	if loading {
		m.state = StateLoading
	} else if prev.IsAuthenticated {
		m.state = StateAuthenticated
	} else {
		m.state = StateUnauthenticated
	}
	snapshot := m.snapshot
	listeners := make([]StateListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (m *SessionManager) storedSessionUsable(ctx context.Context, session *Session) bool {
	if !session.Valid(m.now()) {
		return false
	}
	if m.validator == nil {
		return true
	}
	if err := m.validator.Validate(session.AccessToken); err != nil {
		m.logger.Debug("stored access token failed local validation: %s", err)
		return false
	}
	return true
}

// Initialize derives the auth state from the token store, refreshing at most
// once when the stored session is expired. It never leaves IsLoading set and
// fails safe to unauthenticated on any unexpected failure.
func (m *SessionManager) Initialize(ctx context.Context) {
	m.op.Lock()
	defer m.op.Unlock()

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("auth initialization panicked: %v", r)
			m.setState(StateUnauthenticated, nil, nil, false)
		}
	}()

	storedUser := m.store.StoredUser(ctx)
	storedSession := m.store.StoredSession(ctx)

	if storedUser != nil && storedSession != nil {
		if m.storedSessionUsable(ctx, storedSession) {
			m.setState(StateAuthenticated, storedUser, storedSession, false)
			return
		}

		// one-shot refresh; failure here does not clear the store, only an
		// explicit sign-out or a failed RefreshSession call does
		res, err := m.client.RefreshSession(ctx)
		if err == nil && res.Established() {
			m.emit(ctx, ActivityEventRefreshSuccess, res.User.ID.String(), nil)
			m.setState(StateAuthenticated, res.User, res.Session, false)
			return
		}
		if err != nil {
			m.logger.Info("session refresh during initialization failed: %s", err)
			m.emit(ctx, ActivityEventRefreshFailure, storedUser.ID.String(), map[string]any{
				"error": err.Error(),
			})
		}
	}

	m.setState(StateUnauthenticated, nil, nil, false)
}

func (m *SessionManager) establish(ctx context.Context, res *AuthResponse, okEvent, failEvent ActivityEventType) {
	if res.Established() {
		m.emit(ctx, okEvent, res.User.ID.String(), nil)
		m.setState(StateAuthenticated, res.User, res.Session, false)
		return
	}
	// partial success never authenticates; prior auth state is preserved
	m.emit(ctx, failEvent, "", map[string]any{"partial": true})
	m.setLoading(false)
}

// SignIn performs credential sign-in. On transport failure the error is
// returned to the caller so UI layers can display it.
func (m *SessionManager) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	m.op.Lock()
	defer m.op.Unlock()

	m.setLoading(true)
	res, err := m.client.SignIn(ctx, req)
	if err != nil {
		m.emit(ctx, ActivityEventSignInFailure, "", map[string]any{"error": err.Error()})
		m.setLoading(false)
		return nil, err
	}
	m.establish(ctx, res, ActivityEventSignInSuccess, ActivityEventSignInFailure)
	return res, nil
}

// SignUp performs account creation
func (m *SessionManager) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	m.op.Lock()
	defer m.op.Unlock()

	m.setLoading(true)
	res, err := m.client.SignUp(ctx, req)
	if err != nil {
		m.emit(ctx, ActivityEventSignUpFailure, "", map[string]any{"error": err.Error()})
		m.setLoading(false)
		return nil, err
	}
	m.establish(ctx, res, ActivityEventSignUpSuccess, ActivityEventSignUpFailure)
	return res, nil
}

// SocialAuth performs federated sign-in
func (m *SessionManager) SocialAuth(ctx context.Context, req SocialAuthRequest) (*AuthResponse, error) {
	m.op.Lock()
	defer m.op.Unlock()

	m.setLoading(true)
	res, err := m.client.SocialAuth(ctx, req)
	if err != nil {
		m.emit(ctx, ActivityEventSocialFailure, "", map[string]any{"error": err.Error()})
		m.setLoading(false)
		return nil, err
	}
	m.establish(ctx, res, ActivityEventSocialSuccess, ActivityEventSocialFailure)
	return res, nil
}

// SignOut clears the local session unconditionally. A server-side failure
// never leaves the client authenticated; calling it twice is safe.
func (m *SessionManager) SignOut(ctx context.Context) {
	m.op.Lock()
	defer m.op.Unlock()
	m.signOutLocked(ctx)
}

func (m *SessionManager) signOutLocked(ctx context.Context) {
	m.setLoading(true)
	userID := ""
	if u := m.State().User; u != nil {
		userID = u.ID.String()
	}
	if err := m.client.SignOut(ctx); err != nil {
		m.logger.Debug("server-side sign out failed, local state cleared anyway: %s", err)
	}
	m.emit(ctx, ActivityEventSignOut, userID, nil)
	m.setState(StateUnauthenticated, nil, nil, false)
}

// RefreshSession exchanges the refresh token for a new pair. Failure runs
// the full sign-out clearing path before the error is returned, so stale
// tokens are never left behind.
func (m *SessionManager) RefreshSession(ctx context.Context) (*AuthResponse, error) {
	m.op.Lock()
	defer m.op.Unlock()

	res, err := m.client.RefreshSession(ctx)
	if err != nil {
		m.emit(ctx, ActivityEventRefreshFailure, "", map[string]any{"error": err.Error()})
		m.signOutLocked(ctx)
		return nil, err
	}
	if res.Established() {
		m.emit(ctx, ActivityEventRefreshSuccess, res.User.ID.String(), nil)
		m.setState(StateAuthenticated, res.User, res.Session, false)
	}
	return res, nil
}

// ResetPassword initiates a password reset without touching AuthState
func (m *SessionManager) ResetPassword(ctx context.Context, req PasswordResetRequest) (*AuthResponse, error) {
	return m.client.ResetPassword(ctx, req)
}

// ConfirmPasswordReset completes a password reset without touching AuthState
func (m *SessionManager) ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirmRequest) (*AuthResponse, error) {
	return m.client.ConfirmPasswordReset(ctx, req)
}

// SetupMFA registers a second factor without touching AuthState
func (m *SessionManager) SetupMFA(ctx context.Context, req MFASetupRequest) (*AuthResponse, error) {
	return m.client.SetupMFA(ctx, req)
}

// VerifyMFA verifies a second-factor code without touching AuthState
func (m *SessionManager) VerifyMFA(ctx context.Context, code string, method MFAMethod) (*AuthResponse, error) {
	return m.client.VerifyMFA(ctx, code, method)
}

// CurrentUser fetches the profile from the API, nil on failure
func (m *SessionManager) CurrentUser(ctx context.Context) *User {
	return m.client.CurrentUser(ctx)
}

func (m *SessionManager) emit(ctx context.Context, eventType ActivityEventType, userID string, metadata map[string]any) {
	event := ActivityEvent{
		EventType:  eventType,
		UserID:     userID,
		Metadata:   metadata,
		OccurredAt: m.now(),
	}
	if err := m.sink.Record(ctx, event); err != nil {
		m.logger.Error("activity sink failed for %s: %s", eventType, err)
	}
}
