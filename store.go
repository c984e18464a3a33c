package authclient

import (
	"context"
	"encoding/json"
)

// Storage keys are preserved verbatim for compatibility with existing
// deployments sharing the same persisted state.
const (
	StorageKeyAccessToken  = "sunny_access_token"
	StorageKeyRefreshToken = "sunny_refresh_token"
	StorageKeyUser         = "sunny_user"
	StorageKeySession      = "sunny_session"
)

// CredentialStore is the canonical TokenStore implementation over a Storage
// backend. A nil backend turns every operation into a no-op, which mirrors
// running without persistent storage (server rendering, tests).
type CredentialStore struct {
	storage Storage
	logger  Logger
}

var _ TokenStore = (*CredentialStore)(nil)

// NewCredentialStore returns a TokenStore over the given backend
func NewCredentialStore(storage Storage) *CredentialStore {
	return &CredentialStore{
		storage: storage,
		logger:  defLogger{},
	}
}

// WithLogger overrides the store logger
func (c *CredentialStore) WithLogger(logger Logger) *CredentialStore {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// AccessToken returns the persisted access token, or "" when absent
func (c *CredentialStore) AccessToken(ctx context.Context) string {
	if c.storage == nil {
		return ""
	}
	v, _ := c.storage.Get(ctx, StorageKeyAccessToken)
	return v
}

// RefreshToken returns the persisted refresh token, or "" when absent
func (c *CredentialStore) RefreshToken(ctx context.Context) string {
	if c.storage == nil {
		return ""
	}
	v, _ := c.storage.Get(ctx, StorageKeyRefreshToken)
	return v
}

// SetTokens persists the access token and, when present, the refresh token
func (c *CredentialStore) SetTokens(ctx context.Context, access, refresh string) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Set(ctx, StorageKeyAccessToken, access); err != nil {
		c.logger.Error("failed to persist access token: %s", err)
	}
	if refresh == "" {
		return
	}
	if err := c.storage.Set(ctx, StorageKeyRefreshToken, refresh); err != nil {
		c.logger.Error("failed to persist refresh token: %s", err)
	}
}

// ClearTokens removes every persisted credential and profile value
func (c *CredentialStore) ClearTokens(ctx context.Context) {
	if c.storage == nil {
		return
	}
	for _, key := range []string{
		StorageKeyAccessToken,
		StorageKeyRefreshToken,
		StorageKeyUser,
		StorageKeySession,
	} {
		if err := c.storage.Delete(ctx, key); err != nil {
			c.logger.Error("failed to clear stored value %s: %s", key, err)
		}
	}
}

// StoreSession persists the serialized user and session
func (c *CredentialStore) StoreSession(ctx context.Context, user *User, session *Session) {
	if c.storage == nil || user == nil || session == nil {
		return
	}
	if data, err := json.Marshal(user); err == nil {
		if err := c.storage.Set(ctx, StorageKeyUser, string(data)); err != nil {
			c.logger.Error("failed to persist user: %s", err)
		}
	}
	if data, err := json.Marshal(session); err == nil {
		if err := c.storage.Set(ctx, StorageKeySession, string(data)); err != nil {
			c.logger.Error("failed to persist session: %s", err)
		}
	}
}

// StoredUser returns the persisted user profile. Malformed stored JSON is
// treated as absence, never as an error.
func (c *CredentialStore) StoredUser(ctx context.Context) *User {
	if c.storage == nil {
		return nil
	}
	raw, ok := c.storage.Get(ctx, StorageKeyUser)
	if !ok || raw == "" {
		return nil
	}
	user := &User{}
	if err := json.Unmarshal([]byte(raw), user); err != nil {
		c.logger.Debug("discarding malformed stored user: %s", err)
		return nil
	}
	return user
}

// StoredSession returns the persisted session. Malformed stored JSON is
// treated as absence, never as an error.
func (c *CredentialStore) StoredSession(ctx context.Context) *Session {
	if c.storage == nil {
		return nil
	}
	raw, ok := c.storage.Get(ctx, StorageKeySession)
	if !ok || raw == "" {
		return nil
	}
	session := &Session{}
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		c.logger.Debug("discarding malformed stored session: %s", err)
		return nil
	}
	return session
}
