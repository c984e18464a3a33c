package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// API endpoints, relative to the configured base URL.
const (
	EndpointSignIn       = "/api/auth/signin"
	EndpointSignUp       = "/api/auth/signup"
	EndpointSignOut      = "/api/auth/signout"
	EndpointRefresh      = "/api/auth/refresh"
	EndpointSocialAuth   = "/api/auth/social"
	EndpointResetPass    = "/api/auth/reset-password"
	EndpointConfirmReset = "/api/auth/confirm-reset"
	EndpointSetupMFA     = "/api/auth/mfa/setup"
	EndpointVerifyMFA    = "/api/auth/mfa/verify"
	EndpointMe           = "/api/auth/me"
)

// HTTPDoer lets callers swap the underlying HTTP client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the auth transport. It attaches bearer tokens, issues requests
// to the fixed endpoint set, and normalizes error handling. It never retries;
// retry-via-refresh lives in SessionManager and is one-shot.
type Client struct {
	baseURL string
	http    HTTPDoer
	store   TokenStore
	logger  Logger
	headers map[string]string

	// guards the persist-on-success side effect so no observer sees tokens
	// stored without the matching user/session, or vice versa
	mu sync.Mutex
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for requests
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithClientLogger overrides the transport logger
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a header to every request. Caller headers win over the
// defaults, including Authorization.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// NewClient returns an auth transport bound to baseURL and store
func NewClient(baseURL string, store TokenStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		store:   store,
		logger:  defLogger{},
		headers: map[string]string{},
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) request(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return invalidPayload(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return invalidPayload(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.store.AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		// network failures propagate unchanged, retry policy belongs to
		// the caller
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return NewRequestError(res.StatusCode, "failed to read response body")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		message := fmt.Sprintf("HTTP %d: %s", res.StatusCode, http.StatusText(res.StatusCode))
		var envelope AuthResponse
		if err := json.Unmarshal(data, &envelope); err == nil {
			if envelope.Message != "" {
				message = envelope.Message
			} else if envelope.Error != nil && envelope.Error.Message != "" {
				message = envelope.Error.Message
			}
		}
		c.logger.Debug("auth request rejected %s status %d", endpoint, res.StatusCode)
		return NewRequestError(res.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewRequestError(res.StatusCode, "malformed response body")
	}
	return nil
}

// persistOnSuccess stores tokens plus user/session atomically with respect
// to concurrent store readers.
func (c *Client) persistOnSuccess(ctx context.Context, res *AuthResponse) {
	if res == nil || !res.Success || res.Session == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetTokens(ctx, res.Session.AccessToken, res.Session.RefreshToken)
	if res.User != nil {
		c.store.StoreSession(ctx, res.User, res.Session)
	}
}

// SignIn performs credential sign-in, persisting the session on success
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointSignIn, req, res); err != nil {
		return nil, err
	}
	c.persistOnSuccess(ctx, res)
	return res, nil
}

// SignUp performs account creation, persisting the session on success
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointSignUp, req, res); err != nil {
		return nil, err
	}
	c.persistOnSuccess(ctx, res)
	return res, nil
}

// SocialAuth performs federated sign-in, persisting the session on success
func (c *Client) SocialAuth(ctx context.Context, req SocialAuthRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointSocialAuth, req, res); err != nil {
		return nil, err
	}
	c.persistOnSuccess(ctx, res)
	return res, nil
}

// SignOut invalidates the server-side session best-effort and always clears
// local storage, even when the network call fails.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.request(ctx, http.MethodPost, EndpointSignOut, nil, nil)
	if err != nil {
		c.logger.Error("sign out request failed: %s", err)
	}

	c.mu.Lock()
	c.store.ClearTokens(ctx)
	c.mu.Unlock()
	return err
}

// RefreshSession exchanges the stored refresh token for a new token pair,
// persisting the result on success.
func (c *Client) RefreshSession(ctx context.Context) (*AuthResponse, error) {
	refreshToken := c.store.RefreshToken(ctx)
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	body := map[string]string{"refreshToken": refreshToken}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointRefresh, body, res); err != nil {
		return nil, err
	}
	c.persistOnSuccess(ctx, res)
	return res, nil
}

// ResetPassword initiates a password reset. Side-channel, no session effect.
func (c *Client) ResetPassword(ctx context.Context, req PasswordResetRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointResetPass, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmPasswordReset completes a password reset. Side-channel.
func (c *Client) ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirmRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointConfirmReset, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// SetupMFA registers a second factor. Side-channel.
func (c *Client) SetupMFA(ctx context.Context, req MFASetupRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointSetupMFA, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// VerifyMFA verifies a second-factor code. Side-channel.
func (c *Client) VerifyMFA(ctx context.Context, code string, method MFAMethod) (*AuthResponse, error) {
	req := MFAVerifyRequest{Code: code, Method: method}
	if err := req.Validate(); err != nil {
		return nil, invalidPayload(err)
	}
	res := &AuthResponse{}
	if err := c.request(ctx, http.MethodPost, EndpointVerifyMFA, req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// CurrentUser fetches the authenticated profile, returning nil on any failure
func (c *Client) CurrentUser(ctx context.Context) *User {
	out := struct {
		User *User `json:"user"`
	}{}
	if err := c.request(ctx, http.MethodGet, EndpointMe, nil, &out); err != nil {
		c.logger.Debug("failed to fetch current user: %s", err)
		return nil
	}
	return out.User
}
