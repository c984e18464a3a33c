package authclient_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/sunnypayments/go-auth-client"
)

func TestSocialProviderOAuthConfig(t *testing.T) {
	google := authclient.SocialProviderConfig{
		Provider:    authclient.ProviderGoogle,
		ClientID:    "client-id",
		RedirectURL: "https://app.sunnypayments.com/oauth/callback",
	}
	cfg := google.OAuthConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "client-id", cfg.ClientID)
	assert.NotEmpty(t, cfg.Scopes, "google gets default profile scopes")

	github := authclient.SocialProviderConfig{Provider: authclient.ProviderGithub}
	require.NotNil(t, github.OAuthConfig())
	assert.Empty(t, github.OAuthConfig().Scopes)

	email := authclient.SocialProviderConfig{Provider: authclient.ProviderEmail}
	assert.Nil(t, email.OAuthConfig())
}

func TestSocialProviderAuthCodeURL(t *testing.T) {
	cfg := authclient.SocialProviderConfig{
		Provider:    authclient.ProviderGoogle,
		ClientID:    "client-id",
		RedirectURL: "https://app.sunnypayments.com/oauth/callback",
	}

	raw := cfg.AuthCodeURL("state-token")
	require.NotEmpty(t, raw)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "state-token", u.Query().Get("state"))
	assert.Equal(t, "client-id", u.Query().Get("client_id"))

	unsupported := authclient.SocialProviderConfig{Provider: authclient.ProviderEmail}
	assert.Empty(t, unsupported.AuthCodeURL("state"))
}

func TestSocialProviderExchangeUnsupported(t *testing.T) {
	cfg := authclient.SocialProviderConfig{Provider: authclient.ProviderEmail}
	_, err := cfg.Exchange(context.Background(), "code", authclient.AccountTypeIndividual)
	assert.Error(t, err)
}
