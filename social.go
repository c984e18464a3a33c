package authclient

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/microsoft"
)

// SocialProviderConfig holds the OAuth2 app credentials for one provider
type SocialProviderConfig struct {
	Provider     Provider
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// OAuthConfig builds the x/oauth2 config for a provider. Unsupported
// providers (email, biometric-only platforms) return nil.
func (c SocialProviderConfig) OAuthConfig() *oauth2.Config {
	var endpoint oauth2.Endpoint
	switch c.Provider {
	case ProviderGoogle:
		endpoint = google.Endpoint
	case ProviderGithub:
		endpoint = github.Endpoint
	case ProviderMicrosoft:
		endpoint = microsoft.LiveConnectEndpoint
	default:
		return nil
	}

	scopes := c.Scopes
	if len(scopes) == 0 && c.Provider == ProviderGoogle {
		scopes = []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		}
	}

	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}
}

// AuthCodeURL returns the provider consent page URL for the given state
func (c SocialProviderConfig) AuthCodeURL(state string) string {
	cfg := c.OAuthConfig()
	if cfg == nil {
		return ""
	}
	return cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for provider tokens and wraps them
// in a SocialAuthRequest ready for SessionManager.SocialAuth.
func (c SocialProviderConfig) Exchange(ctx context.Context, code string, accountType AccountType) (SocialAuthRequest, error) {
	cfg := c.OAuthConfig()
	if cfg == nil {
		return SocialAuthRequest{}, invalidPayload(
			validation.NewError("validation_provider", "provider does not support OAuth code exchange"),
		)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return SocialAuthRequest{}, err
	}

	return SocialAuthRequest{
		Provider:     c.Provider,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		AccountType:  accountType,
	}, nil
}
