package authclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/sunnypayments/go-auth-client"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := authclient.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.sunnypayments.com", cfg.GetAPIBaseURL())
	assert.Equal(t, "https://auth.sunnypayments.com", cfg.GetAuthDomain())
	assert.Equal(t, "/dashboard", cfg.GetDashboardPath())
	assert.Equal(t, authclient.DefaultTrustedDomains, cfg.GetTrustedDomains())

	destinations := cfg.GetDestinations()
	assert.Equal(t, "https://app.sunnypayments.com", destinations[authclient.AccountTypeIndividual])
	assert.Equal(t, "https://business.sunnypayments.com", destinations[authclient.AccountTypeBusiness])
	assert.Equal(t, "https://institutions.sunnypayments.com", destinations[authclient.AccountTypeInstitution])
	assert.Equal(t, "https://developers.sunnypayments.com", destinations[authclient.AccountTypeDeveloper])
	assert.Equal(t, "https://admin.sunnypayments.com", destinations[authclient.AccountTypeAdmin])
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SUNNY_API_URL", "https://api.staging.sunnypayments.com")
	t.Setenv("SUNNY_AUTH_DOMAIN", "https://auth.staging.sunnypayments.com")
	t.Setenv("SUNNY_TRUSTED_DOMAINS", "staging.sunnypayments.com,localhost")
	t.Setenv("SUNNY_DEST_BUSINESS", "https://business.staging.sunnypayments.com")

	cfg, err := authclient.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.staging.sunnypayments.com", cfg.GetAPIBaseURL())
	assert.Equal(t, "https://auth.staging.sunnypayments.com", cfg.GetAuthDomain())
	assert.Equal(t, []string{"staging.sunnypayments.com", "localhost"}, cfg.GetTrustedDomains())
	assert.Equal(t, "https://business.staging.sunnypayments.com", cfg.GetDestinations()[authclient.AccountTypeBusiness])
}

func TestTrustedDomainsCopyIsolated(t *testing.T) {
	cfg, err := authclient.LoadConfig()
	require.NoError(t, err)

	first := cfg.GetTrustedDomains()
	first[0] = "mutated.example.com"

	second := cfg.GetTrustedDomains()
	assert.NotEqual(t, "mutated.example.com", second[0])
}
