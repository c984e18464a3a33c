package authclient_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "github.com/sunnypayments/go-auth-client"
)

func TestGuardDecideUnauthenticated(t *testing.T) {
	router := newTestRouter(t, authclient.NewMemoryPlatform("business.sunnypayments.com"))
	guard := authclient.NewRouteGuard(router, nil)

	decision := guard.Decide(nil, authclient.AccountTypeBusiness, "https://business.sunnypayments.com/reports")
	assert.Equal(t, authclient.GuardSignIn, decision.Action)

	u, err := url.Parse(decision.Target)
	require.NoError(t, err)
	assert.Equal(t, "auth.sunnypayments.com", u.Hostname())
	assert.Equal(t, "/signin", u.Path)
	assert.Equal(t, "business", u.Query().Get("type"))
	assert.Equal(t, "https://business.sunnypayments.com/reports", u.Query().Get("redirect"),
		"sign-in URL must carry the original URL so the user lands back where they started")
}

func TestGuardDecideWrongAccountType(t *testing.T) {
	router := newTestRouter(t, authclient.NewMemoryPlatform("business.sunnypayments.com"))
	guard := authclient.NewRouteGuard(router, nil)

	individual := &authclient.User{AccountType: authclient.AccountTypeIndividual}
	decision := guard.Decide(individual, authclient.AccountTypeBusiness, "https://business.sunnypayments.com/")

	assert.Equal(t, authclient.GuardRedirect, decision.Action)
	assert.Equal(t, "https://app.sunnypayments.com", decision.Target,
		"a wrong-type user is sent to their own dashboard, not an error page")
}

func TestGuardDecideFallbackURL(t *testing.T) {
	router := newTestRouter(t, nil)
	guard := authclient.NewRouteGuard(router, nil,
		authclient.WithGuardFallbackURL("https://app.sunnypayments.com/denied"),
	)

	individual := &authclient.User{AccountType: authclient.AccountTypeIndividual}
	decision := guard.Decide(individual, authclient.AccountTypeAdmin, "")

	assert.Equal(t, authclient.GuardRedirect, decision.Action)
	assert.Equal(t, "https://app.sunnypayments.com/denied", decision.Target)
}

func TestGuardDecideMatchingTypeAllowed(t *testing.T) {
	router := newTestRouter(t, nil)
	guard := authclient.NewRouteGuard(router, nil)

	business := &authclient.User{AccountType: authclient.AccountTypeBusiness}
	decision := guard.Decide(business, authclient.AccountTypeBusiness, "")
	assert.Equal(t, authclient.GuardAllow, decision.Action)
}

func TestGuardDecideAdminBypass(t *testing.T) {
	router := newTestRouter(t, nil)
	guard := authclient.NewRouteGuard(router, nil)

	admin := &authclient.User{AccountType: authclient.AccountTypeAdmin}
	for _, required := range []authclient.AccountType{
		authclient.AccountTypeIndividual,
		authclient.AccountTypeBusiness,
		authclient.AccountTypeInstitution,
		authclient.AccountTypeDeveloper,
		authclient.AccountTypeAdmin,
	} {
		decision := guard.Decide(admin, required, "")
		assert.Equal(t, authclient.GuardAllow, decision.Action, "required=%s", required)
	}
}

func TestGuardDecideEmptyRequiredOnlyChecksAuthentication(t *testing.T) {
	router := newTestRouter(t, nil)
	guard := authclient.NewRouteGuard(router, nil)

	individual := &authclient.User{AccountType: authclient.AccountTypeIndividual}
	decision := guard.Decide(individual, "", "")
	assert.Equal(t, authclient.GuardAllow, decision.Action)

	decision = guard.Decide(nil, "", "https://app.sunnypayments.com/account")
	assert.Equal(t, authclient.GuardSignIn, decision.Action)
}
