package authclient

import (
	"net/url"
	"strings"
)

// AuthMode selects between the sign-in and sign-up pages
type AuthMode string

const (
	ModeSignIn AuthMode = "signin"
	ModeSignUp AuthMode = "signup"
)

// Referrer hostname prefixes used to infer the account type when no explicit
// type parameter is present.
var referrerPrefixes = []struct {
	prefix      string
	accountType AccountType
}{
	{"business.", AccountTypeBusiness},
	{"institutions.", AccountTypeInstitution},
	{"developers.", AccountTypeDeveloper},
	{"admin.", AccountTypeAdmin},
	{"app.", AccountTypeIndividual},
}

// AccountRouter maps account types to destinations and builds auth-page URLs.
// It owns no mutable state; the destination table and trusted set are copied
// at construction and never change.
type AccountRouter struct {
	destinations map[AccountType]string
	trusted      []string
	authDomain   string
	dashboard    string
	platform     Platform
	logger       Logger
}

// RouterOption configures the AccountRouter
type RouterOption func(*AccountRouter)

// WithRouterLogger overrides the router logger
func WithRouterLogger(logger Logger) RouterOption {
	return func(r *AccountRouter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewAccountRouter builds a router from config and platform
func NewAccountRouter(cfg Config, platform Platform, opts ...RouterOption) *AccountRouter {
	r := &AccountRouter{
		destinations: cfg.GetDestinations(),
		trusted:      cfg.GetTrustedDomains(),
		authDomain:   cfg.GetAuthDomain(),
		dashboard:    cfg.GetDashboardPath(),
		platform:     platform,
		logger:       defLogger{},
	}
	if r.dashboard == "" {
		r.dashboard = "/dashboard"
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// trustedHost reports whether host exactly equals, or is a dot-suffixed
// subdomain of, an entry in the allow list.
func (r *AccountRouter) trustedHost(host string) bool {
	for _, domain := range r.trusted {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// DestinationURL resolves the post-auth destination for an account type.
// A custom redirect is honored only when it parses as an absolute URL on a
// trusted host; anything else, malformed URLs included, silently falls back
// to the static table. This is a security boundary: untrusted targets are
// never an error, they are simply ignored.
func (r *AccountRouter) DestinationURL(accountType AccountType, customRedirect string) string {
	if customRedirect != "" {
		if u, err := url.Parse(customRedirect); err == nil && u.IsAbs() && u.Hostname() != "" {
			if r.trustedHost(u.Hostname()) {
				return customRedirect
			}
			r.logger.Debug("ignoring untrusted redirect target %s", u.Hostname())
		}
	}
	return r.destinations[accountType]
}

// BuildAuthURL constructs <authDomain>/<mode> with type, redirect, and
// source query parameters. Source is the platform hostname and is only set
// when the platform reports one.
func (r *AccountRouter) BuildAuthURL(mode AuthMode, accountType AccountType, redirectURL string) string {
	u, err := url.Parse(r.authDomain)
	if err != nil {
		u = &url.URL{Scheme: "https", Host: r.authDomain}
	}
	u.Path = "/" + string(mode)

	q := u.Query()
	if accountType != "" {
		q.Set("type", string(accountType))
	}
	if redirectURL != "" {
		q.Set("redirect", redirectURL)
	}
	if r.platform != nil {
		if source := r.platform.Hostname(); source != "" {
			q.Set("source", source)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// CanUserAccessDashboard reports whether user may open the dashboard of the
// requested type. Admins bypass the check for every dashboard; no other
// account type receives implicit elevated access.
func (r *AccountRouter) CanUserAccessDashboard(user *User, requested AccountType) bool {
	if user == nil {
		return false
	}
	if user.AccountType == AccountTypeAdmin {
		return true
	}
	return user.AccountType == requested
}

// DetectAccountTypeFromParams infers the account type from an explicit
// `type` query parameter, falling back to referrer-hostname heuristics.
// Unrecognized or malformed input is never an error, just "no signal".
func (r *AccountRouter) DetectAccountTypeFromParams(params url.Values) (AccountType, bool) {
	if raw := params.Get("type"); raw != "" {
		if t, ok := ParseAccountType(raw); ok {
			return t, true
		}
	}

	if r.platform == nil {
		return "", false
	}
	referrer := r.platform.Referrer()
	if referrer == "" {
		return "", false
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	host := u.Hostname()
	for _, entry := range referrerPrefixes {
		if strings.HasPrefix(host, entry.prefix) {
			return entry.accountType, true
		}
	}
	return "", false
}

// RedirectToSignIn performs a hard navigation to the sign-in page. Sign-in
// may live on a different origin, so this is never an in-app route change.
func (r *AccountRouter) RedirectToSignIn(accountType AccountType, redirectURL string) {
	r.navigate(r.BuildAuthURL(ModeSignIn, accountType, redirectURL))
}

// RedirectToSignUp performs a hard navigation to the sign-up page
func (r *AccountRouter) RedirectToSignUp(accountType AccountType, redirectURL string) {
	r.navigate(r.BuildAuthURL(ModeSignUp, accountType, redirectURL))
}

// HandleAuthSuccess routes a freshly authenticated user. Cross-host targets
// get a full navigation; same-host targets get an in-app path change to the
// custom redirect's path or the default dashboard path. URL-parse failures
// fall toward the explicit full navigation.
func (r *AccountRouter) HandleAuthSuccess(user *User, customRedirect string) {
	if user == nil || r.platform == nil {
		return
	}
	destination := r.DestinationURL(user.AccountType, customRedirect)

	target, err := url.Parse(destination)
	if err != nil || target.Hostname() == "" {
		r.navigate(destination)
		return
	}

	if r.platform.Hostname() != target.Hostname() {
		r.navigate(destination)
		return
	}

	path := r.dashboard
	if customRedirect != "" {
		if u, err := url.Parse(customRedirect); err == nil && u.Path != "" {
			path = u.Path
		}
	}
	r.platform.NavigatePath(path)
}

// RedirectAuthenticated sends an already-authenticated visitor on an auth
// page to their destination, unless they are already there.
func (r *AccountRouter) RedirectAuthenticated(user *User, customRedirect, currentURL string) {
	if user == nil {
		return
	}
	destination := r.DestinationURL(user.AccountType, customRedirect)
	if currentURL != "" && strings.HasPrefix(currentURL, destination) {
		return
	}
	r.navigate(destination)
}

func (r *AccountRouter) navigate(url string) {
	if r.platform == nil {
		return
	}
	r.platform.Navigate(url)
}
