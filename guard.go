package authclient

import (
	"net/http"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// GuardAction is the outcome of a guard decision
type GuardAction int

const (
	// GuardAllow lets the protected handler run
	GuardAllow GuardAction = iota
	// GuardSignIn redirects to the sign-in page carrying the original URL
	GuardSignIn
	// GuardRedirect sends the user to a dashboard they are allowed to open
	GuardRedirect
)

// GuardDecision carries the action plus the target for redirecting actions
type GuardDecision struct {
	Action GuardAction
	Target string
}

// UserResolver extracts the authenticated user for a request, nil when the
// caller is unauthenticated.
type UserResolver func(c router.Context) *User

// RouteGuard wraps protected routes. Unauthenticated callers are redirected
// to sign-in with the original URL as the post-auth redirect; authenticated
// callers without the required account type are sent to their own dashboard
// (or a fixed fallback). The protected handler never runs for either.
type RouteGuard struct {
	router      *AccountRouter
	resolve     UserResolver
	fallbackURL string
	Debug       bool
	Logger      Logger
}

// GuardOption configures the RouteGuard
type GuardOption func(*RouteGuard)

// WithGuardFallbackURL overrides the redirect target for authorized-but-wrong
// account types. Empty means the user's own destination.
func WithGuardFallbackURL(url string) GuardOption {
	return func(g *RouteGuard) {
		g.fallbackURL = url
	}
}

// WithGuardLogger overrides the guard logger
func WithGuardLogger(logger Logger) GuardOption {
	return func(g *RouteGuard) {
		if logger != nil {
			g.Logger = logger
		}
	}
}

// NewRouteGuard builds a guard over the account router and user resolver
func NewRouteGuard(accountRouter *AccountRouter, resolve UserResolver, opts ...GuardOption) *RouteGuard {
	g := &RouteGuard{
		router:  accountRouter,
		resolve: resolve,
		Logger:  defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Decide is the pure authorization core. currentURL is carried into the
// sign-in URL so the user lands back where they started.
func (g *RouteGuard) Decide(user *User, required AccountType, currentURL string) GuardDecision {
	if user == nil {
		return GuardDecision{
			Action: GuardSignIn,
			Target: g.router.BuildAuthURL(ModeSignIn, required, currentURL),
		}
	}

	if required != "" && !g.router.CanUserAccessDashboard(user, required) {
		target := g.fallbackURL
		if target == "" {
			target = g.router.DestinationURL(user.AccountType, "")
		}
		return GuardDecision{Action: GuardRedirect, Target: target}
	}

	return GuardDecision{Action: GuardAllow}
}

// Protected returns middleware enforcing the required account type. An empty
// required type only enforces authentication.
func (g *RouteGuard) Protected(required AccountType) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			user := g.resolve(c)
			decision := g.Decide(user, required, c.OriginalURL())

			if g.Debug {
				g.Logger.Debug("route guard decision required=%s action=%d %s",
					required,
					decision.Action,
					print.MaybePrettyJSON(map[string]any{
						"target": decision.Target,
						"path":   c.OriginalURL(),
					}),
				)
			}

			switch decision.Action {
			case GuardSignIn:
				g.Logger.Info("unauthenticated request to %s, redirecting to sign-in", c.OriginalURL())
				return c.Redirect(decision.Target, redirectStatus(c))
			case GuardRedirect:
				g.Logger.Info("account type not allowed for %s, redirecting", c.OriginalURL())
				return c.Redirect(decision.Target, redirectStatus(c))
			default:
				return next(c)
			}
		}
	}
}

func redirectStatus(c router.Context) int {
	if c.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
