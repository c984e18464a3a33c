// Package authclient is a client SDK for the Sunny authentication API. It
// maintains a local auth session (access/refresh tokens plus a read-only user
// profile) in pluggable persistent storage and makes account-type-based
// routing decisions for multi-dashboard deployments.
//
// Session lifecycle:
//   - SessionManager owns the in-memory AuthState and derives it from the
//     TokenStore on Initialize: a stored, unexpired session authenticates
//     without a network call; an expired one triggers exactly one refresh
//     attempt before falling back to unauthenticated.
//   - Mutating operations (SignIn, SignUp, SocialAuth, SignOut,
//     RefreshSession) are serialized by a single-flight lock so overlapping
//     calls cannot interleave their state writes.
//
// Routing:
//   - AccountRouter maps an account type to its canonical dashboard URL and
//     only honors custom redirects whose host is on the trusted-domain allow
//     list; everything else silently falls back to the safe default.
//   - RouteGuard produces middleware that redirects unauthenticated callers
//     to sign-in (carrying the original URL) and sends authenticated callers
//     with the wrong account type to their own dashboard.
//
// Storage:
//   - TokenStore persists under fixed namespaced keys through the Storage
//     capability. In-memory, sqlite (Bun), and redis backends ship with the
//     package; all of them tolerate absent or malformed stored values.
package authclient
