package session

import "github.com/plx-dev/plx/internal/store"

// Route identifies a navigable screen in the terminal client.
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RoutePlaylists Route = "playlists"
	RouteSongs     Route = "songs"
)

// Decision is the result of evaluating a route guard.
type Decision struct {
	Allow      bool
	RedirectTo Route
}

// TokenReader is the subset of the token store the guards need.
type TokenReader interface {
	Get(name string) (string, error)
}

// RequireAuth admits the caller when a session token is present, otherwise
// redirects to the login screen. Presence is the only criterion.
func RequireAuth(tokens TokenReader) Decision {
	if hasSessionToken(tokens) {
		return Decision{Allow: true}
	}

	return Decision{RedirectTo: RouteLogin}
}

// RequireAnonymous admits the caller only when no session token is present,
// otherwise redirects to the playlist screen. Login and register are gated
// with this so an authenticated user never sees them.
func RequireAnonymous(tokens TokenReader) Decision {
	if hasSessionToken(tokens) {
		return Decision{RedirectTo: RoutePlaylists}
	}

	return Decision{Allow: true}
}

// hasSessionToken treats a read failure the same as an absent token.
func hasSessionToken(tokens TokenReader) bool {
	token, err := tokens.Get(store.KeySessionToken)
	if err != nil {
		return false
	}

	return token != ""
}
