// Package session implements the client's authorization plumbing: the route
// guards that gate every screen on session-token presence, and the one-shot
// bootstrap state machine that turns a stored refresh token or a redirect
// code into a usable playlist session.
//
// # Route guards
//
// [RequireAuth] and [RequireAnonymous] are synchronous presence tests over
// the token store, with no network calls and no token validation. A stale
// token passes the guard; the backend's per-request rejection handles that
// case reactively.
//
// # Bootstrap
//
// [Bootstrap.Run] is evaluated exactly once per playlist-screen mount. Its
// inputs (redirect code, refresh token, session token) are snapshotted
// together via [ReadInputs] before any decision is made, then [Resolve]
// picks one of three paths: hand off to the external authorization endpoint,
// exchange the one-time code, or reuse the stored refresh token. The
// distinguished backend failure (errorCode "1001") resolves to
// [StateReauthRequired], a single redirect decision with no user-visible
// notice; every other failure is logged and swallowed.
package session
