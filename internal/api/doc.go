// Package api implements the HTTP client for the playlist backend.
//
// The backend is an opaque collaborator: it owns authentication, playlist
// persistence and the third-party streaming integration. This package holds
// one method per backend operation, decodes the wire shapes into the
// canonical [models] types, and classifies the backend's distinguished
// failure (errorCode "1001") as [shared.ErrReauthRequired] so callers can
// trigger the re-authorization hand-off.
//
// Session authentication uses a static bearer token installed with
// [Client.Authenticate]; the token is attached to every subsequent request
// through an [oauth2] transport. Requests are never retried and in-flight
// calls are only cancelled through their context.
package api
