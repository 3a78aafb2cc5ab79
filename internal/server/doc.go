// Package server hosts the short-lived local HTTP server used during the
// authorization hand-off.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # Callback Handler
//
// [CallbackHandler] receives the browser redirect at the end of the external
// authorization flow. Unlike a full OAuth2 client it never exchanges the
// code itself: the backend owns the provider credentials, so the handler
// only validates the state parameter, captures the one-time code and
// forwards it through a channel. It processes exactly one callback.
//
// # Usage
//
// [Capture] ties it together: start a server on the configured localhost
// port, wait for the single callback or context cancellation, shut down,
// and return the code for the session bootstrap to exchange.
package server
