// Package server provides HTTP routing, middleware, and the login callback
// handler for the browser-assisted sign-in flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Login Callback Handler
//
// CallbackHandler implements the loopback completion of browser-assisted sign-in.
//
// The handler validates the state parameter (CSRF protection), captures the
// refresh token the hosted login page redirects back with, and sends the
// result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs `mvx auth login --browser`, a temporary HTTP server
// starts on the configured loopback port, the hosted login page opens in the
// system browser, and the server shuts down after receiving the callback.
// The session manager then adopts the returned refresh token.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
