// Package server provides HTTP routing, middleware, and lifecycle helpers for the web frontend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /shows/{id}"), so path
// parameters are read with [http.Request.PathValue] and a method mismatch answers 405.
//
// # Middleware
//
//   - [RequestID] tags every request with a uuid, echoed in the X-Request-Id header
//   - [Logger] logs method, path, status and duration once the response is written
//   - [Recover] turns a handler panic into a 500 and a log line
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Lifecycle
//
// [Run] serves until its context is cancelled and then shuts down gracefully.
package server
