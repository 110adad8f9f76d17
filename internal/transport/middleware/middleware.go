// Package middleware holds the HTTP middleware the router composes with
// chi: request IDs, logging, panic recovery, CORS, rate limiting, bearer
// auth and foyer membership resolution.
package middleware

import "net/http"

// Middleware wraps an http.Handler. Values of this type are passed
// straight to chi's Router.Use.
type Middleware func(http.Handler) http.Handler
