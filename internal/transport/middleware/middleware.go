// Package middleware holds the HTTP middleware of the knowledge base API.
//
// The server assembles them outermost first as Recovery, RequestID, Logger,
// Metrics, rate limiting, CORS and Auth. Per-route permission checks
// (Authorize) and route capture (MatchedRoute) run inside the mux.
package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware. Chain(mw1,
// mw2)(h) yields mw1(mw2(h)), so mw1 runs first. Nil entries are skipped,
// which lets callers leave optional middleware unset.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] == nil {
				continue
			}
			final = mws[i](final)
		}
		return final
	}
}
