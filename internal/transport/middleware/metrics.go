package middleware

import (
	"context"
	"net/http"
	"time"
)

type requestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

type routeSlotKey struct{}

// Metrics records request count and latency per matched route. The route
// label is filled in by MatchedRoute, which must wrap the handlers
// registered on the ServeMux.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := new(string)
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), routeSlotKey{}, route)))

			obs.ObserveRequest(r.Method, *route, sw.status, time.Since(start))
		})
	}
}

// MatchedRoute reports the ServeMux pattern of the request to Metrics.
func MatchedRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(routeSlotKey{}).(*string); ok {
			*slot = r.Pattern
		}
		next.ServeHTTP(w, r)
	})
}
