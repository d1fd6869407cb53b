package rest

import (
	"net/http"

	"github.com/heartmarshall/knowledge-base/internal/auth"
	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Topics    *TopicHandler
	Resources *ResourceHandler
	Health    *HealthHandler
	Policy    auth.Policy

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// NewRouter registers all routes on a fresh ServeMux. Protected routes are
// wrapped in middleware.Authorize; the caller adds the global chain.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	open := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.MatchedRoute(h))
	}
	guarded := func(pattern string, perm domain.Permission, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Chain(
			middleware.MatchedRoute,
			middleware.Authorize(d.Policy, perm),
		)(h))
	}

	open("GET /live", d.Health.Live)
	open("GET /ready", d.Health.Ready)
	open("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET "+d.MetricsPath, middleware.MatchedRoute(d.Metrics))
	}

	guarded("POST /topics", domain.PermTopicCreate, d.Topics.Create)
	guarded("GET /topics/shortest_path", domain.PermTopicRead, d.Topics.ShortestPath)
	guarded("GET /topics/{id}", domain.PermTopicRead, d.Topics.Get)
	guarded("GET /topics/{id}/history", domain.PermTopicRead, d.Topics.History)
	guarded("GET /topics/{id}/tree", domain.PermTopicRead, d.Topics.Tree)
	guarded("PUT /topics/{id}", domain.PermTopicUpdate, d.Topics.Update)
	guarded("DELETE /topics/{id}", domain.PermTopicDelete, d.Topics.Delete)
	guarded("GET /topics/{id}/resources", domain.PermResourceRead, d.Resources.ListByTopic)

	guarded("POST /resources", domain.PermResourceCreate, d.Resources.Create)
	guarded("GET /resources/{id}", domain.PermResourceRead, d.Resources.Get)
	guarded("PUT /resources/{id}", domain.PermResourceUpdate, d.Resources.Update)
	guarded("DELETE /resources/{id}", domain.PermResourceDelete, d.Resources.Delete)

	return mux
}
