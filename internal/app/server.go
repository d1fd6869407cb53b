package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/knowledge-base/internal/auth"
	"github.com/heartmarshall/knowledge-base/internal/config"
	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/internal/metrics"
	"github.com/heartmarshall/knowledge-base/internal/service/resource"
	"github.com/heartmarshall/knowledge-base/internal/service/topic"
	"github.com/heartmarshall/knowledge-base/internal/transport/middleware"
	"github.com/heartmarshall/knowledge-base/internal/transport/rest"
)

type topicMutationRecorder interface {
	RecordTopicMutation(action domain.TopicAction)
}

// Server is the assembled HTTP handler together with what must be stopped
// on shutdown.
type Server struct {
	Handler http.Handler
	limiter *middleware.RateLimiter
}

// Stop releases background goroutines owned by the handler chain.
func (s *Server) Stop() {
	s.limiter.Stop()
}

// NewServer wires services, handlers and the middleware chain on top of
// store. m may be nil when metrics are disabled.
func NewServer(cfg *config.Config, store *Storage, jwt *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *Server {
	var recorder topicMutationRecorder = metrics.Nop{}
	if m != nil {
		recorder = m
	}

	topicSvc := topic.NewService(logger, store.Versions, store.Heads, store.Resources, store.Tx, recorder)
	resourceSvc := resource.NewService(logger, store.Resources, store.Heads)

	deps := rest.RouterDeps{
		Topics:    rest.NewTopicHandler(topicSvc, logger),
		Resources: rest.NewResourceHandler(resourceSvc, logger),
		Health:    rest.NewHealthHandler(store, store.Driver, BuildVersion()),
		Policy:    auth.Policy{},
	}
	if m != nil {
		deps.Metrics = m.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}
	router := rest.NewRouter(deps)

	limiter := middleware.NewRateLimiter(5 * time.Minute)

	var observe middleware.Middleware
	if m != nil {
		observe = middleware.Metrics(m)
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		observe,
		limiter.Limit(cfg.Server.RateLimitPerMinute),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwt, store.Users, logger),
	)(router)

	return &Server{
		Handler: handler,
		limiter: limiter,
	}
}
