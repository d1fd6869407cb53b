package resource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

type resourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	Update(ctx context.Context, r *domain.Resource) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error)
}

type topicHeads interface {
	Get(ctx context.Context, topicID uuid.UUID) (*domain.TopicHead, error)
}

// Service manages resources attached to topics.
type Service struct {
	resources resourceRepo
	heads     topicHeads
	log       *slog.Logger
	clock     func() time.Time
}

// NewService creates a new Resource service.
func NewService(
	log *slog.Logger,
	resources resourceRepo,
	heads topicHeads,
) *Service {
	return &Service{
		resources: resources,
		heads:     heads,
		log:       log.With("service", "resource"),
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// requireLiveTopic returns ErrNotFound unless topicID has a live head.
func (s *Service) requireLiveTopic(ctx context.Context, topicID uuid.UUID) error {
	head, err := s.heads.Get(ctx, topicID)
	if err != nil {
		return fmt.Errorf("get topic head: %w", err)
	}
	if !head.IsAlive() {
		return fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}
	return nil
}
