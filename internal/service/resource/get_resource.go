package resource

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// GetResource returns a live resource by id.
func (s *Service) GetResource(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	r, err := s.resources.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return r, nil
}

// ListByTopic returns the live resources of a live topic.
func (s *Service) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]domain.Resource, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	if err := s.requireLiveTopic(ctx, topicID); err != nil {
		return nil, err
	}

	list, err := s.resources.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return list, nil
}
