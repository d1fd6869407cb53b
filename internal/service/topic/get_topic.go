package topic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// GetTopic returns the latest live version of a topic, or an explicit
// historical version. Explicit versions are served even after deletion.
func (s *Service) GetTopic(ctx context.Context, input GetTopicInput) (*domain.TopicVersion, error) {
	if input.TopicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	if input.Version != nil {
		if *input.Version < 1 {
			return nil, fmt.Errorf("version %d: %w", *input.Version, domain.ErrBadRequest)
		}
		v, err := s.versions.GetByTopicAndVersion(ctx, input.TopicID, *input.Version)
		if err != nil {
			return nil, fmt.Errorf("get topic: %w", err)
		}
		return v, nil
	}

	head, err := s.liveHead(ctx, input.TopicID)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	v, err := s.currentVersion(ctx, head)
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return v, nil
}

// History returns every version of a topic in ascending order, tombstones
// included.
func (s *Service) History(ctx context.Context, topicID uuid.UUID) ([]domain.TopicVersion, error) {
	if topicID == uuid.Nil {
		return nil, domain.NewValidationError("topic_id", "required")
	}

	versions, err := s.versions.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("topic %s: %w", topicID, domain.ErrNotFound)
	}
	return versions, nil
}
