package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// CreateTopic starts a new topic at version 1.
func (s *Service) CreateTopic(ctx context.Context, input CreateTopicInput) (*domain.TopicVersion, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ParentTopicID != nil {
		if err := s.checkParent(ctx, *input.ParentTopicID); err != nil {
			return nil, err
		}
	}

	v := versionFromCreate(uuid.New(), input, s.clock(), actor)
	if err := s.appendAndAdvance(ctx, v, nil); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}

	s.metrics.RecordTopicMutation(domain.TopicActionCreate)
	s.log.InfoContext(ctx, "topic created",
		slog.String("user_id", actor.String()),
		slog.String("topic_id", v.TopicID.String()),
	)

	return v, nil
}
