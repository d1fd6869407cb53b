package topic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// UpdateTopic appends the next version of a live topic.
func (s *Service) UpdateTopic(ctx context.Context, input UpdateTopicInput) (*domain.TopicVersion, error) {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	head, err := s.liveHead(ctx, input.TopicID)
	if err != nil {
		return nil, err
	}
	current, err := s.currentVersion(ctx, head)
	if err != nil {
		return nil, err
	}

	if parent := input.ParentTopicID.Value; parent != nil {
		if err := s.checkParent(ctx, *parent); err != nil {
			return nil, err
		}
		if err := s.checkNoCycle(ctx, input.TopicID, *parent); err != nil {
			return nil, err
		}
	}

	v := versionFromUpdate(head.LatestVersion+1, current, input, s.clock(), actor)
	if err := s.appendAndAdvance(ctx, v, nil); err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}

	s.metrics.RecordTopicMutation(domain.TopicActionUpdate)
	s.log.InfoContext(ctx, "topic updated",
		slog.String("user_id", actor.String()),
		slog.String("topic_id", v.TopicID.String()),
		slog.Int("version", v.Version),
	)

	return v, nil
}

// checkNoCycle rejects making topicID a child of itself or of one of its
// live descendants. It walks up from parentID until the chain leaves the
// live set.
func (s *Service) checkNoCycle(ctx context.Context, topicID, parentID uuid.UUID) error {
	seen := make(map[uuid.UUID]bool)
	for cur := &parentID; cur != nil; {
		if *cur == topicID {
			return fmt.Errorf("parent %s is a descendant of %s: %w", parentID, topicID, domain.ErrInvalidReference)
		}
		if seen[*cur] {
			return nil
		}
		seen[*cur] = true

		head, err := s.heads.Get(ctx, *cur)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get ancestor head: %w", err)
		}
		if !head.IsAlive() {
			return nil
		}
		v, err := s.currentVersion(ctx, head)
		if err != nil {
			return err
		}
		cur = v.ParentTopicID
	}
	return nil
}
