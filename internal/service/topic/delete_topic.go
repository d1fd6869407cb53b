package topic

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
)

// DeleteTopic soft-deletes a topic and all its live descendants, children
// first. Each topic is finalized in its own transaction; a failure deep in
// the tree leaves already finalized topics deleted. Descendants that were
// already deleted are skipped, so a partially applied cascade can be retried.
func (s *Service) DeleteTopic(ctx context.Context, input DeleteTopicInput) error {
	actor, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := input.Validate(); err != nil {
		return err
	}

	count, err := s.deleteSubtree(ctx, input.TopicID, actor)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}

	s.log.InfoContext(ctx, "topic deleted",
		slog.String("user_id", actor.String()),
		slog.String("topic_id", input.TopicID.String()),
		slog.Int("deleted", count),
	)

	return nil
}

func (s *Service) deleteSubtree(ctx context.Context, topicID, actor uuid.UUID) (int, error) {
	head, err := s.liveHead(ctx, topicID)
	if err != nil {
		return 0, err
	}
	current, err := s.currentVersion(ctx, head)
	if err != nil {
		return 0, err
	}

	children, err := s.heads.FindChildren(ctx, topicID)
	if err != nil {
		return 0, fmt.Errorf("find children of %s: %w", topicID, err)
	}

	deleted := 0
	for _, child := range children {
		n, err := s.deleteSubtree(ctx, child.TopicID, actor)
		if err != nil {
			return deleted, err
		}
		deleted += n
	}

	now := s.clock()
	tombstone := versionFromDelete(head.LatestVersion+1, current, now, actor)
	if err := s.appendAndAdvance(ctx, tombstone, &now); err != nil {
		return deleted, fmt.Errorf("finalize %s: %w", topicID, err)
	}
	s.metrics.RecordTopicMutation(domain.TopicActionDelete)

	return deleted + 1, nil
}
