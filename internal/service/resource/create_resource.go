package resource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

// CreateResource attaches a new resource to a live topic.
func (s *Service) CreateResource(ctx context.Context, input CreateResourceInput) (*domain.Resource, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireLiveTopic(ctx, input.TopicID); err != nil {
		return nil, err
	}

	now := s.clock()
	r := &domain.Resource{
		ID:          uuid.New(),
		TopicID:     input.TopicID,
		URL:         strings.TrimSpace(input.URL),
		Description: strings.TrimSpace(input.Description),
		Type:        input.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.resources.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.log.InfoContext(ctx, "resource created",
		slog.String("user_id", userID.String()),
		slog.String("resource_id", r.ID.String()),
		slog.String("topic_id", r.TopicID.String()),
	)

	return r, nil
}
