package resource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

// UpdateResource merges the provided fields into an existing resource.
func (s *Service) UpdateResource(ctx context.Context, input UpdateResourceInput) (*domain.Resource, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	r, err := s.resources.Get(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get resource: %w", err)
	}

	if input.URL != nil {
		r.URL = strings.TrimSpace(*input.URL)
	}
	if input.Description != nil {
		r.Description = strings.TrimSpace(*input.Description)
	}
	if input.Type != nil {
		r.Type = *input.Type
	}
	r.UpdatedAt = s.clock()

	if err := s.resources.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}

	s.log.InfoContext(ctx, "resource updated",
		slog.String("user_id", userID.String()),
		slog.String("resource_id", r.ID.String()),
	)

	return r, nil
}
