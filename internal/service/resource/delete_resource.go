package resource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

// DeleteResource soft-deletes a single resource.
func (s *Service) DeleteResource(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.resources.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	s.log.InfoContext(ctx, "resource deleted",
		slog.String("user_id", userID.String()),
		slog.String("resource_id", id.String()),
	)

	return nil
}
