package middleware

import (
	"context"

	"github.com/google/uuid"
)

// caller is filled in by Auth and read back by Logger after the request.
type caller struct {
	userID string
}

type callerKey struct{}

func withCaller(ctx context.Context, c *caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func noteCaller(ctx context.Context, id uuid.UUID) {
	if c, ok := ctx.Value(callerKey{}).(*caller); ok {
		c.userID = id.String()
	}
}
