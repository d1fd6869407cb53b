package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

type userLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Auth resolves a bearer token to a stored user and puts the user id and role
// into the request context. Requests without a token pass through anonymous;
// Authorize rejects them on protected routes.
func Auth(validator tokenValidator, users userLookup, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, _, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := users.Get(r.Context(), userID)
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unknown user")
				return
			}
			if err != nil {
				logger.ErrorContext(r.Context(), "load user", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			noteCaller(r.Context(), user.ID)
			// The stored role wins over the claim so demotions apply immediately.
			ctx := ctxutil.WithUserID(r.Context(), user.ID)
			ctx = ctxutil.WithUserRole(ctx, user.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
