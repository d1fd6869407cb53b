package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/knowledge-base/internal/auth"
	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name string
		role string
		anon bool
		perm domain.Permission
		want int
	}{
		{"anonymous", "", true, domain.PermTopicRead, http.StatusUnauthorized},
		{"viewer reads", "VIEWER", false, domain.PermTopicRead, http.StatusNoContent},
		{"viewer cannot create", "VIEWER", false, domain.PermTopicCreate, http.StatusForbidden},
		{"editor updates", "EDITOR", false, domain.PermResourceUpdate, http.StatusNoContent},
		{"editor cannot delete", "EDITOR", false, domain.PermTopicDelete, http.StatusForbidden},
		{"admin deletes", "ADMIN", false, domain.PermTopicDelete, http.StatusNoContent},
		{"unknown role", "OWNER", false, domain.PermTopicRead, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			if !tc.anon {
				ctx = ctxutil.WithUserID(ctx, uuid.New())
				ctx = ctxutil.WithUserRole(ctx, tc.role)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
			rec := httptest.NewRecorder()

			Authorize(auth.Policy{}, tc.perm)(ok).ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
