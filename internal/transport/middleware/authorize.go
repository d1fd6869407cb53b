package middleware

import (
	"net/http"

	"github.com/heartmarshall/knowledge-base/internal/domain"
	"github.com/heartmarshall/knowledge-base/pkg/ctxutil"
)

type permissionPolicy interface {
	Can(role domain.UserRole, p domain.Permission) bool
}

// Authorize guards a single route: anonymous callers get 401, callers whose
// role lacks perm get 403.
func Authorize(policy permissionPolicy, perm domain.Permission) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			role := domain.UserRole(ctxutil.UserRoleFromCtx(r.Context()))
			if !policy.Can(role, perm) {
				writeError(w, http.StatusForbidden, "missing permission "+perm.String())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
