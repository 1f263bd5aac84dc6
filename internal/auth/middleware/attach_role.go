package auth

import (
	"context"
	"net/http"

	"github.com/mind-engage/howacademia/internal/rbac"
)

// RoleLookup resolves the current role of a user id.
type RoleLookup func(ctx context.Context, userID string) (role string, ok bool)

// AttachRole replaces the token's role claim with the user's stored role,
// so a role change takes effect before the token expires. Unknown subjects
// keep the claim when allowClaimFallback is set and are rejected otherwise.
func AttachRole(lookup RoleLookup, allowClaimFallback bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if role, ok := lookup(ctx, rbac.SubjectFromContext(ctx)); ok && role != "" {
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, role)))
				return
			}
			if allowClaimFallback && rbac.RoleFromContext(ctx) != "" {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}
