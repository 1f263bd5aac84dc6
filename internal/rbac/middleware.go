package rbac

import (
	"net/http"
)

// Middleware enforces permissions against one Checker.
type Middleware struct {
	c *Checker
}

func NewMiddleware(c *Checker) *Middleware {
	if c == nil {
		c = NewChecker(nil)
	}
	return &Middleware{c: c}
}

func (m *Middleware) Checker() *Checker { return m.c }

// Require enforces a single permission.
func (m *Middleware) Require(perm string) func(http.Handler) http.Handler {
	return m.guard(func(r *http.Request, role string) bool {
		return m.c.Has(role, perm)
	})
}

// RequireAny enforces that the role has at least one of the permissions.
func (m *Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return m.guard(func(r *http.Request, role string) bool {
		return m.c.Any(role, perms...)
	})
}

// RequireOwnerOr lets the request through when isOwner holds, or when the
// role has perm.
func (m *Middleware) RequireOwnerOr(perm string, isOwner func(r *http.Request) bool) func(http.Handler) http.Handler {
	return m.guard(func(r *http.Request, role string) bool {
		return isOwner(r) || m.c.Has(role, perm)
	})
}

func (m *Middleware) guard(allow func(r *http.Request, role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" || !allow(r, role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
