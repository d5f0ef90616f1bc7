// internal/acl/middleware.go
//
// Role checks for the moderation surface.

package acl

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/edupaziani/trampo-conecta-talentos/internal/auth"
	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
)

// Checker answers role questions against the user_roles table.
type Checker struct {
	db *sqlx.DB
}

func NewChecker(db *sqlx.DB) *Checker { return &Checker{db: db} }

// RequireRole reports whether u holds role.  Lookup errors are logged and
// deny access.
func (c *Checker) RequireRole(ctx context.Context, u *auth.User, role string) bool {
	if u == nil || u.ID == "" {
		return false
	}
	ok, err := HasRole(ctx, c.db, u.ID, role)
	if err != nil {
		logger.FromContext(ctx).Errorw("acl role lookup", "user", u.ID, "role", role, "err", err)
		return false
	}
	return ok
}

// Middleware answers 401 without a session user and 403 when the user
// lacks every one of roles.
func (c *Checker) Middleware(roles ...string) func(http.Handler) http.Handler {
	if len(roles) == 0 {
		panic("acl.Middleware: at least one role name must be supplied")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.FromContext(r.Context())
			if !ok {
				respond.Error(w, r, http.StatusUnauthorized, "unauthorized", form.Message("api", "request", "unauthorized"))
				return
			}
			for _, role := range roles {
				if c.RequireRole(r.Context(), &u, role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			zap.S().Infow("acl denied", "user", u.ID, "roles", roles, "path", r.URL.Path)
			respond.Error(w, r, http.StatusForbidden, "forbidden", form.Message("api", "request", "forbidden"))
		})
	}
}
