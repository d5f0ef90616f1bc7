// internal/middleware/csrf.go
//
// CSRF guard for public POSTs.  The landing page fetches a token from
// GET /api/csrf and echoes it in the X-CSRF-Token header.

package middleware

import (
	"net/http"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
)

// CSRFHeader carries the token issued by form.GenerateToken.
const CSRFHeader = "X-CSRF-Token"

// RequireCSRF answers 403 for unsafe methods without a valid token.
func RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			if !form.VerifyToken(r.Header.Get(CSRFHeader)) {
				respond.Error(w, r, http.StatusForbidden, "csrf", form.Message("submission", "form", "csrf"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
