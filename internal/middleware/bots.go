// internal/middleware/bots.go
//
// Refuses automated clients on the public form endpoints.  The landing page
// is a browser form; crawlers and scripted HTTP clients have no business
// posting to it.

package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/metrics"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
	"github.com/edupaziani/trampo-conecta-talentos/internal/ua"
)

// BlockBots answers 403 for unsafe methods sent by a bot user agent.  GET
// and HEAD pass so crawlers can still index public listings.
func BlockBots(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if info := ua.Parse(r.UserAgent()); info.IsBot {
			metrics.BotRequestsTotal.Inc()
			zap.S().Debugw("bot post refused", "ua", r.UserAgent(), "path", r.URL.Path)
			respond.Error(w, r, http.StatusForbidden, "bot", form.Message("submission", "form", "bot"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
