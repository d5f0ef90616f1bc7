// internal/middleware/requestlog.go
//
// Request logging.  Attaches a request-scoped logger (request ID and client
// IP) to the context for handlers and the submission coordinator, then
// writes one line per request when it completes.

package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
)

// RequestLog must run after chi's RequestID and RealIP.
func RequestLog(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.S()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base.With("req_id", chimw.GetReqID(r.Context()), "ip", IPFromContext(r))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), l)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"dur_ms", time.Since(start).Milliseconds(),
			}
			if status >= 500 {
				l.Errorw("request", fields...)
			} else {
				l.Infow("request", fields...)
			}
		})
	}
}
