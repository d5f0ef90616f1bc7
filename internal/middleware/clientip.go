// internal/middleware/clientip.go
//
// Client address resolution.  Form sessions and the per-IP limiter are keyed
// by the address this returns, so it must not trust headers a client can
// forge: with N trusted proxies in front, the real client is the Nth entry
// from the right of X-Forwarded-For.

package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type ipKey struct{}

// ClientIP resolves the caller address given the number of trusted
// reverse proxies.  trusted == 0 ignores X-Forwarded-For entirely.
func ClientIP(r *http.Request, trusted int) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && trusted > 0 {
		parts := strings.Split(xff, ",")
		if idx := len(parts) - trusted; idx >= 0 {
			if ip := net.ParseIP(strings.TrimSpace(parts[idx])); ip != nil {
				return ip.String()
			}
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RealIP stores ClientIP in the request context for later middleware and
// handlers.
func RealIP(trusted int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ipKey{}, ClientIP(r, trusted))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IPFromContext returns the address stored by RealIP, falling back to the
// connection address.
func IPFromContext(r *http.Request) string {
	if ip, ok := r.Context().Value(ipKey{}).(string); ok && ip != "" {
		return ip
	}
	return ClientIP(r, 0)
}
