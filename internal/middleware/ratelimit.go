// internal/middleware/ratelimit.go
//
// Per-IP token bucket in front of the public API.  This guards the service;
// the per-session attempt policy of the forms lives in internal/submission.
//
// Limiters are held in a bounded LRU so a scan from many addresses cannot
// grow memory without limit; an evicted address simply starts with a full
// bucket again.

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/edupaziani/trampo-conecta-talentos/internal/cache"
	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/metrics"
	"github.com/edupaziani/trampo-conecta-talentos/internal/respond"
)

// IPLimiter rate-limits per client address.
type IPLimiter struct {
	r rate.Limit
	b int
	m *cache.LRU[string, *rate.Limiter]
}

// NewIPLimiter allows perSec requests per second with the given burst,
// tracking at most maxClients addresses.
func NewIPLimiter(perSec float64, burst, maxClients int) *IPLimiter {
	return &IPLimiter{
		r: rate.Limit(perSec),
		b: burst,
		m: cache.New[string, *rate.Limiter](maxClients, nil),
	}
}

func (l *IPLimiter) limiterFor(ip string) *rate.Limiter {
	return l.m.GetOrAdd(ip, func() *rate.Limiter { return rate.NewLimiter(l.r, l.b) })
}

// Handler answers 429 with Retry-After once an address exhausts its bucket.
func (l *IPLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lim := l.limiterFor(IPFromContext(r))
		res := lim.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			metrics.ThrottledRequestsTotal.Inc()
			w.Header().Set("Retry-After", retryAfterSeconds(delay))
			respond.Error(w, r, http.StatusTooManyRequests, "rate_limited",
				form.Message("submission", "form", "rate_limited"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
