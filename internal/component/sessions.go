// internal/component/sessions.go
//
// Form sessions.  The API is stateless HTTP, but the submit policy (attempt
// limit, in-flight guard) belongs to a session.  A session is keyed by client
// address and form ID and lives in a bounded LRU; an evicted session starts
// over with a fresh attempt counter.  Drafts are per request and are never
// kept here.

package component

import (
	"github.com/edupaziani/trampo-conecta-talentos/internal/cache"
	"github.com/edupaziani/trampo-conecta-talentos/internal/metrics"
	"github.com/edupaziani/trampo-conecta-talentos/internal/submission"
)

// FormSessions hands out one Coordinator per (client, form).
type FormSessions struct {
	opts submission.Options
	lru  *cache.LRU[string, *submission.Coordinator]
}

// NewFormSessions keeps at most capacity sessions alive.
func NewFormSessions(capacity int, opts submission.Options) *FormSessions {
	return &FormSessions{
		opts: opts,
		lru: cache.New[string, *submission.Coordinator](capacity, func(string, *submission.Coordinator) {
			metrics.ActiveSessions.Dec()
		}),
	}
}

// Get returns the session for client and formID, creating it around mk()
// on first use.
func (s *FormSessions) Get(client, formID string, mk func() submission.Form) *submission.Coordinator {
	return s.lru.GetOrAdd(client+"|"+formID, func() *submission.Coordinator {
		metrics.ActiveSessions.Inc()
		return submission.New(mk(), s.opts)
	})
}

// Len is the number of live sessions.
func (s *FormSessions) Len() int { return s.lru.Len() }
