package submission

import "time"

// Defaults for the per-session attempt policy.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// Limiter counts submit attempts in a rolling window.  It belongs to one
// Coordinator and is guarded by the coordinator's mutex.
type Limiter struct {
	max      int
	window   time.Duration
	now      func() time.Time
	attempts []time.Time
}

// NewLimiter allows max attempts per window.  Zero values take the
// defaults; now == nil uses time.Now.
func NewLimiter(max int, window time.Duration, now func() time.Time) *Limiter {
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{max: max, window: window, now: now}
}

// Allow reports whether another attempt fits in the window.
func (l *Limiter) Allow() bool {
	l.prune()
	return len(l.attempts) < l.max
}

// Record counts one attempt.
func (l *Limiter) Record() { l.attempts = append(l.attempts, l.now()) }

// Reset forgets every attempt.
func (l *Limiter) Reset() { l.attempts = l.attempts[:0] }

// Attempts returns the number of attempts still inside the window.
func (l *Limiter) Attempts() int {
	l.prune()
	return len(l.attempts)
}

// RetryAfter is how long until the oldest attempt leaves the window.  Zero
// when an attempt is allowed now.
func (l *Limiter) RetryAfter() time.Duration {
	if l.Allow() {
		return 0
	}
	return l.attempts[0].Add(l.window).Sub(l.now())
}

// prune drops attempts older than the window, in place.
func (l *Limiter) prune() {
	start := l.now().Add(-l.window)
	valid := l.attempts[:0]
	for _, ts := range l.attempts {
		if ts.After(start) {
			valid = append(valid, ts)
		}
	}
	l.attempts = valid
}
