// internal/submission/coordinator.go
//
// Trampô: per-session submit flow.
//
// Context
//   A Coordinator owns one form session: the draft held by a Form, the
//   field errors from the last validation, and the attempt Limiter.  It is
//   the only place where state for a session changes.
//
// Workflow
//      Idle ──submit──► Validating ──ok──► Submitting ──► Done
//                          │                   │
//                          │ invalid           │ persist error
//                          ▼                   ▼
//                   RejectedLocally ───────► Idle
//
//   •  The attempt limit is checked before the validator runs.  A refused
//      submit goes straight back to Idle with ErrRateLimited.
//   •  Persistence runs outside the mutex with state Submitting, so a
//      second Submit or Edit gets ErrInFlight instead of queueing.
//   •  Done resets the form and the attempt counter.
//   •  SubmitValues runs the same flow on a caller-supplied draft; the
//      session then only contributes its limiter and in-flight guard.
//
//------------------------------------------------------------------------------

package submission

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/metrics"
)

// Form is a concrete editable form (lead, job posting).
type Form interface {
	ID() string
	Edit(field string, value any) error
	Validate() form.Errors
	Persist(ctx context.Context) error
	Reset()
}

// State of a form session.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejectedLocally
	StateSubmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejectedLocally:
		return "rejected_locally"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Options tunes a Coordinator.  The zero value gives 5 attempts per 15
// minutes and does not count local validation failures; use DefaultOptions
// for the production policy.
type Options struct {
	MaxAttempts int
	Window      time.Duration

	// CountLocalFailures records an attempt before validation, so a
	// submit rejected for a typo still uses up one attempt.
	CountLocalFailures bool

	// Now is the clock used by the limiter.  nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the production policy.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:        DefaultMaxAttempts,
		Window:             DefaultWindow,
		CountLocalFailures: true,
	}
}

// Coordinator serialises one form session.
type Coordinator struct {
	mu         sync.Mutex
	form       Form
	limiter    *Limiter
	countLocal bool
	state      State
	errs       form.Errors
}

// New wraps f with a fresh attempt counter.
func New(f Form, opts Options) *Coordinator {
	return &Coordinator{
		form:       f,
		limiter:    NewLimiter(opts.MaxAttempts, opts.Window, opts.Now),
		countLocal: opts.CountLocalFailures,
	}
}

// State returns the current session state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Errors returns the field errors still shown to the user.
func (c *Coordinator) Errors() form.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(form.Errors(nil), c.errs...)
}

// RetryAfter is the wait before the next attempt is allowed.
func (c *Coordinator) RetryAfter() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limiter.RetryAfter()
}

// Edit re-sanitizes one field and clears its error.
func (c *Coordinator) Edit(field string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrInFlight
	}
	return c.editLocked(field, value)
}

// Submit runs the flow described at the top of the file.  It returns nil
// on success, ErrRateLimited, ErrInFlight, a *form.ValidationError, or a
// *PersistenceError.
func (c *Coordinator) Submit(ctx context.Context) error {
	c.mu.Lock()
	err := c.beginLocked(ctx, c.form)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.persist(ctx, c.form)
}

// SubmitValues submits a complete set of values through draft, a fresh Form
// owned by this call, under the session's attempt limit and in-flight
// guard.  The session's own draft is never touched, so nothing carries over
// from one request to the next.  Every key is applied before the limiter is
// consulted; an unknown key or a bad value rejects the whole call.  Keys are
// applied in sorted order.
func (c *Coordinator) SubmitValues(ctx context.Context, draft Form, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := draft.Edit(k, values[k]); err != nil {
			return err
		}
	}

	c.mu.Lock()
	err := c.beginLocked(ctx, draft)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.persist(ctx, draft)
}

func (c *Coordinator) editLocked(field string, value any) error {
	if err := c.form.Edit(field, value); err != nil {
		return err
	}
	c.errs = c.errs.Without(field)
	c.state = StateIdle
	return nil
}

// beginLocked moves the session to Submitting or returns why it cannot.
func (c *Coordinator) beginLocked(ctx context.Context, f Form) error {
	if c.state == StateSubmitting {
		return ErrInFlight
	}
	id := f.ID()
	c.state = StateValidating

	if !c.limiter.Allow() {
		c.state = StateIdle
		metrics.SubmissionsTotal.WithLabelValues(id, metrics.OutcomeRateLimited).Inc()
		logger.FromContext(ctx).Infow("submit refused by attempt limit",
			"form", id, "retry_after", c.limiter.RetryAfter())
		return ErrRateLimited
	}
	if c.countLocal {
		c.limiter.Record()
	}

	errs := f.Validate()
	if !errs.OK() {
		c.state = StateRejectedLocally
		c.errs = errs
		metrics.SubmissionsTotal.WithLabelValues(id, metrics.OutcomeInvalid).Inc()
		c.state = StateIdle
		return errs.Err()
	}
	if !c.countLocal {
		c.limiter.Record()
	}

	c.errs = nil
	c.state = StateSubmitting
	return nil
}

// persist hands off to the collaborator and settles the session.
func (c *Coordinator) persist(ctx context.Context, f Form) error {
	id := f.ID()
	start := time.Now()
	err := c.guardPersist(ctx, f)
	metrics.PersistDuration.WithLabelValues(id).Observe(time.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateIdle
		metrics.SubmissionsTotal.WithLabelValues(id, metrics.OutcomeFailed).Inc()
		logger.FromContext(ctx).Errorw("persist failed", "form", id, "err", err)
		return &PersistenceError{Form: id, cause: err}
	}

	f.Reset()
	c.limiter.Reset()
	c.state = StateDone
	metrics.SubmissionsTotal.WithLabelValues(id, metrics.OutcomeAccepted).Inc()
	return nil
}

// guardPersist runs f.Persist; a panic puts the session back to Idle and
// is then re-raised.
func (c *Coordinator) guardPersist(ctx context.Context, f Form) error {
	defer func() {
		if p := recover(); p != nil {
			c.mu.Lock()
			c.state = StateIdle
			c.mu.Unlock()
			metrics.SubmissionsTotal.WithLabelValues(f.ID(), metrics.OutcomeFailed).Inc()
			panic(p)
		}
	}()
	return f.Persist(ctx)
}
