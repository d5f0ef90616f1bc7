package submission

import (
	"errors"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
)

var (
	// ErrRateLimited is returned by Submit when the session used up its
	// attempts for the current window.  The validator is not consulted.
	ErrRateLimited = errors.New("submission: too many attempts")

	// ErrInFlight is returned by Submit and Edit while a submission is
	// being persisted.
	ErrInFlight = errors.New("submission: already in flight")
)

// PersistenceError wraps a failure of the persistence collaborator.  Error
// returns the generic message shown to users; the cause is available to
// operators through errors.Unwrap and the logs.
type PersistenceError struct {
	Form  string
	cause error
}

func (e *PersistenceError) Error() string {
	return form.Message("submission", "form", "persistence")
}

func (e *PersistenceError) Unwrap() error { return e.cause }
