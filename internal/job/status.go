package job

import (
	"errors"
	"fmt"
)

// Status is the moderation state of a posting.
//
//	pending ──► approved
//	    │
//	    └─────► rejected
//
// approved and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var validTransitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

// ParseStatus converts a raw string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStatus, s)
}

// IsTransitionAllowed reports whether a reviewer may move a posting from
// → to.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool { return len(validTransitions[s]) == 0 }

var (
	// ErrUnknownStatus is returned by ParseStatus.
	ErrUnknownStatus = errors.New("job: unknown status")
	// ErrNotFound is returned when no posting has the given ID.
	ErrNotFound = errors.New("job: posting not found")
	// ErrAlreadyModerated is returned when a posting left pending before
	// the requested transition could apply.
	ErrAlreadyModerated = errors.New("job: posting already moderated")
)

// Filter narrows a posting listing.  Zero fields match everything.
type Filter struct {
	Status Status
	Area   string // case-insensitive exact match
	Type   Type
}
