// internal/message/message.go
//
// Outbound messages.
//
// Context
//   Moderation decisions are announced to the company contact by email.
//   Delivery is not wired yet, so the Outbox logs each message with the
//   request-scoped logger and keeps the most recent ones in memory for the
//   admin view and tests.
//
//   The Sender interface is the seam for a real provider.
//
//------------------------------------------------------------------------------

package message

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
)

// Email is one outbound email.
type Email struct {
	To      []string
	Subject string
	Text    string
}

// ErrNoRecipient is returned for an Email without addresses.
var ErrNoRecipient = errors.New("message: email has no recipient")

// Sender accepts outbound email.
type Sender interface {
	EnqueueEmail(ctx context.Context, msg Email) error
}

// Outbox logs emails and retains the last keep of them.
type Outbox struct {
	mu   sync.Mutex
	keep int
	sent []Email
}

// NewOutbox returns an Outbox retaining up to keep messages (min 1).
func NewOutbox(keep int) *Outbox {
	if keep < 1 {
		keep = 1
	}
	return &Outbox{keep: keep}
}

// EnqueueEmail validates and logs msg.
func (o *Outbox) EnqueueEmail(ctx context.Context, msg Email) error {
	to := msg.To[:0:0]
	for _, a := range msg.To {
		if a = strings.TrimSpace(a); a != "" {
			to = append(to, a)
		}
	}
	if len(to) == 0 {
		return ErrNoRecipient
	}
	msg.To = to

	logger.FromContext(ctx).Infow("email queued",
		"to", msg.To, "subject", msg.Subject, "len", len(msg.Text))

	o.mu.Lock()
	o.sent = append(o.sent, msg)
	if len(o.sent) > o.keep {
		o.sent = append(o.sent[:0:0], o.sent[len(o.sent)-o.keep:]...)
	}
	o.mu.Unlock()
	return nil
}

// Recent returns a copy of the retained messages, oldest first.
func (o *Outbox) Recent() []Email {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Email(nil), o.sent...)
}
