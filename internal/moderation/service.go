// Package moderation holds the reviewer workflow for job postings: listing
// the queue and approving or rejecting a pending posting.  It is
// transport-agnostic; components/admin exposes it over HTTP.
package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/edupaziani/trampo-conecta-talentos/internal/job"
	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
	"github.com/edupaziani/trampo-conecta-talentos/internal/message"
	"github.com/edupaziani/trampo-conecta-talentos/internal/metrics"
)

// Repository is the persistence the service needs.  *store.Store
// satisfies it.
type Repository interface {
	ListJobs(ctx context.Context, f job.Filter) ([]job.Posting, error)
	GetJob(ctx context.Context, id job.ID) (job.Posting, error)
	SetJobStatus(ctx context.Context, id job.ID, status job.Status) error
	CountPending(ctx context.Context) (int, error)
}

// ErrInvalidDecision is returned when the requested status is not a
// transition out of pending.
var ErrInvalidDecision = errors.New("moderation: decision must be approved or rejected")

// Service is safe for concurrent use.
type Service struct {
	repo   Repository
	notify message.Sender
}

// NewService wires the service.  notify may be nil.
func NewService(repo Repository, notify message.Sender) *Service {
	return &Service{repo: repo, notify: notify}
}

// List returns postings in the given status, or every posting when status
// is empty.
func (s *Service) List(ctx context.Context, status string) ([]job.Posting, error) {
	var f job.Filter
	if status != "" {
		st, err := job.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}
	return s.repo.ListJobs(ctx, f)
}

// Decide applies a reviewer decision to a pending posting and notifies the
// company contact.  It returns the posting as it now stands.
func (s *Service) Decide(ctx context.Context, id job.ID, status string) (job.Posting, error) {
	to, err := job.ParseStatus(status)
	if err != nil || !job.IsTransitionAllowed(job.StatusPending, to) {
		return job.Posting{}, ErrInvalidDecision
	}

	p, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return job.Posting{}, err
	}
	if p.Status.IsTerminal() {
		return p, fmt.Errorf("%w (status %s)", job.ErrAlreadyModerated, p.Status)
	}

	if err := s.repo.SetJobStatus(ctx, id, to); err != nil {
		return p, err
	}
	p.Status = to

	metrics.ModerationDecisionsTotal.WithLabelValues(string(to)).Inc()
	metrics.PendingJobs.Dec()

	log := logger.FromContext(ctx)
	log.Infow("job moderated", "job_id", id, "status", to)

	if s.notify != nil {
		if err := s.notify.EnqueueEmail(ctx, decisionEmail(p)); err != nil {
			log.Warnw("decision email not queued", "job_id", id, "err", err)
		}
	}
	return p, nil
}

func decisionEmail(p job.Posting) message.Email {
	m := message.Email{To: []string{p.ContactEmail}}
	switch p.Status {
	case job.StatusApproved:
		m.Subject = "Sua vaga foi publicada"
		m.Text = fmt.Sprintf("A vaga %q de %s foi aprovada e já aparece na lista de vagas.", p.Title, p.CompanyName)
	default:
		m.Subject = "Sua vaga não foi aprovada"
		m.Text = fmt.Sprintf("A vaga %q de %s não foi aprovada pela moderação.", p.Title, p.CompanyName)
	}
	return m
}
