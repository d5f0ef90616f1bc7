package moderation

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Counter reports the number of pending postings.
type Counter interface {
	CountPending(ctx context.Context) (int, error)
}

// Backlog refreshes a gauge with the pending-postings count on a cron
// schedule.
type Backlog struct {
	cron  *cron.Cron
	repo  Counter
	gauge prometheus.Gauge
	spec  string
}

// NewBacklog builds a Backlog for spec (standard cron or "@every 1m").
func NewBacklog(repo Counter, gauge prometheus.Gauge, spec string) *Backlog {
	return &Backlog{cron: cron.New(), repo: repo, gauge: gauge, spec: spec}
}

// Start registers the job, refreshes once immediately, and starts the
// scheduler.  The scheduler stops when ctx is done.
func (b *Backlog) Start(ctx context.Context) error {
	if _, err := b.cron.AddFunc(b.spec, func() { b.Refresh(ctx) }); err != nil {
		return fmt.Errorf("moderation: backlog schedule %q: %w", b.spec, err)
	}
	b.Refresh(ctx)
	b.cron.Start()
	zap.S().Infow("backlog gauge scheduled", "spec", b.spec)

	go func() {
		<-ctx.Done()
		<-b.cron.Stop().Done()
	}()
	return nil
}

// Refresh sets the gauge from the repository.  Errors leave the last value.
func (b *Backlog) Refresh(ctx context.Context) {
	n, err := b.repo.CountPending(ctx)
	if err != nil {
		zap.S().Warnw("backlog count failed", "err", err)
		return
	}
	b.gauge.Set(float64(n))
}
