package scheduler

import (
	"context"
	"log/slog"
	"time"

	"pressdesk/internal/service"
)

// Reconciler is the sweep the scheduler drives.
type Reconciler interface {
	Reconcile(ctx context.Context) (*service.ReconcileStats, error)
}

// Scheduler periodically reconciles local overrides against the remote.
type Scheduler struct {
	reconciler Reconciler
	interval   time.Duration
	logger     *slog.Logger
}

// New creates a scheduler.
func New(reconciler Reconciler, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval == 0 {
		interval = time.Hour
	}
	return &Scheduler{
		reconciler: reconciler,
		interval:   interval,
		logger:     logger.With("component", "scheduler"),
	}
}

// Run starts the sweep loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler running", "interval", s.interval)
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if _, err := s.reconciler.Reconcile(ctx); err != nil {
		s.logger.Error("reconcile sweep failed", "error", err)
	}
}
