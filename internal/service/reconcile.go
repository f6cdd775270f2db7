package service

import (
	"context"
	"errors"

	"pressdesk/pkg/wordpress"
)

// ReconcileStats summarizes one orphan sweep.
type ReconcileStats struct {
	Checked int `json:"checked"`
	Removed int `json:"removed"`
	Skipped int `json:"skipped"`
}

// Reconcile removes override rows whose remote post no longer resolves.
// Overrides accumulate for deleted posts because UpdatePriority never
// verifies remote existence and the local remove after a remote delete
// is best-effort. Only a definite remote not-found removes a row; on
// transport failure the row is skipped and retried on the next sweep.
func (s *PostService) Reconcile(ctx context.Context) (*ReconcileStats, error) {
	overrides, err := s.overrides.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ReconcileStats{}
	for id := range overrides {
		stats.Checked++

		_, err := s.remote.Get(ctx, id)
		switch {
		case err == nil:
			continue
		case errors.Is(err, wordpress.ErrNotFound):
			if err := s.overrides.Remove(ctx, id); err != nil {
				s.logger.Error("reconcile remove failed", "id", id, "error", err)
				stats.Skipped++
				continue
			}
			s.logger.Info("removed orphaned override", "id", id)
			stats.Removed++
		default:
			s.logger.Warn("reconcile check failed", "id", id, "error", err)
			stats.Skipped++
		}
	}

	s.logger.Info("reconcile sweep finished",
		"checked", stats.Checked,
		"removed", stats.Removed,
		"skipped", stats.Skipped,
	)
	return stats, nil
}
