package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"pressdesk/internal/domain"
)

// OverrideStore persists priority overrides in SQLite, keyed by the
// remote post id. A missing row reads as priority 0.
type OverrideStore struct {
	db *sqlx.DB
}

// New opens the SQLite database and runs migrations.
func New(path string) (*OverrideStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &OverrideStore{db: db}, nil
}

func (s *OverrideStore) Close() error {
	return s.db.Close()
}

// Get returns the stored priority for id, or 0 when no row exists.
func (s *OverrideStore) Get(ctx context.Context, id int64) (int, error) {
	var priority int
	err := s.db.GetContext(ctx, &priority,
		"SELECT priority FROM priority_overrides WHERE wordpress_id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get override %d: %w", id, err)
	}
	return priority, nil
}

// Upsert creates or replaces the override row for id. Atomic per key.
func (s *OverrideStore) Upsert(ctx context.Context, id int64, priority int) error {
	if err := domain.ValidatePriority(priority); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO priority_overrides (wordpress_id, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(wordpress_id) DO UPDATE SET
			priority = excluded.priority,
			updated_at = excluded.updated_at
	`, id, priority, now, now)
	if err != nil {
		return fmt.Errorf("upsert override %d: %w", id, err)
	}
	return nil
}

// Remove deletes the override row for id. Removing an absent row is a
// no-op.
func (s *OverrideStore) Remove(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM priority_overrides WHERE wordpress_id = ?", id)
	if err != nil {
		return fmt.Errorf("remove override %d: %w", id, err)
	}
	return nil
}

// All returns every stored override keyed by remote post id, for merge
// use in list views and the reconcile sweep.
func (s *OverrideStore) All(ctx context.Context) (map[int64]int, error) {
	var rows []domain.Override
	err := s.db.SelectContext(ctx, &rows,
		"SELECT wordpress_id, priority FROM priority_overrides")
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	overrides := make(map[int64]int, len(rows))
	for _, row := range rows {
		overrides[row.WordPressID] = row.Priority
	}
	return overrides, nil
}
