package domain

import (
	"fmt"
	"time"
)

// PostStatus is the publication status of a WordPress post.
type PostStatus string

const (
	StatusDraft   PostStatus = "draft"
	StatusPublish PostStatus = "publish"
	StatusPrivate PostStatus = "private"
)

// ValidStatus reports whether s is a status this system accepts.
func ValidStatus(s PostStatus) bool {
	switch s {
	case StatusDraft, StatusPublish, StatusPrivate:
		return true
	}
	return false
}

// Statuses returns all accepted post statuses.
func Statuses() []PostStatus {
	return []PostStatus{StatusDraft, StatusPublish, StatusPrivate}
}

// EnrichedPost is the merged view of a remote WordPress post and its
// local priority override. It is the only post shape exposed to callers;
// the raw remote representation and the override row never leave the
// service layer.
type EnrichedPost struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Excerpt  string     `json:"excerpt"`
	Status   PostStatus `json:"status"`
	Date     time.Time  `json:"date"`
	Modified time.Time  `json:"modified"`
	Priority int        `json:"priority"`
	Link     string     `json:"link"`
}

// Override is a locally persisted priority annotation keyed by the
// remote post id. The remote post may no longer exist.
type Override struct {
	WordPressID int64 `db:"wordpress_id"`
	Priority    int   `db:"priority"`
}

// Priority bounds.
const (
	MinPriority = 0
	MaxPriority = 10
)

// ValidatePriority rejects priorities outside [MinPriority, MaxPriority].
// Out-of-range values are never clamped.
func ValidatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return fmt.Errorf("%w: priority must be between %d and %d, got %d",
			ErrValidation, MinPriority, MaxPriority, p)
	}
	return nil
}
