package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"pressdesk/internal/domain"
	"pressdesk/pkg/wordpress"
)

// PostService merges the remote post content with the local priority
// override into one coherent view and owns the single write path. The
// remote store is authoritative: within one operation the remote write
// strictly precedes the local one, and a remote failure on the
// authoritative half is never swallowed.
type PostService struct {
	remote    RemoteClient
	overrides OverrideStore
	logger    *slog.Logger
}

// NewPostService creates the merge engine.
func NewPostService(remote RemoteClient, overrides OverrideStore, logger *slog.Logger) *PostService {
	return &PostService{
		remote:    remote,
		overrides: overrides,
		logger:    logger.With("component", "posts"),
	}
}

// PostInput is the write payload for create and update. A nil Priority
// means "do not touch the override"; a present value, including 0,
// always upserts. An empty Status means draft on create and "leave
// unchanged" on update.
type PostInput struct {
	Title    string
	Content  string
	Status   domain.PostStatus
	Priority *int
}

func (in PostInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(in.Title) > 255 {
		return fmt.Errorf("%w: title must be at most 255 characters", domain.ErrValidation)
	}
	if in.Content == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if in.Status != "" && !domain.ValidStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}
	if in.Priority != nil {
		if err := domain.ValidatePriority(*in.Priority); err != nil {
			return err
		}
	}
	return nil
}

// List returns all remote posts enriched with local priorities. Override
// rows whose remote post no longer exists simply never join and are
// excluded from the output. With sortByPriority the result is stably
// sorted by priority descending; ties keep remote order.
func (s *PostService) List(ctx context.Context, sortByPriority bool) ([]domain.EnrichedPost, error) {
	remote, err := s.remote.List(ctx, 100)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrides.All(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.EnrichedPost, len(remote))
	for i := range remote {
		posts[i] = enrich(&remote[i], overrides[remote[i].ID])
	}

	if sortByPriority {
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Priority > posts[j].Priority
		})
	}

	s.logger.Info("listed posts", "count", len(posts))
	return posts, nil
}

// Get returns one enriched post. A remote failure is fatal; there is no
// fallback to stale local data.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.EnrichedPost, error) {
	remote, err := s.remote.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	priority, err := s.overrides.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	post := enrich(remote, priority)
	return &post, nil
}

// Create creates the post remotely first; the remote-assigned id must
// exist before a local row can reference it. The override write is
// best-effort: if it fails the operation still succeeds with priority
// reading as 0, and the loss is logged.
func (s *PostService) Create(ctx context.Context, in PostInput) (*domain.EnrichedPost, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}

	remote, err := s.remote.Create(ctx, in.Title, in.Content, string(status))
	if err != nil {
		return nil, err
	}

	priority := 0
	if in.Priority != nil {
		if err := s.overrides.Upsert(ctx, remote.ID, *in.Priority); err != nil {
			s.logger.Error("override write failed after remote create",
				"id", remote.ID, "priority", *in.Priority, "error", err)
		} else {
			priority = *in.Priority
		}
	}

	post := enrich(remote, priority)
	return &post, nil
}

// Update rewrites the post remotely, then upserts the override when a
// priority is present in the input.
func (s *PostService) Update(ctx context.Context, id int64, in PostInput) (*domain.EnrichedPost, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	remote, err := s.remote.Update(ctx, id, in.Title, in.Content, string(in.Status))
	if err != nil {
		return nil, err
	}

	var priority int
	if in.Priority != nil {
		if err := s.overrides.Upsert(ctx, id, *in.Priority); err != nil {
			return nil, err
		}
		priority = *in.Priority
	} else {
		priority, err = s.overrides.Get(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	post := enrich(remote, priority)
	return &post, nil
}

// Delete deletes the post remotely, then removes the local override.
// When the remote delete fails the override is left untouched, so local
// state never runs ahead of remote state for deletion. A failed local
// remove leaves an orphan row for the reconcile sweep and is not an
// error.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.overrides.Remove(ctx, id); err != nil {
		s.logger.Error("override remove failed after remote delete", "id", id, "error", err)
	}
	return nil
}

// UpdatePriority writes only the local override. It never touches the
// remote post and does not verify it still exists; a pure local
// annotation update should not cost a remote round trip. Orphans this
// can leave behind are cleaned by the reconcile sweep.
func (s *PostService) UpdatePriority(ctx context.Context, id int64, priority int) error {
	if err := domain.ValidatePriority(priority); err != nil {
		return err
	}

	if err := s.overrides.Upsert(ctx, id, priority); err != nil {
		return err
	}

	s.logger.Info("priority updated", "id", id, "priority", priority)
	return nil
}

func enrich(p *wordpress.Post, priority int) domain.EnrichedPost {
	return domain.EnrichedPost{
		ID:       p.ID,
		Title:    p.Title,
		Content:  p.Content,
		Excerpt:  p.Excerpt,
		Status:   domain.PostStatus(p.Status),
		Date:     p.Date,
		Modified: p.Modified,
		Priority: priority,
		Link:     p.Link,
	}
}
