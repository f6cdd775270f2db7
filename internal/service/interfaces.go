package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"pressdesk/pkg/wordpress"
)

// RemoteClient is the slice of the WordPress client the services need.
type RemoteClient interface {
	Probe(ctx context.Context) bool
	List(ctx context.Context, perPage int) ([]wordpress.Post, error)
	Get(ctx context.Context, id int64) (*wordpress.Post, error)
	Create(ctx context.Context, title, content, status string) (*wordpress.Post, error)
	Update(ctx context.Context, id int64, title, content, status string) (*wordpress.Post, error)
	Delete(ctx context.Context, id int64) error
	AuthenticateAs(ctx context.Context, username, password string) (bool, error)
	BaseURL() string
}

// OverrideStore is the local priority persistence the services need.
type OverrideStore interface {
	Get(ctx context.Context, id int64) (int, error)
	Upsert(ctx context.Context, id int64, priority int) error
	Remove(ctx context.Context, id int64) error
	All(ctx context.Context) (map[int64]int, error)
}
