// Package service defines the persistence client contract shared by the
// list engine, the quick-entry form and the HTTP layer.
package service

import (
	"context"

	"sparc/entities"
	"sparc/pkg/entry"
)

// Service is implemented by the local store and by the HTTP client.
// Every call may fail; callers must not assume success.
type Service interface {
	Create(ctx context.Context, uid string, in entry.Input) (*entities.TimeEntry, error)
	// Update fails with entry.ErrNotFound unless id is a live entry owned by uid.
	Update(ctx context.Context, uid, id string, p entry.Patch) (*entities.TimeEntry, error)
	SoftDelete(ctx context.Context, uid string, ids []string) error
	List(ctx context.Context, uid string, opts entry.ListOptions) ([]entities.TimeEntry, error)
	// Duplicate clones each entry with a new id, occurring now.
	Duplicate(ctx context.Context, uid string, ids []string) ([]entities.TimeEntry, error)
}
