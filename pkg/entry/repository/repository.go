package repository

import (
	"context"

	"sparc/entities"
)

type Repo interface {
	Create(ctx context.Context, e *entities.TimeEntry) error
	CreateMany(ctx context.Context, es []entities.TimeEntry) error
	Update(ctx context.Context, e *entities.TimeEntry) error
	// FindLive returns a non-deleted entry owned by uid.
	FindLive(ctx context.Context, uid, id string) (*entities.TimeEntry, error)
	FindLiveMany(ctx context.Context, uid string, ids []string) ([]entities.TimeEntry, error)
	// SoftDelete marks every id deleted, or none of them.
	SoftDelete(ctx context.Context, uid string, ids []string) error
	ListByUser(ctx context.Context, uid, task string, includeDeleted bool) ([]entities.TimeEntry, error)
}
