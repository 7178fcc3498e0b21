package repository

import (
	"context"
	"time"

	"sparc/pkg/admin"
)

// Repo runs the aggregate queries. Soft-deleted entries never count.
type Repo interface {
	Totals(ctx context.Context, activeSince time.Time) (admin.Totals, error)
	MinutesByTask(ctx context.Context) ([]admin.TaskMinutes, error)
	MinutesByUser(ctx context.Context, limit int) ([]admin.UserMinutes, error)
	// MinutesByOccurrence groups entries whose date is on or after since.
	MinutesByOccurrence(ctx context.Context, since string) ([]admin.OccurrenceMinutes, error)
	BurnoutLevels(ctx context.Context) ([]admin.LevelCount, error)
	TypicalDay(ctx context.Context) (admin.TypicalDay, error)
}
