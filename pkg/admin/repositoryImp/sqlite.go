package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sparc/entities"
	"sparc/pkg/admin"
	"sparc/pkg/admin/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) entries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entities.TimeEntry{})
}

func (r *sqliteRepo) Totals(ctx context.Context, activeSince time.Time) (admin.Totals, error) {
	var t admin.Totals
	var sum struct {
		Entries int64
		Minutes int64
	}
	if err := r.entries(ctx).Select("COUNT(*) AS entries, COALESCE(SUM(minutes), 0) AS minutes").Scan(&sum).Error; err != nil {
		return t, fmt.Errorf("entry totals: %w", err)
	}
	t.Entries, t.Minutes = sum.Entries, sum.Minutes

	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&t.Users).Error; err != nil {
		return t, fmt.Errorf("count users: %w", err)
	}
	if err := r.entries(ctx).Where("created_at >= ?", activeSince).Distinct("user_id").Count(&t.ActiveUsers).Error; err != nil {
		return t, fmt.Errorf("count active users: %w", err)
	}
	return t, nil
}

func (r *sqliteRepo) MinutesByTask(ctx context.Context) ([]admin.TaskMinutes, error) {
	var out []admin.TaskMinutes
	err := r.entries(ctx).
		Select("task, COUNT(*) AS entries, SUM(minutes) AS minutes").
		Group("task").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("minutes by task: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) MinutesByUser(ctx context.Context, limit int) ([]admin.UserMinutes, error) {
	var out []admin.UserMinutes
	err := r.entries(ctx).
		Select("user_id, COUNT(*) AS entries, SUM(minutes) AS minutes").
		Group("user_id").
		Order("minutes DESC, user_id").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("minutes by user: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) MinutesByOccurrence(ctx context.Context, since string) ([]admin.OccurrenceMinutes, error) {
	var out []admin.OccurrenceMinutes
	err := r.entries(ctx).
		Select("occurred_on, COUNT(*) AS entries, SUM(minutes) AS minutes").
		Where("occurred_on >= ?", since).
		Group("occurred_on").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("minutes by occurrence: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) BurnoutLevels(ctx context.Context) ([]admin.LevelCount, error) {
	var out []admin.LevelCount
	err := r.db.WithContext(ctx).Model(&entities.BurnoutResponse{}).
		Select("overall_level AS level, COUNT(*) AS count").
		Group("overall_level").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("burnout levels: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) TypicalDay(ctx context.Context) (admin.TypicalDay, error) {
	var t admin.TypicalDay
	err := r.entries(ctx).
		Select("COALESCE(SUM(CASE WHEN is_typical_day THEN 1 ELSE 0 END), 0) AS typical, COUNT(*) AS total").
		Scan(&t).Error
	if err != nil {
		return t, fmt.Errorf("typical day ratio: %w", err)
	}
	if t.Total > 0 {
		t.Ratio = float64(t.Typical) / float64(t.Total)
	}
	return t, nil
}
