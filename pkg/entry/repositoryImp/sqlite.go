package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sparc/entities"
	"sparc/pkg/entry"
	"sparc/pkg/entry/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, e *entities.TimeEntry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *sqliteRepo) CreateMany(ctx context.Context, es []entities.TimeEntry) error {
	if len(es) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&es).Error; err != nil {
			return fmt.Errorf("insert entries: %w", err)
		}
		return nil
	})
}

func (r *sqliteRepo) Update(ctx context.Context, e *entities.TimeEntry) error {
	// deleted rows never match, so a concurrent delete wins
	res := r.db.WithContext(ctx).Model(&entities.TimeEntry{}).
		Where("id = ? AND user_id = ?", e.ID, e.UserID).
		Select("task", "other_task", "minutes", "patient_count", "is_typical_day", "occurred_on", "comment", "updated_at").
		Updates(e)
	if res.Error != nil {
		return fmt.Errorf("update entry %s: %w", e.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", entry.ErrNotFound, e.ID)
	}
	return nil
}

func (r *sqliteRepo) FindLive(ctx context.Context, uid, id string) (*entities.TimeEntry, error) {
	var out entities.TimeEntry
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", entry.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find entry %s: %w", id, err)
	}
	return &out, nil
}

func (r *sqliteRepo) FindLiveMany(ctx context.Context, uid string, ids []string) ([]entities.TimeEntry, error) {
	ids = unique(ids)
	var out []entities.TimeEntry
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", uid, ids).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	if len(out) != len(ids) {
		return nil, fmt.Errorf("%w: %d of %d ids", entry.ErrNotFound, len(ids)-len(out), len(ids))
	}
	// keep caller order
	byID := make(map[string]entities.TimeEntry, len(out))
	for _, e := range out {
		byID[e.ID] = e
	}
	ordered := make([]entities.TimeEntry, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}

func (r *sqliteRepo) SoftDelete(ctx context.Context, uid string, ids []string) error {
	ids = unique(ids)
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id IN ?", uid, ids).Delete(&entities.TimeEntry{})
		if res.Error != nil {
			return fmt.Errorf("soft delete entries: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("%w: %d of %d ids", entry.ErrNotFound, int64(len(ids))-res.RowsAffected, len(ids))
		}
		return nil
	})
}

func (r *sqliteRepo) ListByUser(ctx context.Context, uid, task string, includeDeleted bool) ([]entities.TimeEntry, error) {
	q := r.db.WithContext(ctx).Model(&entities.TimeEntry{}).Where("user_id = ?", uid)
	if includeDeleted {
		q = q.Unscoped()
	}
	if task != "" {
		q = q.Where("task = ?", task)
	}
	var list []entities.TimeEntry
	if err := q.Order("created_at desc, id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return list, nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
