package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sparc/entities"
	"sparc/pkg/user"
	"sparc/pkg/user/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Touch(ctx context.Context, uid string, promote bool, at time.Time) (*entities.User, error) {
	var u entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("uid = ?", uid).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			u = entities.User{UID: uid, Role: entities.RoleUser, LastSeenAt: at}
			if promote {
				u.Role = entities.RoleAdmin
			}
			return tx.Create(&u).Error
		}
		if err != nil {
			return err
		}
		updates := map[string]any{"last_seen_at": at}
		if promote && u.Role != entities.RoleAdmin {
			updates["role"] = entities.RoleAdmin
			u.Role = entities.RoleAdmin
		}
		u.LastSeenAt = at
		return tx.Model(&entities.User{}).Where("uid = ?", uid).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("touch user %s: %w", uid, err)
	}
	return &u, nil
}

func (r *sqliteRepo) Get(ctx context.Context, uid string) (*entities.User, error) {
	var u entities.User
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]entities.User, error) {
	var out []entities.User
	if err := r.db.WithContext(ctx).Order("uid").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) SetRole(ctx context.Context, uid, role string) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("uid = ?", uid).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("set role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}
