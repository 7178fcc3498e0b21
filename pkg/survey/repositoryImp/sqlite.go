package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sparc/entities"
	"sparc/pkg/survey"
	"sparc/pkg/survey/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func first[T any](ctx context.Context, db *gorm.DB, uid string) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where("user_id = ?", uid).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, survey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// upsert keeps created_at from the first save.
func upsert(ctx context.Context, db *gorm.DB, v any) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(v).Error
}

func (r *sqliteRepo) GetProfile(ctx context.Context, uid string) (*entities.UserProfile, error) {
	return first[entities.UserProfile](ctx, r.db, uid)
}

func (r *sqliteRepo) SaveProfile(ctx context.Context, p *entities.UserProfile) error {
	if err := upsert(ctx, r.db, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *sqliteRepo) GetAdditional(ctx context.Context, uid string) (*entities.AdditionalSurvey, error) {
	return first[entities.AdditionalSurvey](ctx, r.db, uid)
}

func (r *sqliteRepo) SaveAdditional(ctx context.Context, a *entities.AdditionalSurvey) error {
	if err := upsert(ctx, r.db, a); err != nil {
		return fmt.Errorf("save additional survey: %w", err)
	}
	return nil
}

func (r *sqliteRepo) GetBurnout(ctx context.Context, uid string) (*entities.BurnoutResponse, error) {
	return first[entities.BurnoutResponse](ctx, r.db, uid)
}

func (r *sqliteRepo) SaveBurnout(ctx context.Context, b *entities.BurnoutResponse) error {
	if err := upsert(ctx, r.db, b); err != nil {
		return fmt.Errorf("save burnout response: %w", err)
	}
	return nil
}
