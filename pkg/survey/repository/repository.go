package repository

import (
	"context"

	"sparc/entities"
)

// Repo stores one record of each kind per user. Getters return
// survey.ErrNotFound when nothing has been saved yet.
type Repo interface {
	GetProfile(ctx context.Context, uid string) (*entities.UserProfile, error)
	SaveProfile(ctx context.Context, p *entities.UserProfile) error
	GetAdditional(ctx context.Context, uid string) (*entities.AdditionalSurvey, error)
	SaveAdditional(ctx context.Context, a *entities.AdditionalSurvey) error
	GetBurnout(ctx context.Context, uid string) (*entities.BurnoutResponse, error)
	SaveBurnout(ctx context.Context, b *entities.BurnoutResponse) error
}
