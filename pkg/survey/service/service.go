package service

import (
	"context"

	"sparc/entities"
	"sparc/pkg/burnout"
)

type Service interface {
	// Profile returns an empty profile for users who have not saved one.
	Profile(ctx context.Context, uid string) (*entities.UserProfile, error)
	SaveProfile(ctx context.Context, uid string, p entities.UserProfile) (*entities.UserProfile, error)
	Additional(ctx context.Context, uid string) (*entities.AdditionalSurvey, error)
	SaveAdditional(ctx context.Context, uid string, a entities.AdditionalSurvey) (*entities.AdditionalSurvey, error)

	BurnoutQuestions() burnout.Inventory
	// Burnout fails with survey.ErrNotFound before the first submission.
	Burnout(ctx context.Context, uid string) (*entities.BurnoutResponse, error)
	// SubmitBurnout takes direction-corrected scores keyed by question index.
	SubmitBurnout(ctx context.Context, uid string, answers map[int]int) (*entities.BurnoutResponse, error)
}
