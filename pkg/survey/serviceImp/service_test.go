package serviceImp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparc/database"
	"sparc/entities"
	"sparc/pkg/burnout"
	"sparc/pkg/survey"
	"sparc/pkg/survey/repositoryImp"
	svc "sparc/pkg/survey/service"
)

var fixedNow = time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) svc.Service {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "survey.db"))
	require.NoError(t, err)
	return New(repositoryImp.New(db), WithClock(func() time.Time { return fixedNow }))
}

func ptr[T any](v T) *T { return &v }

func TestProfileCycle(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	empty, err := s.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", empty.UserID)
	assert.Empty(t, empty.Profession)

	saved, err := s.SaveProfile(ctx, "u1", entities.UserProfile{
		UserID:        "someone-else",
		Profession:    "Physician",
		YearsInASP:    ptr(7),
		ASPFTEPercent: ptr(25.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, "physician", saved.Profession)

	_, err = s.SaveProfile(ctx, "u1", entities.UserProfile{Profession: "physician", YearsInASP: ptr(8)})
	require.NoError(t, err)
	got, err := s.Profile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.YearsInASP)
	assert.Equal(t, 8, *got.YearsInASP)
	assert.Nil(t, got.ASPFTEPercent)

	_, err = s.SaveProfile(ctx, "u1", entities.UserProfile{ASPFTEPercent: ptr(101.0)})
	assert.ErrorIs(t, err, survey.ErrValidation)

	other, err := s.Profile(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, other.YearsInASP)
}

func TestAdditionalKeepsCoverageMode(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.SaveAdditional(ctx, "u1", entities.AdditionalSurvey{
		BedsCovered:         entities.PercentBeds(60),
		HasIDConsultService: ptr(true),
	})
	require.NoError(t, err)

	got, err := s.Additional(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.BedsCovered)
	assert.Equal(t, entities.BedCoverage{Mode: entities.CoveragePercent, Value: 60}, *got.BedsCovered)
	require.NotNil(t, got.HasIDConsultService)
	assert.True(t, *got.HasIDConsultService)

	_, err = s.SaveAdditional(ctx, "u1", entities.AdditionalSurvey{BedsCovered: entities.ExactBeds(250)})
	require.NoError(t, err)
	got, err = s.Additional(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entities.CoverageExact, got.BedsCovered.Mode)
	assert.Nil(t, got.HasIDConsultService)

	_, err = s.SaveAdditional(ctx, "u1", entities.AdditionalSurvey{BedsCovered: &entities.BedCoverage{Mode: entities.CoveragePercent, Value: 140}})
	assert.ErrorIs(t, err, survey.ErrValidation)
}

func TestSubmitBurnout(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Burnout(ctx, "u1")
	require.ErrorIs(t, err, survey.ErrNotFound)

	answers := map[int]int{}
	for q := 1; q <= burnout.QuestionCount; q++ {
		answers[q] = 4
	}
	delete(answers, 12)
	_, err = s.SubmitBurnout(ctx, "u1", answers)
	require.ErrorIs(t, err, survey.ErrValidation)
	assert.Contains(t, err.Error(), "12: answer required")

	answers[12] = 4
	res, err := s.SubmitBurnout(ctx, "u1", answers)
	require.NoError(t, err)
	assert.Equal(t, string(burnout.LevelVeryHigh), res.OverallLevel)

	got, err := s.Burnout(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, answers, got.Answers)
	assert.InDelta(t, 4.0, got.Overall, 1e-9)
	assert.Equal(t, string(burnout.LevelVeryHigh), got.ExhaustionLevel)
	assert.True(t, got.SubmittedAt.Equal(fixedNow))
}
