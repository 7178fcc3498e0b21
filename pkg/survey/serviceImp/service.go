package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"sparc/entities"
	"sparc/pkg/burnout"
	"sparc/pkg/calendar"
	"sparc/pkg/survey"
	"sparc/pkg/survey/repository"
	svc "sparc/pkg/survey/service"
)

type service struct {
	repo repository.Repo
	now  calendar.Clock
	log  *zap.Logger
}

type Option func(*service)

func WithClock(c calendar.Clock) Option { return func(s *service) { s.now = c } }

func WithLogger(l *zap.Logger) Option { return func(s *service) { s.log = l } }

func New(r repository.Repo, opts ...Option) svc.Service {
	s := &service{repo: r, now: time.Now, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Profile(ctx context.Context, uid string) (*entities.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx, uid)
	if errors.Is(err, survey.ErrNotFound) {
		return &entities.UserProfile{UserID: uid}, nil
	}
	return p, err
}

func (s *service) SaveProfile(ctx context.Context, uid string, p entities.UserProfile) (*entities.UserProfile, error) {
	p.UserID = uid
	if err := survey.ValidateProfile(&p); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(ctx, &p); err != nil {
		s.log.Error("save profile", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	return s.repo.GetProfile(ctx, uid)
}

func (s *service) Additional(ctx context.Context, uid string) (*entities.AdditionalSurvey, error) {
	a, err := s.repo.GetAdditional(ctx, uid)
	if errors.Is(err, survey.ErrNotFound) {
		return &entities.AdditionalSurvey{UserID: uid}, nil
	}
	return a, err
}

func (s *service) SaveAdditional(ctx context.Context, uid string, a entities.AdditionalSurvey) (*entities.AdditionalSurvey, error) {
	a.UserID = uid
	if err := survey.ValidateAdditional(&a); err != nil {
		return nil, err
	}
	a.UpdatedAt = s.now()
	if err := s.repo.SaveAdditional(ctx, &a); err != nil {
		s.log.Error("save additional survey", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	return s.repo.GetAdditional(ctx, uid)
}

func (s *service) BurnoutQuestions() burnout.Inventory { return burnout.Questions() }

func (s *service) Burnout(ctx context.Context, uid string) (*entities.BurnoutResponse, error) {
	return s.repo.GetBurnout(ctx, uid)
}

func (s *service) SubmitBurnout(ctx context.Context, uid string, answers map[int]int) (*entities.BurnoutResponse, error) {
	scores, ok := burnout.Score(answers)
	if !ok {
		return nil, &survey.ValidationError{Fields: answerErrors(answers)}
	}
	now := s.now()
	b := &entities.BurnoutResponse{
		UserID:             uid,
		Answers:            answers,
		Exhaustion:         scores.Exhaustion,
		Disengagement:      scores.Disengagement,
		Overall:            scores.Overall,
		ExhaustionLevel:    string(scores.ExhaustionLevel),
		DisengagementLevel: string(scores.DisengagementLevel),
		OverallLevel:       string(scores.OverallLevel),
		SubmittedAt:        now,
		UpdatedAt:          now,
	}
	if err := s.repo.SaveBurnout(ctx, b); err != nil {
		s.log.Error("save burnout response", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	s.log.Info("burnout submitted", zap.String("uid", uid), zap.String("level", b.OverallLevel))
	return b, nil
}

func answerErrors(answers map[int]int) map[string]string {
	errs := map[string]string{}
	for q := 1; q <= burnout.QuestionCount; q++ {
		a, ok := answers[q]
		switch {
		case !ok:
			errs[strconv.Itoa(q)] = "answer required"
		case a < burnout.MinAnswer || a > burnout.MaxAnswer:
			errs[strconv.Itoa(q)] = fmt.Sprintf("answer must be between %d and %d", burnout.MinAnswer, burnout.MaxAnswer)
		}
	}
	for q := range answers {
		if q < 1 || q > burnout.QuestionCount {
			errs[strconv.Itoa(q)] = "unknown question"
		}
	}
	return errs
}
