package serviceImp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sparc/entities"
	"sparc/pkg/calendar"
	"sparc/pkg/entry"
	"sparc/pkg/entry/repository"
	svc "sparc/pkg/entry/service"
	"sparc/pkg/task"
)

type service struct {
	repo  repository.Repo
	now   calendar.Clock
	loc   *time.Location
	log   *zap.Logger
	newID func() string
}

type Option func(*service)

func WithClock(c calendar.Clock) Option { return func(s *service) { s.now = c } }

func WithLocation(loc *time.Location) Option { return func(s *service) { s.loc = loc } }

func WithLogger(l *zap.Logger) Option { return func(s *service) { s.log = l } }

func New(r repository.Repo, opts ...Option) svc.Service {
	s := &service{
		repo:  r,
		now:   time.Now,
		loc:   time.Local,
		log:   zap.NewNop(),
		newID: func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// stamp is "now" at the precision occurrences are stored with.
func (s *service) stamp() entities.Occurrence {
	return entities.At(s.now().Truncate(time.Second))
}

func (s *service) Create(ctx context.Context, uid string, in entry.Input) (*entities.TimeEntry, error) {
	if uid == "" {
		return nil, errors.New("uid is required")
	}
	f := in.Fields
	if err := entry.Check(&f); err != nil {
		return nil, err
	}
	e := &entities.TimeEntry{ID: s.newID(), UserID: uid, OccurredOn: in.OccurredOn}
	if e.OccurredOn.IsZero() {
		e.OccurredOn = s.stamp()
	}
	f.Apply(e)
	if err := s.repo.Create(ctx, e); err != nil {
		s.log.Error("create entry", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	s.log.Debug("entry created", zap.String("uid", uid), zap.String("id", e.ID), zap.String("task", e.Task))
	return e, nil
}

func (s *service) Update(ctx context.Context, uid, id string, p entry.Patch) (*entities.TimeEntry, error) {
	cur, err := s.repo.FindLive(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	f := entry.FieldsOf(cur)
	p.Apply(&f)
	if err := entry.Check(&f); err != nil {
		return nil, err
	}
	f.Apply(cur)
	if p.OccurredOn != nil && !p.OccurredOn.IsZero() {
		cur.OccurredOn = *p.OccurredOn
	}
	cur.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, cur); err != nil {
		s.log.Warn("update entry", zap.String("uid", uid), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return cur, nil
}

func (s *service) SoftDelete(ctx context.Context, uid string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.repo.SoftDelete(ctx, uid, ids); err != nil {
		s.log.Warn("soft delete entries", zap.String("uid", uid), zap.Strings("ids", ids), zap.Error(err))
		return err
	}
	s.log.Info("entries deleted", zap.String("uid", uid), zap.Int("count", len(ids)))
	return nil
}

func (s *service) List(ctx context.Context, uid string, opts entry.ListOptions) ([]entities.TimeEntry, error) {
	taskFilter := ""
	if opts.Task != "" {
		t, ok := task.Parse(opts.Task)
		if !ok {
			return []entities.TimeEntry{}, nil
		}
		taskFilter = t
	}
	list, err := s.repo.ListByUser(ctx, uid, taskFilter, opts.IncludeDeleted)
	if err != nil {
		return nil, err
	}
	rng := opts.Range
	if rng == "" || rng == calendar.RangeAll {
		return list, nil
	}
	today := calendar.DayOfTime(s.now(), s.loc)
	out := list[:0]
	for _, e := range list {
		if rng.Contains(calendar.DayOf(e.OccurredOn, s.loc), today) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *service) Duplicate(ctx context.Context, uid string, ids []string) ([]entities.TimeEntry, error) {
	if len(ids) == 0 {
		return []entities.TimeEntry{}, nil
	}
	src, err := s.repo.FindLiveMany(ctx, uid, ids)
	if err != nil {
		return nil, err
	}
	stamp := s.stamp()
	clones := make([]entities.TimeEntry, 0, len(src))
	for _, e := range src {
		c := e
		c.ID = s.newID()
		c.OccurredOn = stamp
		c.CreatedAt = time.Time{}
		c.UpdatedAt = time.Time{}
		if e.PatientCount != nil {
			n := *e.PatientCount
			c.PatientCount = &n
		}
		clones = append(clones, c)
	}
	if err := s.repo.CreateMany(ctx, clones); err != nil {
		s.log.Warn("duplicate entries", zap.String("uid", uid), zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}
	return clones, nil
}
