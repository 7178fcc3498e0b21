package serviceImp

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sparc/entities"
	"sparc/pkg/admin"
	"sparc/pkg/admin/repository"
	svc "sparc/pkg/admin/service"
	"sparc/pkg/burnout"
	"sparc/pkg/calendar"
	"sparc/pkg/user"
	userrepo "sparc/pkg/user/repository"
)

type service struct {
	stats repository.Repo
	users userrepo.Repo
	now   calendar.Clock
	loc   *time.Location
	log   *zap.Logger
}

type Option func(*service)

func WithClock(c calendar.Clock) Option { return func(s *service) { s.now = c } }

func WithLocation(loc *time.Location) Option { return func(s *service) { s.loc = loc } }

func WithLogger(l *zap.Logger) Option { return func(s *service) { s.log = l } }

func New(stats repository.Repo, users userrepo.Repo, opts ...Option) svc.Service {
	s := &service{stats: stats, users: users, now: time.Now, loc: time.Local, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// GetActivityStats runs the independent aggregate queries concurrently.
func (s *service) GetActivityStats(ctx context.Context) (*admin.Stats, error) {
	now := s.now()
	out := &admin.Stats{GeneratedAt: now}

	today := calendar.DayOfTime(now, s.loc)
	thisMonday, _ := calendar.WeekBounds(today)
	firstMonday := thisMonday.AddDays(-7 * (admin.WeeksShown - 1))

	var byOccurrence []admin.OccurrenceMinutes
	var levels []admin.LevelCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Totals, err = s.stats.Totals(gctx, now.Add(-admin.ActiveWindow).UTC())
		return err
	})
	g.Go(func() (err error) {
		out.ByTask, err = s.stats.MinutesByTask(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.ByUser, err = s.stats.MinutesByUser(gctx, admin.TopUsers)
		return err
	})
	g.Go(func() (err error) {
		// a day early so date-times stored with an earlier offset are kept
		byOccurrence, err = s.stats.MinutesByOccurrence(gctx, firstMonday.AddDays(-1).String())
		return err
	})
	g.Go(func() (err error) {
		levels, err = s.stats.BurnoutLevels(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TypicalDay, err = s.stats.TypicalDay(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("activity stats", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(out.ByTask, func(i, j int) bool { return out.ByTask[i].Minutes > out.ByTask[j].Minutes })
	sort.SliceStable(out.ByUser, func(i, j int) bool { return out.ByUser[i].Minutes > out.ByUser[j].Minutes })
	out.ByWeek = s.weeks(firstMonday, byOccurrence)
	out.BurnoutLevels = orderLevels(levels)
	return out, nil
}

// weeks buckets per-occurrence sums into Monday-based weeks, oldest first,
// with empty weeks kept.
func (s *service) weeks(first calendar.Day, rows []admin.OccurrenceMinutes) []admin.WeekMinutes {
	out := make([]admin.WeekMinutes, admin.WeeksShown)
	for i := range out {
		monday := first.AddDays(7 * i)
		out[i] = admin.WeekMinutes{Week: calendar.ISOWeekLabel(monday.Time(time.UTC)), Start: monday.String()}
	}
	for _, r := range rows {
		d := calendar.DayOf(r.OccurredOn, s.loc)
		if d.Before(first) {
			continue
		}
		monday, _ := calendar.WeekBounds(d)
		i := int(monday.Time(time.UTC).Sub(first.Time(time.UTC)).Hours() / (24 * 7))
		if i >= len(out) {
			continue
		}
		out[i].Entries += r.Entries
		out[i].Minutes += r.Minutes
	}
	return out
}

func orderLevels(rows []admin.LevelCount) []admin.LevelCount {
	counts := map[string]int64{}
	for _, r := range rows {
		counts[r.Level] = r.Count
	}
	out := make([]admin.LevelCount, 0, len(burnout.Levels))
	for _, l := range burnout.Levels {
		out = append(out, admin.LevelCount{Level: string(l), Count: counts[string(l)]})
	}
	return out
}

func (s *service) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.users.List(ctx)
}

func (s *service) SetRole(ctx context.Context, actor, uid, role string) (*entities.User, error) {
	if !user.ValidRole(role) {
		return nil, user.ErrInvalidRole
	}
	if actor == uid && role != entities.RoleAdmin {
		return nil, admin.ErrSelfDemote
	}
	if err := s.users.SetRole(ctx, uid, role); err != nil {
		return nil, err
	}
	s.log.Info("role changed", zap.String("by", actor), zap.String("uid", uid), zap.String("role", role))
	return s.users.Get(ctx, uid)
}
