package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sparc/pkg/calendar"
	"sparc/pkg/middleware"

	authCtrlImp "sparc/pkg/auth/controllerImp"
	healthCtrlImp "sparc/pkg/health/controllerImp"

	entryCtrlImp "sparc/pkg/entry/controllerImp"
	entryRepoImp "sparc/pkg/entry/repositoryImp"
	entrySvcImp "sparc/pkg/entry/serviceImp"

	surveyCtrlImp "sparc/pkg/survey/controllerImp"
	surveyRepoImp "sparc/pkg/survey/repositoryImp"
	surveySvcImp "sparc/pkg/survey/serviceImp"

	adminCtrlImp "sparc/pkg/admin/controllerImp"
	adminRepoImp "sparc/pkg/admin/repositoryImp"
	adminSvcImp "sparc/pkg/admin/serviceImp"

	userRepoImp "sparc/pkg/user/repositoryImp"
)

type Options struct {
	Location *time.Location
	Clock    calendar.Clock
	Logger   *zap.Logger
	Identity middleware.IdentityConfig
	Started  time.Time
}

// Build wires repositories, services and controllers onto a new echo
// instance backed by db.
func Build(db *gorm.DB, opts Options) *echo.Echo {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Started.IsZero() {
		opts.Started = opts.Clock()
	}
	log := opts.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(log.Named("http")))

	users := userRepoImp.New(db)

	entries := entrySvcImp.New(entryRepoImp.New(db),
		entrySvcImp.WithClock(opts.Clock),
		entrySvcImp.WithLocation(opts.Location),
		entrySvcImp.WithLogger(log.Named("entry")))
	surveys := surveySvcImp.New(surveyRepoImp.New(db),
		surveySvcImp.WithClock(opts.Clock),
		surveySvcImp.WithLogger(log.Named("survey")))
	admins := adminSvcImp.New(adminRepoImp.New(db), users,
		adminSvcImp.WithClock(opts.Clock),
		adminSvcImp.WithLocation(opts.Location),
		adminSvcImp.WithLogger(log.Named("admin")))

	idCfg := opts.Identity
	if idCfg.Now == nil {
		idCfg.Now = opts.Clock
	}
	if idCfg.Logger == nil {
		idCfg.Logger = log.Named("identity")
	}

	return New(
		e,
		middleware.Identity(idCfg, users),
		authCtrlImp.NewAuthController(idCfg.DevLogin, idCfg.DevUID),
		healthCtrlImp.NewHealthCtrl(db, opts.Started, log.Named("health")),
		entryCtrlImp.New(entries, opts.Clock, opts.Location, log.Named("entry")),
		surveyCtrlImp.New(surveys),
		adminCtrlImp.New(admins),
	)
}
