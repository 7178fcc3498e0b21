package router

import (
	"github.com/labstack/echo/v4"

	"sparc/entities"
	"sparc/pkg/middleware"
)

// Registrar mounts a controller's routes on a group.
type Registrar interface {
	Register(g *echo.Group)
}

// New mounts every route. Everything under /api/v1 requires an identity;
// /api/v1/admin also requires the admin role.
func New(
	e *echo.Echo,
	identity echo.MiddlewareFunc,
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
	entryCtrl Registrar,
	surveyCtrl Registrar,
	adminCtrl Registrar,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/devlogin", authCtrl.DevLogin)

	api := e.Group("/api/v1", identity)
	api.GET("/whoami", authCtrl.WhoAmI)
	entryCtrl.Register(api)
	surveyCtrl.Register(api)

	adminCtrl.Register(api.Group("/admin", middleware.RequireRole(entities.RoleAdmin)))
	return e
}
