package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sparc/entities"
	"sparc/pkg/auth/controller"
	"sparc/pkg/middleware"
)

type authCtrl struct {
	devLogin bool
	devUID   string
}

func NewAuthController(devLogin bool, devUID string) controller.AuthController {
	return &authCtrl{devLogin: devLogin, devUID: devUID}
}

func (h *authCtrl) DevLogin(c echo.Context) error {
	if !h.devLogin {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "dev login disabled"})
	}
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = h.devUID
	}
	if uid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "uid required"})
	}
	middleware.SetSession(c, uid)
	return c.JSON(http.StatusOK, echo.Map{"uid": uid})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	role := entities.RoleUser
	if u := middleware.CurrentUser(c); u != nil {
		role = u.Role
	}
	return c.JSON(http.StatusOK, echo.Map{"uid": middleware.UID(c), "role": role})
}
