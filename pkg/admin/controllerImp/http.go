package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sparc/pkg/admin"
	asvc "sparc/pkg/admin/service"
	"sparc/pkg/middleware"
	"sparc/pkg/user"
)

type httpCtrl struct{ s asvc.Service }

func New(s asvc.Service) *httpCtrl { return &httpCtrl{s: s} }

// Register mounts the admin routes; g must already require the admin role.
func (h *httpCtrl) Register(g *echo.Group) {
	g.GET("/stats", h.stats)
	g.GET("/users", h.users)
	g.PUT("/users/:uid/role", h.setRole)
}

func (h *httpCtrl) stats(c echo.Context) error {
	st, err := h.s.GetActivityStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *httpCtrl) users(c echo.Context) error {
	list, err := h.s.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) setRole(c echo.Context) error {
	var in struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	u, err := h.s.SetRole(c.Request().Context(), middleware.UID(c), c.Param("uid"), in.Role)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, u)
	case errors.Is(err, user.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, admin.ErrSelfDemote):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
