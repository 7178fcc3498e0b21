package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"sparc/entities"
	"sparc/pkg/burnout"
	"sparc/pkg/middleware"
	"sparc/pkg/survey"
	ssvc "sparc/pkg/survey/service"
)

type httpCtrl struct{ s ssvc.Service }

func New(s ssvc.Service) *httpCtrl { return &httpCtrl{s: s} }

func (h *httpCtrl) Register(g *echo.Group) {
	g.GET("/profile", h.getProfile)
	g.PUT("/profile", h.putProfile)
	g.GET("/surveys/additional", h.getAdditional)
	g.PUT("/surveys/additional", h.putAdditional)
	g.GET("/surveys/burnout/questions", h.questions)
	g.GET("/surveys/burnout", h.getBurnout)
	g.PUT("/surveys/burnout", h.putBurnout)
}

func fail(c echo.Context, err error) error {
	var ve *survey.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, survey.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func (h *httpCtrl) getProfile(c echo.Context) error {
	p, err := h.s.Profile(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *httpCtrl) putProfile(c echo.Context) error {
	var in entities.UserProfile
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	p, err := h.s.SaveProfile(c.Request().Context(), middleware.UID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *httpCtrl) getAdditional(c echo.Context) error {
	a, err := h.s.Additional(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *httpCtrl) putAdditional(c echo.Context) error {
	var in entities.AdditionalSurvey
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	a, err := h.s.SaveAdditional(c.Request().Context(), middleware.UID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *httpCtrl) questions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.s.BurnoutQuestions())
}

func (h *httpCtrl) getBurnout(c echo.Context) error {
	b, err := h.s.Burnout(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// burnoutIn accepts either raw agreement answers or scores.
type burnoutIn struct {
	Agreements map[int]int `json:"agreements"`
	Answers    map[int]int `json:"answers"`
}

func (h *httpCtrl) putBurnout(c echo.Context) error {
	var in burnoutIn
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	answers := in.Answers
	if len(in.Agreements) > 0 {
		scored, err := burnout.ScoreAgreements(in.Agreements)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		answers = scored
	}
	b, err := h.s.SubmitBurnout(c.Request().Context(), middleware.UID(c), answers)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
