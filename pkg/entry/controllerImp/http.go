package controllerImp

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sparc/entities"
	"sparc/pkg/calendar"
	"sparc/pkg/entry"
	esvc "sparc/pkg/entry/service"
	"sparc/pkg/export"
	"sparc/pkg/listview"
	"sparc/pkg/middleware"
	"sparc/pkg/task"
)

type httpCtrl struct {
	s      esvc.Service
	now    calendar.Clock
	loc    *time.Location
	log    *zap.Logger
	render func(io.Writer, export.Format, []entities.TimeEntry, *time.Location) error
}

func New(s esvc.Service, now calendar.Clock, loc *time.Location, log *zap.Logger) *httpCtrl {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &httpCtrl{s: s, now: now, loc: loc, log: log, render: export.Write}
}

func (h *httpCtrl) Register(g *echo.Group) {
	g.GET("/tasks", h.tasks)
	g.POST("/entries", h.create)
	g.GET("/entries", h.list)
	g.GET("/entries/export", h.export)
	g.PATCH("/entries/:id", h.patch)
	g.POST("/entries/delete", h.softDelete)
	g.POST("/entries/duplicate", h.duplicate)
}

func (h *httpCtrl) fail(c echo.Context, err error) error {
	var ve *entry.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, entry.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, entry.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	}
	h.log.Error("entry request", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

type taskOut struct {
	Value       string `json:"value"`
	PatientCare bool   `json:"patient_care"`
	Other       bool   `json:"other"`
}

func (h *httpCtrl) tasks(c echo.Context) error {
	all := task.All()
	out := make([]taskOut, 0, len(all))
	for _, t := range all {
		out = append(out, taskOut{Value: t, PatientCare: task.IsPatientCare(t), Other: task.IsOther(t)})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) create(c echo.Context) error {
	var in entry.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	e, err := h.s.Create(c.Request().Context(), middleware.UID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// list returns the caller's entries. range/task/include_deleted narrow the
// query; q, sort, dir or several task values run the list derivation too.
func (h *httpCtrl) list(c echo.Context) error {
	q := c.QueryParams()
	opts := entry.ListOptions{
		Range:          calendar.ParseRange(q.Get("range"), calendar.RangeAll),
		IncludeDeleted: q.Get("include_deleted") == "true",
	}
	if len(q["task"]) == 1 {
		opts.Task = q.Get("task")
	}
	list, err := h.s.List(c.Request().Context(), middleware.UID(c), opts)
	if err != nil {
		return h.fail(c, err)
	}
	if !opts.IncludeDeleted && (q.Has("q") || q.Has("sort") || q.Has("dir") || len(q["task"]) > 1) {
		p := listview.ParseParams(q)
		p.DateRange = calendar.RangeAll
		list = listview.Derive(list, p, h.now(), h.loc)
	}
	if list == nil {
		list = []entities.TimeEntry{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) export(c echo.Context) error {
	f, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	list, err := h.s.List(c.Request().Context(), middleware.UID(c), entry.ListOptions{Range: calendar.RangeAll})
	if err != nil {
		return h.fail(c, err)
	}
	now := h.now()
	rows := listview.Derive(list, listview.ParseParams(c.QueryParams()), now, h.loc)

	// nothing is sent until the whole file has rendered
	var buf bytes.Buffer
	if err := h.render(&buf, f, rows, h.loc); err != nil {
		h.log.Error("export entries", zap.String("format", string(f)), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename(f, now.In(h.loc))+`"`)
	return c.Blob(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (h *httpCtrl) patch(c echo.Context) error {
	var in entry.Patch
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	e, err := h.s.Update(c.Request().Context(), middleware.UID(c), c.Param("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

type idsIn struct {
	IDs []string `json:"ids"`
}

func (h *httpCtrl) softDelete(c echo.Context) error {
	var in idsIn
	if err := c.Bind(&in); err != nil || len(in.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}
	if err := h.s.SoftDelete(c.Request().Context(), middleware.UID(c), in.IDs); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": len(in.IDs)})
}

func (h *httpCtrl) duplicate(c echo.Context) error {
	var in idsIn
	if err := c.Bind(&in); err != nil || len(in.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}
	out, err := h.s.Duplicate(c.Request().Context(), middleware.UID(c), in.IDs)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
