package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparc/database"
	"sparc/entities"
	"sparc/pkg/export"
	"sparc/pkg/middleware"
	"sparc/pkg/task"
)

var fixedNow = time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)

func newApp(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	return Build(db, Options{
		Location: time.UTC,
		Clock:    func() time.Time { return fixedNow },
		Identity: middleware.IdentityConfig{AdminUIDs: []string{"boss"}},
	})
}

func call(t *testing.T, e *echo.Echo, method, path, uid string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if uid != "" {
		req.Header.Set(middleware.HeaderUID, uid)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	e := newApp(t)
	rec := call(t, e, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":{"ok":true}`)
}

func TestAPIRequiresIdentity(t *testing.T) {
	e := newApp(t)
	assert.Equal(t, http.StatusUnauthorized, call(t, e, http.MethodGet, "/api/v1/entries", "", nil).Code)

	rec := call(t, e, http.MethodGet, "/api/v1/whoami", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"uid":"u1","role":"user"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, call(t, e, http.MethodGet, "/devlogin?uid=x", "", nil).Code)
}

func TestEntryLifecycle(t *testing.T) {
	e := newApp(t)

	rec := call(t, e, http.MethodPost, "/api/v1/entries", "u1", map[string]any{
		"task": "Other - specify in comments", "minutes": 30,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"other_task"`)

	rec = call(t, e, http.MethodPost, "/api/v1/entries", "u1", map[string]any{
		"task": "paf", "minutes": 45, "patient_count": 3, "comment": "PAF rounds", "occurred_on": "2026-10-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[entities.TimeEntry](t, rec)
	assert.Equal(t, task.ProspectiveAudit, first.Task)
	assert.Equal(t, "2026-10-20", first.OccurredOn.String())

	rec = call(t, e, http.MethodPost, "/api/v1/entries", "u1", map[string]any{
		"task": task.Emails, "minutes": 15, "comment": "inbox",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[entities.TimeEntry](t, rec)

	// another user's entry is invisible and immutable
	rec = call(t, e, http.MethodPatch, "/api/v1/entries/"+first.ID, "u2", map[string]any{"minutes": 10})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, e, http.MethodPatch, "/api/v1/entries/"+first.ID, "u1", map[string]any{"minutes": 50})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, decode[entities.TimeEntry](t, rec).Minutes)

	rec = call(t, e, http.MethodGet, "/api/v1/entries?sort=minutes&dir=asc", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]entities.TimeEntry](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, []int{15, 50}, []int{list[0].Minutes, list[1].Minutes})

	rec = call(t, e, http.MethodGet, "/api/v1/entries?q=ROUNDS", "u1", nil)
	assert.Len(t, decode[[]entities.TimeEntry](t, rec), 1)

	rec = call(t, e, http.MethodGet, "/api/v1/entries?range=today", "u1", nil)
	assert.Len(t, decode[[]entities.TimeEntry](t, rec), 1)

	rec = call(t, e, http.MethodPost, "/api/v1/entries/duplicate", "u1", map[string]any{"ids": []string{second.ID}})
	require.Equal(t, http.StatusCreated, rec.Code)
	clones := decode[[]entities.TimeEntry](t, rec)
	require.Len(t, clones, 1)
	assert.NotEqual(t, second.ID, clones[0].ID)

	rec = call(t, e, http.MethodPost, "/api/v1/entries/delete", "u1", map[string]any{"ids": []string{first.ID, "missing"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = call(t, e, http.MethodPost, "/api/v1/entries/delete", "u1", map[string]any{"ids": []string{first.ID}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, e, http.MethodGet, "/api/v1/entries", "u1", nil)
	assert.Len(t, decode[[]entities.TimeEntry](t, rec), 2)
	rec = call(t, e, http.MethodGet, "/api/v1/entries?include_deleted=true", "u1", nil)
	assert.Len(t, decode[[]entities.TimeEntry](t, rec), 3)

	rec = call(t, e, http.MethodPatch, "/api/v1/entries/"+first.ID, "u1", map[string]any{"minutes": 20})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	e := newApp(t)
	for _, c := range []string{`Entry with "quotes" and, commas`, "plain"} {
		rec := call(t, e, http.MethodPost, "/api/v1/entries", "u1", map[string]any{
			"task": task.Meetings, "minutes": 20, "comment": c,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := call(t, e, http.MethodGet, "/api/v1/entries/export?format=csv&q=quotes", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "sparc-entries-2026-10-21.csv")
	assert.Contains(t, rec.Body.String(), `"Entry with ""quotes"" and, commas"`)
	rows, err := export.ReadCSV(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rec = call(t, e, http.MethodGet, "/api/v1/entries/export?format=xlsx", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows, err = export.ReadXLSX(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	assert.Equal(t, http.StatusBadRequest, call(t, e, http.MethodGet, "/api/v1/entries/export?format=pdf", "u1", nil).Code)
}

func TestTasks(t *testing.T) {
	e := newApp(t)
	rec := call(t, e, http.MethodGet, "/api/v1/tasks", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[[]struct {
		Value       string `json:"value"`
		PatientCare bool   `json:"patient_care"`
		Other       bool   `json:"other"`
	}](t, rec)
	require.Len(t, out, len(task.All()))
	assert.True(t, out[0].PatientCare)
	assert.True(t, out[len(out)-1].Other)
}

func TestSurveys(t *testing.T) {
	e := newApp(t)

	rec := call(t, e, http.MethodPut, "/api/v1/profile", "u1", map[string]any{"profession": "pharmacist", "years_in_asp": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = call(t, e, http.MethodGet, "/api/v1/profile", "u1", nil)
	assert.Equal(t, "pharmacist", decode[entities.UserProfile](t, rec).Profession)

	rec = call(t, e, http.MethodPut, "/api/v1/surveys/additional", "u1", map[string]any{
		"beds_covered": map[string]any{"mode": "percent", "value": 150},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, e, http.MethodGet, "/api/v1/surveys/burnout", "u1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	agreements := map[string]int{}
	for q := 1; q <= 12; q++ {
		agreements[strconv.Itoa(q)] = 1
	}
	rec = call(t, e, http.MethodPut, "/api/v1/surveys/burnout", "u1", map[string]any{"agreements": agreements})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[entities.BurnoutResponse](t, rec)
	assert.Equal(t, 2.5, res.Overall)

	rec = call(t, e, http.MethodGet, "/api/v1/surveys/burnout/questions", "u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emotionally drained")
}

func TestAdminRoutes(t *testing.T) {
	e := newApp(t)
	assert.Equal(t, http.StatusForbidden, call(t, e, http.MethodGet, "/api/v1/admin/stats", "u1", nil).Code)

	rec := call(t, e, http.MethodGet, "/api/v1/admin/stats", "boss", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"minutes_by_week"`)

	rec = call(t, e, http.MethodPut, "/api/v1/admin/users/u1/role", "boss", map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, call(t, e, http.MethodGet, "/api/v1/admin/users", "u1", nil).Code)

	rec = call(t, e, http.MethodPut, "/api/v1/admin/users/boss/role", "boss", map[string]string{"role": "user"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = call(t, e, http.MethodPut, "/api/v1/admin/users/u1/role", "boss", map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
