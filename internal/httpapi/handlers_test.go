package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bryan-cox/pointledger/internal/history"
	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/tracker"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

func newServer(t *testing.T) (*echo.Echo, *tracker.Tracker) {
	t.Helper()
	tr := tracker.New(tracker.DefaultState(now), tracker.WithClock(fixedClock(now)))
	e := echo.New()
	Register(e, tr, zaptest.NewLogger(t))
	return e, tr
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetToday(t *testing.T) {
	e, tr := newServer(t)
	tr.ToggleCheckbox(1)
	tr.AddProteinEntry("Steak", 150)

	rec := do(e, http.MethodGet, "/api/today", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp todayResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, 15.0, resp.Score)
	assert.InDelta(t, 0.15, resp.Progress, 1e-9)
	assert.True(t, resp.ProteinGoalMet)
	assert.Equal(t, 22.5, resp.Remaining)
	require.Len(t, resp.Tasks, 13)
	assert.True(t, resp.Tasks[0].Done)
	assert.Equal(t, "Out of bed @ alarm", resp.Tasks[0].Name)
}

func TestTaskLifecycle(t *testing.T) {
	e, tr := newServer(t)

	rec := do(e, http.MethodPost, "/api/tasks", `{"name":"Read","kind":"checkbox","points":20}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var task model.Task
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, 20.0, task.Points)

	rec = do(e, http.MethodPost, "/api/tasks", `{"name":"Write","kind":"checkbox","points":20}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"rejected":true}`, rec.Body.String())

	target := "/api/tasks/" + jsonID(task.ID)
	rec = do(e, http.MethodPatch, target, `{"name":"Read fiction","points":2.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got, _ := tr.Task(task.ID)
	assert.Equal(t, "Read fiction", got.Name)
	assert.Equal(t, 2.5, got.Points)

	rec = do(e, http.MethodPatch, "/api/tasks/1", `{"points":15.5}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(e, http.MethodPatch, "/api/tasks/7", `{"points":15}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "budget exceeded")

	rec = do(e, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodDelete, "/api/tasks/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLedgerEndpoints(t *testing.T) {
	e, tr := newServer(t)

	rec := do(e, http.MethodPost, "/api/tasks/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"justCompleted":true}`, rec.Body.String())
	rec = do(e, http.MethodPost, "/api/tasks/4/toggle", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPost, "/api/tasks/5/minutes", `{"minutes":30}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodPost, "/api/tasks/5/minutes", `{"minutes":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPost, "/api/protein", `{"grams":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var entry model.ProteinEntry
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, model.DefaultFoodLabel, entry.Label)
	rec = do(e, http.MethodDelete, "/api/protein/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodPost, "/api/applications", `{"company":"Acme","role":"Analyst","hasCoverLetter":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var app model.Application
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &app))
	rec = do(e, http.MethodPatch, "/api/applications/"+app.ID, `{"progress":"Interview"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, model.ProgressInterview, tr.Applications()[0].Progress)

	rec = do(e, http.MethodPost, "/api/workout", `{"exercise":"Squat","weight":80,"reps":5}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodGet, "/api/exercises", "")
	assert.Contains(t, rec.Body.String(), `{"name":"Squat","lastWeight":80}`)
	rec = do(e, http.MethodDelete, "/api/workout/0", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodDelete, "/api/workout/0", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// 5 + floor(30/6) + 2.5 + 10 + 15 for the latched workout task.
	assert.Equal(t, 37.5, tr.TodayPoints())
}

func TestCompleteDayAndHistory(t *testing.T) {
	e, tr := newServer(t)
	tr.ToggleCheckbox(9)

	rec := do(e, http.MethodPost, "/api/day/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entry model.HistoryEntry
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, 10.0, entry.Points)

	rec = do(e, http.MethodGet, "/api/history/week", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var week []model.HistoryEntry
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &week))
	assert.Len(t, week, 1)

	rec = do(e, http.MethodGet, "/api/history/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats statsResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 10, stats.Average)
	assert.Equal(t, 1, stats.Streaks.Current)
	assert.False(t, stats.HasTrend)

	rec = do(e, http.MethodGet, "/api/history/calendar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var days []history.CalendarDay
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &days))
	assert.Len(t, days, 365)
}

func TestHealthz(t *testing.T) {
	e, _ := newServer(t)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz", "").Code)
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}
