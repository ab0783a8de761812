// Package httpapi exposes the tracker's read accessors and mutations as JSON.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/history"
	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/tracker"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, tr *tracker.Tracker, log *zap.Logger) {
	e.JSONSerializer = Serializer{}
	e.Use(RequestLogger(log))

	e.GET("/healthz", healthz)
	e.GET("/api/today", getToday(tr))
	e.GET("/api/tasks", getTasks(tr))
	e.POST("/api/tasks", postTask(tr))
	e.PATCH("/api/tasks/:id", patchTask(tr))
	e.DELETE("/api/tasks/:id", deleteTask(tr))

	e.POST("/api/tasks/:id/toggle", postToggle(tr))
	e.POST("/api/tasks/:id/minutes", postMinutes(tr))
	e.POST("/api/protein", postProtein(tr))
	e.DELETE("/api/protein/:id", deleteProtein(tr))
	e.GET("/api/applications", getApplications(tr))
	e.POST("/api/applications", postApplication(tr))
	e.PATCH("/api/applications/:id", patchApplication(tr))
	e.DELETE("/api/applications/:id", deleteApplication(tr))
	e.GET("/api/exercises", getExercises(tr))
	e.POST("/api/exercises", postExercise(tr))
	e.POST("/api/workout", postWorkoutSet(tr))
	e.DELETE("/api/workout/:index", deleteWorkoutEntry(tr))

	e.POST("/api/day/complete", postCompleteDay(tr))
	e.GET("/api/history", getHistory(tr))
	e.GET("/api/history/week", getWeek(tr))
	e.GET("/api/history/calendar", getCalendar(tr))
	e.GET("/api/history/stats", getStats(tr))
}

type taskView struct {
	model.Task
	Earned  float64 `json:"earned"`
	Done    bool    `json:"done"`
	Count   int     `json:"count,omitempty"`
	Minutes int     `json:"minutes,omitempty"`
	Touched bool    `json:"touched"`
}

type todayResponse struct {
	Date           string       `json:"date"`
	Score          float64      `json:"score"`
	Progress       float64      `json:"progress"`
	Tasks          []taskView   `json:"tasks"`
	Applications   int          `json:"applicationsToday"`
	CoverLetters   int          `json:"coverLettersToday"`
	ProteinGrams   int          `json:"proteinGrams"`
	ProteinGoal    int          `json:"proteinGoal"`
	ProteinGoalMet bool         `json:"proteinGoalMet"`
	TotalAssigned  float64      `json:"totalAssigned"`
	Remaining      float64      `json:"remaining"`
	Ledger         model.Ledger `json:"ledger"`
}

type statsResponse struct {
	history.Stats
	Streaks  history.Streaks `json:"streaks"`
	Trend    float64         `json:"trend"`
	HasTrend bool            `json:"hasTrend"`
}

type toggleResponse struct {
	JustCompleted bool `json:"justCompleted"`
}

type rejection struct {
	Rejected bool `json:"rejected"`
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func rejected(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, rejection{Rejected: true})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

func getToday(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		today := tr.Today()
		resp := todayResponse{
			Date:           today.Date,
			Score:          today.Score,
			Progress:       today.Progress,
			Tasks:          make([]taskView, 0, len(today.Tasks)),
			Applications:   today.Counts.Applications,
			CoverLetters:   today.Counts.CoverLetters,
			ProteinGrams:   today.ProteinGrams,
			ProteinGoal:    today.ProteinGoal,
			ProteinGoalMet: today.ProteinGoalMet,
			TotalAssigned:  today.TotalAssigned,
			Remaining:      today.Remaining,
			Ledger:         today.Ledger,
		}
		for _, ts := range today.Tasks {
			resp.Tasks = append(resp.Tasks, taskView{
				Task:    ts.Task,
				Earned:  ts.Earned,
				Done:    ts.Done,
				Count:   ts.Count,
				Minutes: ts.Minutes,
				Touched: ts.Touched,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func getTasks(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, tr.Tasks())
	}
}

type taskRequest struct {
	Name   string         `json:"name"`
	Kind   model.TaskKind `json:"kind"`
	Points float64        `json:"points"`
}

func postTask(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req taskRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		task, ok := tr.AddTask(req.Name, req.Kind, req.Points)
		if !ok {
			return rejected(c)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

type taskPatch struct {
	Name   *string           `json:"name"`
	Kind   *model.TaskKind   `json:"kind"`
	Points *float64          `json:"points"`
	Counts *model.StackBasis `json:"counts"`
}

// patchTask applies name, kind, points and basis changes in that order and
// stops at the first rejection.
func patchTask(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var req taskPatch
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if req.Name != nil && !tr.EditTaskName(id, *req.Name) {
			return rejected(c)
		}
		if req.Kind != nil && !tr.EditTaskKind(id, *req.Kind) {
			return rejected(c)
		}
		if req.Points != nil && !tr.EditTaskPoints(id, *req.Points) {
			return rejected(c)
		}
		if req.Counts != nil && !tr.EditTaskStackBasis(id, *req.Counts) {
			return rejected(c)
		}
		task, ok := tr.Task(id)
		if !ok {
			return rejected(c)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if !tr.RemoveTask(id) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func postToggle(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		done, ok := tr.ToggleCheckbox(id)
		if !ok {
			return rejected(c)
		}
		return c.JSON(http.StatusOK, toggleResponse{JustCompleted: done})
	}
}

type minutesRequest struct {
	Minutes int `json:"minutes"`
}

func postMinutes(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var req minutesRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if !tr.LogMinutes(id, req.Minutes) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

type proteinRequest struct {
	Label string `json:"label"`
	Grams int    `json:"grams"`
}

func postProtein(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req proteinRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		entry, ok := tr.AddProteinEntry(req.Label, req.Grams)
		if !ok {
			return rejected(c)
		}
		return c.JSON(http.StatusCreated, entry)
	}
}

func deleteProtein(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !tr.RemoveProteinEntry(c.Param("id")) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getApplications(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, tr.Applications())
	}
}

type applicationRequest struct {
	Company        string         `json:"company"`
	Role           string         `json:"role"`
	Date           string         `json:"date"`
	Progress       model.Progress `json:"progress"`
	HasCoverLetter bool           `json:"hasCoverLetter"`
}

func postApplication(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req applicationRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		app, ok := tr.AddApplication(req.Company, req.Role, req.Date, req.Progress, req.HasCoverLetter)
		if !ok {
			return rejected(c)
		}
		return c.JSON(http.StatusCreated, app)
	}
}

type progressRequest struct {
	Progress model.Progress `json:"progress"`
}

func patchApplication(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req progressRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if !tr.UpdateApplicationProgress(c.Param("id"), req.Progress) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteApplication(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !tr.RemoveApplication(c.Param("id")) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

type exerciseResponse struct {
	Name       string  `json:"name"`
	LastWeight float64 `json:"lastWeight,omitempty"`
}

func getExercises(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		names := tr.Exercises()
		resp := make([]exerciseResponse, 0, len(names))
		for _, name := range names {
			w, _ := tr.LastWeight(name)
			resp = append(resp, exerciseResponse{Name: name, LastWeight: w})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

type exerciseRequest struct {
	Name string `json:"name"`
}

func postExercise(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req exerciseRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if !tr.AddExercise(req.Name) {
			return rejected(c)
		}
		return c.NoContent(http.StatusCreated)
	}
}

type setRequest struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

func postWorkoutSet(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req setRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		if !tr.LogWorkoutSet(req.Exercise, req.Weight, req.Reps) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteWorkoutEntry(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
		}
		if !tr.RemoveWorkoutEntry(index) {
			return rejected(c)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func postCompleteDay(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, tr.CompleteDay())
	}
}

func getHistory(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, tr.History())
	}
}

func getWeek(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, history.Week(tr.History()))
	}
}

func getCalendar(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, history.Calendar(tr.History(), tr.Now()))
	}
}

func getStats(tr *tracker.Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := tr.History()
		trend, ok := history.Trend(log)
		return c.JSON(http.StatusOK, statsResponse{
			Stats:    history.Summarize(log),
			Streaks:  history.ComputeStreaks(log, tr.Now()),
			Trend:    trend,
			HasTrend: ok,
		})
	}
}
