package history

import (
	"math"
	"time"

	"github.com/bryan-cox/pointledger/internal/model"
)

// CellState classifies one calendar day.
type CellState int

const (
	// CellFuture is a day after now: unlit.
	CellFuture CellState = iota
	// CellEmpty is a past day with no archived points: zero, logged.
	CellEmpty
	// CellScored is a past day with points above zero.
	CellScored
)

func (s CellState) String() string {
	switch s {
	case CellFuture:
		return "future"
	case CellEmpty:
		return "empty"
	case CellScored:
		return "scored"
	default:
		return "unknown"
	}
}

// CalendarDay is one cell of the yearly heatmap.
type CalendarDay struct {
	Date   string    `json:"date"`
	Points float64   `json:"points"`
	State  CellState `json:"state"`
}

// Intensity is the heat shade for the cell in [0.2, 1]; zero for unscored cells.
func (d CalendarDay) Intensity() float64 {
	if d.State != CellScored {
		return 0
	}
	return math.Max(0.2, math.Min(d.Points/model.PointBudget, 1))
}

// Calendar buckets the log by date label for every day of now's year.
// When several entries share a date, the oldest one wins.
func Calendar(log []model.HistoryEntry, now time.Time) []CalendarDay {
	points := make(map[string]float64, len(log))
	for _, e := range log {
		points[e.Date] = e.Points
	}

	year := now.Year()
	loc := now.Location()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)

	var days []CalendarDay
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		label := model.DateLabel(d)
		cell := CalendarDay{Date: label, Points: points[label]}
		switch {
		case d.After(now):
			cell.State = CellFuture
		case cell.Points > 0:
			cell.State = CellScored
		default:
			cell.State = CellEmpty
		}
		days = append(days, cell)
	}
	return days
}

// Weeks lays calendar days out in Sunday-first columns of seven.
// Cells before January 1st and after December 31st are nil.
func Weeks(days []CalendarDay, loc *time.Location) [][]*CalendarDay {
	if len(days) == 0 {
		return nil
	}
	first, err := time.ParseInLocation(model.DateLayout, days[0].Date, loc)
	if err != nil {
		return nil
	}

	var (
		weeks [][]*CalendarDay
		week  []*CalendarDay
	)
	for i := 0; i < int(first.Weekday()); i++ {
		week = append(week, nil)
	}
	for i := range days {
		week = append(week, &days[i])
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
