// Package history provides read-side computations over the archived day log.
//
// The log is ordered most-recent-first, the way the archiver prepends entries.
package history

import (
	"math"
	"time"

	"github.com/bryan-cox/pointledger/internal/model"
)

// WeekLength is the number of entries in the weekly view.
const WeekLength = 7

// Week returns the most recent seven entries.
func Week(log []model.HistoryEntry) []model.HistoryEntry {
	if len(log) <= WeekLength {
		return log
	}
	return log[:WeekLength]
}

// Stats are aggregates over the full log.
type Stats struct {
	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Average int     `json:"average"`
	Max     float64 `json:"max"`
}

// Summarize computes count, sum, rounded mean and maximum. An empty log yields zeros.
func Summarize(log []model.HistoryEntry) Stats {
	if len(log) == 0 {
		return Stats{}
	}
	s := Stats{Count: len(log), Max: math.Inf(-1)}
	for _, e := range log {
		s.Sum += e.Points
		s.Max = math.Max(s.Max, e.Points)
	}
	s.Average = int(math.Round(s.Sum / float64(s.Count)))
	return s
}

// Streaks reports runs of consecutive calendar days scoring above zero.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreaks walks the log oldest to newest. The current streak counts only
// if its last day is today or yesterday relative to now.
func ComputeStreaks(log []model.HistoryEntry, now time.Time) Streaks {
	loc := now.Location()
	var (
		s       Streaks
		run     int
		prevDay time.Time
		lastDay time.Time
	)
	for i := len(log) - 1; i >= 0; i-- {
		e := log[i]
		day, err := e.Day(loc)
		if err != nil {
			continue
		}
		if e.Points <= 0 {
			run = 0
			prevDay = time.Time{}
			continue
		}
		switch {
		case run > 0 && day.Equal(prevDay):
			continue
		case run > 0 && day.Equal(prevDay.AddDate(0, 0, 1)):
			run++
		default:
			run = 1
		}
		prevDay = day
		lastDay = day
		if run > s.Longest {
			s.Longest = run
		}
	}
	if run > 0 {
		today := startOfDay(now)
		if lastDay.Equal(today) || lastDay.Equal(today.AddDate(0, 0, -1)) {
			s.Current = run
		}
	}
	return s
}

// Trend is the difference between the mean of the latest week of entries and the week before.
// It returns false when fewer than two full weeks are archived.
func Trend(log []model.HistoryEntry) (float64, bool) {
	if len(log) < 2*WeekLength {
		return 0, false
	}
	return mean(log[:WeekLength]) - mean(log[WeekLength:2*WeekLength]), true
}

func mean(entries []model.HistoryEntry) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.Points
	}
	return sum / float64(len(entries))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
