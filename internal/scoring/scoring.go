// Package scoring converts a task catalog and a day's ledger into points.
//
// Every function here is pure: results are recomputed on each read and never stored.
package scoring

import (
	"fmt"
	"math"

	"github.com/bryan-cox/pointledger/internal/model"
)

// floorEpsilon absorbs representation error in rates such as 1/6.
const floorEpsilon = 1e-9

// Counts holds the application counts for a single day.
type Counts struct {
	Applications int
	CoverLetters int
}

// CountApplications counts applications dated today, and those among them with a cover letter.
func CountApplications(apps []model.Application, today string) Counts {
	var c Counts
	for _, a := range apps {
		if a.Date != today {
			continue
		}
		c.Applications++
		if a.HasCoverLetter {
			c.CoverLetters++
		}
	}
	return c
}

// TaskScore is the earned contribution of a single task.
type TaskScore struct {
	Task model.Task
	// Earned points for today. Timed tasks are floored per task.
	Earned float64
	// Done is set for checkbox-like tasks in the completed set.
	Done bool
	// Count is the stacking multiplier for stackable tasks.
	Count int
	// Minutes logged today for timed tasks.
	Minutes int
	// Touched reports any activity at all: done, count > 0 or minutes > 0.
	Touched bool
}

// Breakdown is the full per-task view of one day.
type Breakdown struct {
	Tasks        []TaskScore
	Total        float64
	ProteinGrams int
	Counts       Counts
}

// ScoreTask computes one task's contribution.
func ScoreTask(task model.Task, ledger *model.Ledger, counts Counts) TaskScore {
	ts := TaskScore{Task: task}
	switch task.Kind {
	case model.KindCheckbox, model.KindNutrition, model.KindWorkout:
		if ledger.Completed.Has(task.ID) {
			ts.Done = true
			ts.Earned = task.Points
		}
		ts.Touched = ts.Done
	case model.KindTimed:
		ts.Minutes = ledger.TimedMinutes[task.ID]
		ts.Earned = math.Floor(float64(ts.Minutes)*task.MinuteRate + floorEpsilon)
		ts.Touched = ts.Minutes > 0
	case model.KindStackable:
		switch task.Counts {
		case model.StackCoverLetters:
			ts.Count = counts.CoverLetters
		default:
			ts.Count = counts.Applications
		}
		ts.Earned = float64(ts.Count) * task.Points
		ts.Touched = ts.Count > 0
	default:
		panic(fmt.Sprintf("scoring: unhandled task kind %q", task.Kind))
	}
	return ts
}

// Compute builds the breakdown for the given day label.
func Compute(tasks []model.Task, ledger *model.Ledger, today string) Breakdown {
	counts := CountApplications(ledger.Applications, today)
	b := Breakdown{
		Tasks:        make([]TaskScore, 0, len(tasks)),
		ProteinGrams: ledger.ProteinTotal(),
		Counts:       counts,
	}
	for _, task := range tasks {
		ts := ScoreTask(task, ledger, counts)
		b.Total += ts.Earned
		b.Tasks = append(b.Tasks, ts)
	}
	return b
}

// TodayPoints is the day's score. It is not clamped to the nominal 100 ceiling.
func TodayPoints(tasks []model.Task, ledger *model.Ledger, today string) float64 {
	return Compute(tasks, ledger, today).Total
}

// TotalAssignedPoints sums point values over the budgeted (non-timed) tasks.
func TotalAssignedPoints(tasks []model.Task) float64 {
	total := 0.0
	for _, t := range tasks {
		if t.CountsTowardBudget() {
			total += t.Points
		}
	}
	return total
}

// RemainingPoints is the unassigned part of the 100 point budget.
func RemainingPoints(tasks []model.Task) float64 {
	return model.PointBudget - TotalAssignedPoints(tasks)
}

// Progress clamps a score to [0, 1] of the nominal ceiling for progress bars.
func Progress(score float64) float64 {
	return math.Max(0, math.Min(score, model.PointBudget)) / model.PointBudget
}

// ProteinGoalMet reports whether the protein entries reach the daily goal.
func ProteinGoalMet(ledger *model.Ledger) bool {
	return ledger.ProteinTotal() >= model.ProteinGoalGrams
}
