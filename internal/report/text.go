package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/bryan-cox/pointledger/internal/history"
	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/scoring"
	"github.com/bryan-cox/pointledger/internal/tracker"
	"github.com/bryan-cox/pointledger/internal/ui"
)

// Section headers for text output.
const (
	TextHeaderToday    = "Today"
	TextHeaderTasks    = "Tasks"
	TextHeaderWeek     = "This week"
	TextHeaderCalendar = "Calendar"
	TextHeaderStats    = "Statistics"
	TextHeaderPipeline = "Applications"
)

const barWidth = 20

// PrintToday prints the score, budget and one row per task.
func PrintToday(out io.Writer, today tracker.Today) {
	fmt.Fprintln(out, ui.Heading(ui.IconCalendar, TextHeaderToday+" "+today.Date))
	fmt.Fprintf(out, "%s  %s\n",
		ui.LabelValue("Score", ui.Points(today.Score)+" / "+ui.Points(model.PointBudget)),
		ui.Bar(today.Progress, barWidth))
	fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s assigned, %s remaining",
		ui.Points(today.TotalAssigned), ui.Points(today.Remaining))))
	fmt.Fprintln(out)

	for _, ts := range today.Tasks {
		fmt.Fprintf(out, "  %s\n", taskRow(ts))
	}

	fmt.Fprintln(out)
	goal := fmt.Sprintf("%s %d / %d g", ui.IconProtein, today.ProteinGrams, today.ProteinGoal)
	if today.ProteinGoalMet {
		goal = ui.Good.Render(goal)
	}
	fmt.Fprintln(out, goal)
	for _, e := range today.Ledger.Workout {
		fmt.Fprintf(out, "%s %s %s\n", ui.IconWorkout, e.Exercise, formatSets(e.Sets))
	}
}

func taskRow(ts scoring.TaskScore) string {
	name := ts.Task.Name
	earned := ui.Points(ts.Earned)
	switch ts.Task.Kind {
	case model.KindTimed:
		return fmt.Sprintf("%s %s  %d min  %s", ui.IconTimer, name, ts.Minutes, earned)
	case model.KindStackable:
		line := fmt.Sprintf("%s %s  x%d  %s", ui.IconStack, name, ts.Count, earned)
		if ts.Touched {
			return ui.Good.Render(line)
		}
		return line
	default:
		if ts.Done {
			return fmt.Sprintf("%s %s  %s", ui.IconDone, ui.Good.Render(name), earned)
		}
		return fmt.Sprintf("%s %s  %s", ui.IconOpen, name, ui.Muted.Render(ui.Points(ts.Task.Points)))
	}
}

func formatSets(sets []model.Set) string {
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		parts = append(parts, fmt.Sprintf("%sx%d", ui.Points(s.Weight), s.Reps))
	}
	return strings.Join(parts, ", ")
}

// PrintTasks prints the catalog with ids, kinds and the point budget.
func PrintTasks(out io.Writer, tasks []model.Task) {
	fmt.Fprintln(out, ui.Heading("", TextHeaderTasks))
	for _, t := range tasks {
		points := ui.Points(t.Points)
		switch t.Kind {
		case model.KindTimed:
			points = fmt.Sprintf("%g/h", math.Round(t.MinuteRate*60*100)/100)
		case model.KindStackable:
			points += " each " + string(t.Counts)
		}
		fmt.Fprintf(out, "  %-14d %-10s %-28s %s\n", t.ID, t.Kind, t.Name, points)
	}
	fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s assigned, %s remaining",
		ui.Points(scoring.TotalAssignedPoints(tasks)), ui.Points(scoring.RemainingPoints(tasks)))))
}

// PrintWeek prints the most recent seven archived days.
func PrintWeek(out io.Writer, log []model.HistoryEntry) {
	fmt.Fprintln(out, ui.Heading(ui.IconChart, TextHeaderWeek))
	week := history.Week(log)
	if len(week) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("  no archived days yet"))
		return
	}
	for _, e := range week {
		fmt.Fprintf(out, "  %s  %6s  %s\n", e.Date, ui.Points(e.Points), ui.Bar(scoring.Progress(e.Points), barWidth))
	}
}

// PrintCalendar prints now's year as a Sunday-first heatmap, one row per week.
func PrintCalendar(out io.Writer, log []model.HistoryEntry, now time.Time) {
	fmt.Fprintln(out, ui.Heading(ui.IconCalendar, fmt.Sprintf("%s %d", TextHeaderCalendar, now.Year())))
	fmt.Fprintln(out, ui.Muted.Render("           S M T W T F S"))
	for _, week := range history.Weeks(history.Calendar(log, now), now.Location()) {
		label := ""
		cells := make([]string, 0, len(week))
		for _, day := range week {
			if day == nil {
				cells = append(cells, " ")
				continue
			}
			if label == "" {
				label = day.Date
			}
			cells = append(cells, ui.HeatCell(day.State == history.CellFuture, day.Intensity()))
		}
		fmt.Fprintf(out, "%-10s %s\n", label, strings.Join(cells, " "))
	}
}

// PrintStats prints aggregates, streaks and the week over week trend.
func PrintStats(out io.Writer, log []model.HistoryEntry, now time.Time) {
	fmt.Fprintln(out, ui.Heading(ui.IconTrophy, TextHeaderStats))
	s := history.Summarize(log)
	streaks := history.ComputeStreaks(log, now)
	fmt.Fprintln(out, "  "+ui.LabelValue("Days logged", s.Count))
	fmt.Fprintln(out, "  "+ui.LabelValue("Total points", ui.Points(s.Sum)))
	fmt.Fprintln(out, "  "+ui.LabelValue("Average", s.Average))
	fmt.Fprintln(out, "  "+ui.LabelValue("Best day", ui.Points(s.Max)))
	fmt.Fprintln(out, "  "+ui.LabelValue(ui.IconFire+" Current streak", streaks.Current))
	fmt.Fprintln(out, "  "+ui.LabelValue("Longest streak", streaks.Longest))
	if d, ok := history.Trend(log); ok {
		fmt.Fprintln(out, "  "+ui.LabelValue("Trend", ui.Delta(d)))
	}
}

// PrintApplications prints open applications by stage, then closed ones.
func PrintApplications(out io.Writer, apps []model.Application) {
	fmt.Fprintln(out, ui.Heading(ui.IconStack, TextHeaderPipeline))
	if len(apps) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("  none yet"))
		return
	}
	p := CategorizeApplications(apps)
	for _, group := range []map[model.Progress][]model.Application{p.Open, p.Closed} {
		for _, stage := range model.ProgressStages {
			list := group[stage]
			if len(list) == 0 {
				continue
			}
			fmt.Fprintf(out, "    • %s\n", ui.H2.Render(string(stage)))
			for _, a := range list {
				cover := ""
				if a.HasCoverLetter {
					cover = " +cover letter"
				}
				fmt.Fprintf(out, "        ◦ %s  %s, %s%s  %s\n", a.Date, a.Company, a.Role, cover, ui.Muted.Render(a.ID))
			}
		}
	}
}
