package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PointLedger theme for the CLI reports.

const (
	IconDone     = "✅"
	IconOpen     = "⬜"
	IconTimer    = "⏱️"
	IconStack    = "📨"
	IconProtein  = "🍗"
	IconWorkout  = "🏋️"
	IconCalendar = "📅"
	IconChart    = "📈"
	IconFire     = "🔥"
	IconTrophy   = "🏆"
	IconWarn     = "⚠️"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

// Heat cells from unlit to brightest.
var heat = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Points formats a score without a trailing ".0" for whole numbers.
func Points(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f", p)
	}
	return fmt.Sprintf("%.1f", p)
}

// Bar draws a fixed-width progress bar for a fraction in [0, 1].
func Bar(fraction float64, width int) string {
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(fraction * float64(width)))
	style := Warn
	switch {
	case fraction >= 1:
		style = Gold
	case fraction >= 0.5:
		style = Good
	}
	return style.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// HeatCell renders one calendar cell. Future days are blank, intensity 0 is a
// logged day with no points.
func HeatCell(future bool, intensity float64) string {
	if future {
		return Muted.Render("·")
	}
	level := 0
	if intensity > 0 {
		level = 1 + int(math.Min(3, math.Floor(intensity*4)))
	}
	return heat[level].Render("■")
}

func Delta(d float64) string {
	switch {
	case d > 0:
		return Good.Render("+" + Points(d))
	case d < 0:
		return Bad.Render(Points(d))
	default:
		return Muted.Render("0")
	}
}
