// Package model defines the core data structures for PointLedger.
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the layout of every date label stored by PointLedger.
const DateLayout = "2006-01-02"

// Budget and goal constants.
const (
	PointBudget       = 100.0
	MaxTaskPoints     = 20.0
	PointStep         = 0.5
	ProteinGoalGrams  = 150
	HistoryLimit      = 365
	DefaultMinuteRate = 1.0 / 6
	DefaultFoodLabel  = "Food"
)

// TierCaps is the maximum number of non-timed tasks allowed at each point tier.
var TierCaps = map[float64]int{
	20: 1,
	15: 2,
	10: 3,
}

// TaskKind selects how a task converts activity into points.
type TaskKind string

const (
	KindCheckbox  TaskKind = "checkbox"
	KindStackable TaskKind = "stackable"
	KindTimed     TaskKind = "timed"
	KindNutrition TaskKind = "nutrition"
	KindWorkout   TaskKind = "workout"
)

// TaskKinds lists every kind in display order.
var TaskKinds = []TaskKind{KindCheckbox, KindStackable, KindTimed, KindNutrition, KindWorkout}

func (k TaskKind) IsValid() bool {
	switch k {
	case KindCheckbox, KindStackable, KindTimed, KindNutrition, KindWorkout:
		return true
	default:
		return false
	}
}

// ParseTaskKind accepts a kind name case-insensitively.
func ParseTaskKind(input string) (TaskKind, error) {
	k := TaskKind(strings.ToLower(strings.TrimSpace(input)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid task kind: %q", input)
	}
	return k, nil
}

// StackBasis names the application count a stackable task multiplies.
type StackBasis string

const (
	StackApplications StackBasis = "applications"
	StackCoverLetters StackBasis = "cover_letters"
)

func (b StackBasis) IsValid() bool {
	return b == StackApplications || b == StackCoverLetters
}

// ParseStackBasis accepts "applications" or "cover_letters" (a dash also works).
func ParseStackBasis(input string) (StackBasis, error) {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(input)), "-", "_")
	b := StackBasis(s)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid stack basis: %q", input)
	}
	return b, nil
}

// Progress is the stage an application has reached.
type Progress string

const (
	ProgressSent      Progress = "Application sent"
	ProgressTests     Progress = "Tests"
	ProgressHirevue   Progress = "Hirevue"
	ProgressInterview Progress = "Interview"
	ProgressOffer     Progress = "Offer"
	ProgressRejected  Progress = "Rejected"
)

// ProgressStages lists every stage in pipeline order.
var ProgressStages = []Progress{ProgressSent, ProgressTests, ProgressHirevue, ProgressInterview, ProgressOffer, ProgressRejected}

func (p Progress) IsValid() bool {
	return slices.Contains(ProgressStages, p)
}

// ParseProgress matches a stage name case-insensitively.
func ParseProgress(input string) (Progress, error) {
	s := strings.TrimSpace(input)
	for _, p := range ProgressStages {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid progress stage: %q", input)
}

// Task is one catalog entry.
type Task struct {
	ID         int64      `yaml:"id" json:"id"`
	Name       string     `yaml:"name" json:"name"`
	Points     float64    `yaml:"points" json:"points"`
	Kind       TaskKind   `yaml:"kind" json:"kind"`
	MinuteRate float64    `yaml:"minute_rate,omitempty" json:"minuteRate,omitempty"`
	Stackable  bool       `yaml:"stackable,omitempty" json:"stackable,omitempty"`
	Counts     StackBasis `yaml:"counts,omitempty" json:"counts,omitempty"`
}

// CountsTowardBudget reports whether the task's points are part of the 100 point budget.
func (t Task) CountsTowardBudget() bool {
	return t.Kind != KindTimed
}

// IDSet is an insertion-ordered set of task identifiers.
type IDSet []int64

func (s IDSet) Has(id int64) bool {
	return slices.Contains(s, id)
}

// With returns the set with id added.
func (s IDSet) With(id int64) IDSet {
	if s.Has(id) {
		return s
	}
	return append(s, id)
}

// Without returns the set with id removed.
func (s IDSet) Without(id int64) IDSet {
	return slices.DeleteFunc(slices.Clone(s), func(v int64) bool { return v == id })
}

// ProteinEntry is one logged food item.
type ProteinEntry struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Grams int    `yaml:"grams" json:"grams"`
}

// Application is one submitted job application.
type Application struct {
	ID             string   `yaml:"id" json:"id"`
	Company        string   `yaml:"company" json:"company"`
	Role           string   `yaml:"role" json:"role"`
	Date           string   `yaml:"date" json:"date"`
	Progress       Progress `yaml:"progress" json:"progress"`
	HasCoverLetter bool     `yaml:"has_cover_letter" json:"hasCoverLetter"`
}

// Set is a single weight/reps set.
type Set struct {
	Weight float64 `yaml:"weight" json:"weight"`
	Reps   int     `yaml:"reps" json:"reps"`
}

// WorkoutEntry groups today's sets for one exercise.
type WorkoutEntry struct {
	Exercise string `yaml:"exercise" json:"exercise"`
	Sets     []Set  `yaml:"sets" json:"sets"`
}

// Ledger is today's mutable activity record.
type Ledger struct {
	Completed    IDSet          `yaml:"completed" json:"completed"`
	TimedMinutes map[int64]int  `yaml:"timed_minutes" json:"timedMinutes"`
	Protein      []ProteinEntry `yaml:"protein" json:"protein"`
	Applications []Application  `yaml:"applications" json:"applications"`
	Workout      []WorkoutEntry `yaml:"workout" json:"workout"`
}

// ProteinTotal sums the grams of every protein entry.
func (l *Ledger) ProteinTotal() int {
	total := 0
	for _, e := range l.Protein {
		total += e.Grams
	}
	return total
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() Ledger {
	return Ledger{
		Completed:    slices.Clone(l.Completed),
		TimedMinutes: cloneMinutes(l.TimedMinutes),
		Protein:      slices.Clone(l.Protein),
		Applications: slices.Clone(l.Applications),
		Workout:      CloneWorkout(l.Workout),
	}
}

// Reset clears today's activity. Applications are dated independently and survive.
func (l *Ledger) Reset() {
	l.Completed = IDSet{}
	l.TimedMinutes = map[int64]int{}
	l.Protein = []ProteinEntry{}
	l.Workout = []WorkoutEntry{}
}

// HistoryEntry is an immutable snapshot of one archived day.
type HistoryEntry struct {
	Date         string         `yaml:"date" json:"date"`
	Points       float64        `yaml:"points" json:"points"`
	Completed    []int64        `yaml:"completed" json:"completed"`
	TimedMinutes map[int64]int  `yaml:"timed_minutes" json:"timedMinutes"`
	Protein      int            `yaml:"protein" json:"protein"`
	Workout      []WorkoutEntry `yaml:"workout" json:"workout"`
}

// Clone returns a deep copy, so callers can never reach the archived value.
func (h HistoryEntry) Clone() HistoryEntry {
	out := h
	out.Completed = slices.Clone(h.Completed)
	if h.TimedMinutes != nil {
		out.TimedMinutes = cloneMinutes(h.TimedMinutes)
	}
	out.Workout = CloneWorkout(h.Workout)
	return out
}

// CloneHistory deep-copies every entry of a history log.
func CloneHistory(in []HistoryEntry) []HistoryEntry {
	if in == nil {
		return nil
	}
	out := make([]HistoryEntry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// Day parses the entry's date label in the given location.
func (h HistoryEntry) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, h.Date, loc)
}

// DateLabel formats t as a date label in t's location.
func DateLabel(t time.Time) string {
	return t.Format(DateLayout)
}

// CloneWorkout deep-copies a workout log, including set slices.
func CloneWorkout(in []WorkoutEntry) []WorkoutEntry {
	if in == nil {
		return nil
	}
	out := make([]WorkoutEntry, len(in))
	for i, e := range in {
		out[i] = WorkoutEntry{Exercise: e.Exercise, Sets: slices.Clone(e.Sets)}
	}
	return out
}

func cloneMinutes(in map[int64]int) map[int64]int {
	out := make(map[int64]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
