// Package tracker owns the task catalog, today's completion ledger, the
// day-rollover archiver and the history log for a single user session.
//
// All operations hold one lock for their full duration, so an archive and
// reset is never interleaved with another mutation. Validation failures are
// reported as boolean results rather than errors: a rejected call leaves the
// state untouched.
package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/scoring"
	"github.com/bryan-cox/pointledger/internal/store"
)

// Clock is the tracker's only source of wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host's local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Saver receives state after every change. Implementations must not retain v.
type Saver interface {
	Save(key string, v any)
}

type nopSaver struct{}

func (nopSaver) Save(string, any) {}

// Option configures a Tracker.
type Option func(*Tracker)

func WithClock(c Clock) Option { return func(t *Tracker) { t.clock = c } }

func WithLogger(l *zap.Logger) Option { return func(t *Tracker) { t.log = l } }

func WithSaver(s Saver) Option { return func(t *Tracker) { t.saver = s } }

// WithIDGenerator replaces the generator used for protein entry and application ids.
func WithIDGenerator(f func() string) Option { return func(t *Tracker) { t.newID = f } }

type Tracker struct {
	clock Clock
	log   *zap.Logger
	saver Saver
	newID func() string

	mu              sync.Mutex
	tasks           []model.Task
	ledger          model.Ledger
	exerciseHistory map[string][]model.Set
	exercises       []string
	history         []model.HistoryEntry
	lastSaved       string
}

// New builds a tracker over previously loaded state.
func New(state State, opts ...Option) *Tracker {
	state.normalize()
	t := &Tracker{
		clock:           SystemClock{},
		log:             zap.NewNop(),
		saver:           nopSaver{},
		newID:           uuid.NewString,
		tasks:           state.Tasks,
		ledger:          state.Ledger,
		exerciseHistory: state.ExerciseHistory,
		exercises:       state.Exercises,
		history:         state.History,
		lastSaved:       state.LastSaved,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.applyLatches()
	return t
}

// Today is the read model of the current day.
type Today struct {
	Date           string
	Score          float64
	Progress       float64
	Tasks          []scoring.TaskScore
	Counts         scoring.Counts
	ProteinGrams   int
	ProteinGoal    int
	ProteinGoalMet bool
	TotalAssigned  float64
	Remaining      float64
	Ledger         model.Ledger
}

// Today recomputes the score and per-task view from the current ledger.
func (t *Tracker) Today() Today {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := t.todayLabel()
	b := scoring.Compute(t.tasks, &t.ledger, date)
	total := scoring.TotalAssignedPoints(t.tasks)
	return Today{
		Date:           date,
		Score:          b.Total,
		Progress:       scoring.Progress(b.Total),
		Tasks:          b.Tasks,
		Counts:         b.Counts,
		ProteinGrams:   b.ProteinGrams,
		ProteinGoal:    model.ProteinGoalGrams,
		ProteinGoalMet: b.ProteinGrams >= model.ProteinGoalGrams,
		TotalAssigned:  total,
		Remaining:      model.PointBudget - total,
		Ledger:         t.ledger.Clone(),
	}
}

// TodayPoints is the current score.
func (t *Tracker) TodayPoints() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return scoring.TodayPoints(t.tasks, &t.ledger, t.todayLabel())
}

// History returns a deep copy of the archived log, most recent first.
func (t *Tracker) History() []model.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return model.CloneHistory(t.history)
}

// LastSavedDate is the date label the automatic rollover last observed.
func (t *Tracker) LastSavedDate() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSaved
}

// Now exposes the tracker's clock to read-side callers.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

func (t *Tracker) todayLabel() string {
	return model.DateLabel(t.clock.Now())
}

func (t *Tracker) saveLedger(keys ...string) {
	for _, key := range keys {
		switch key {
		case store.KeyCompleted:
			t.saver.Save(key, t.ledger.Completed)
		case store.KeyTimedMinutes:
			t.saver.Save(key, t.ledger.TimedMinutes)
		case store.KeyProtein:
			t.saver.Save(key, t.ledger.Protein)
		case store.KeyApplications:
			t.saver.Save(key, t.ledger.Applications)
		case store.KeyWorkout:
			t.saver.Save(key, t.ledger.Workout)
		}
	}
}
