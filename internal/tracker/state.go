package tracker

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/store"
)

// State is everything the tracker persists.
type State struct {
	Tasks           []model.Task
	Ledger          model.Ledger
	ExerciseHistory map[string][]model.Set
	Exercises       []string
	History         []model.HistoryEntry
	LastSaved       string
}

// DefaultState is the state of a first run on the given day.
func DefaultState(now time.Time) State {
	return State{
		Tasks:           model.DefaultTasks(),
		Ledger:          model.EmptyLedger(),
		ExerciseHistory: map[string][]model.Set{},
		Exercises:       model.DefaultExercises(),
		History:         []model.HistoryEntry{},
		LastSaved:       model.DateLabel(now),
	}
}

// LoadState reads every key from s. Missing or malformed keys take their
// default, and so does a catalog holding a task of unknown kind.
func LoadState(ctx context.Context, s store.Store, log *zap.Logger, now time.Time) State {
	def := DefaultState(now)
	tasks := store.Load(ctx, s, log, store.KeyTasks, def.Tasks)
	if i := slices.IndexFunc(tasks, func(t model.Task) bool { return !t.Kind.IsValid() }); i >= 0 {
		log.Warn("stored catalog has an unknown task kind, using default",
			zap.Int64("id", tasks[i].ID), zap.String("kind", string(tasks[i].Kind)))
		tasks = def.Tasks
	}
	return State{
		Tasks: tasks,
		Ledger: model.Ledger{
			Completed:    store.Load(ctx, s, log, store.KeyCompleted, def.Ledger.Completed),
			TimedMinutes: store.Load(ctx, s, log, store.KeyTimedMinutes, def.Ledger.TimedMinutes),
			Protein:      store.Load(ctx, s, log, store.KeyProtein, def.Ledger.Protein),
			Applications: store.Load(ctx, s, log, store.KeyApplications, def.Ledger.Applications),
			Workout:      store.Load(ctx, s, log, store.KeyWorkout, def.Ledger.Workout),
		},
		ExerciseHistory: store.Load(ctx, s, log, store.KeyExerciseHistory, def.ExerciseHistory),
		Exercises:       store.Load(ctx, s, log, store.KeyExercises, def.Exercises),
		History:         store.Load(ctx, s, log, store.KeyHistory, def.History),
		LastSaved:       store.Load(ctx, s, log, store.KeyLastSaved, def.LastSaved),
	}
}

func (s *State) normalize() {
	if s.Tasks == nil {
		s.Tasks = []model.Task{}
	}
	if slices.ContainsFunc(s.Tasks, func(t model.Task) bool { return !t.Kind.IsValid() }) {
		s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t model.Task) bool { return !t.Kind.IsValid() })
	}
	if s.Ledger.Completed == nil {
		s.Ledger.Completed = model.IDSet{}
	}
	if s.Ledger.TimedMinutes == nil {
		s.Ledger.TimedMinutes = map[int64]int{}
	}
	if s.Ledger.Protein == nil {
		s.Ledger.Protein = []model.ProteinEntry{}
	}
	if s.Ledger.Applications == nil {
		s.Ledger.Applications = []model.Application{}
	}
	if s.Ledger.Workout == nil {
		s.Ledger.Workout = []model.WorkoutEntry{}
	}
	if s.ExerciseHistory == nil {
		s.ExerciseHistory = map[string][]model.Set{}
	}
	if s.Exercises == nil {
		s.Exercises = []string{}
	}
	if s.History == nil {
		s.History = []model.HistoryEntry{}
	}
}
