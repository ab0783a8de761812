package tracker

import (
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/store"
)

// ToggleCheckbox flips a checkbox task's membership in the completed set.
// justCompleted reports the false to true transition; ok is false when id is
// not a checkbox task.
func (t *Tracker) ToggleCheckbox(id int64) (justCompleted, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.taskIndex(id)
	if i < 0 || t.tasks[i].Kind != model.KindCheckbox {
		return false, false
	}
	if t.ledger.Completed.Has(id) {
		t.ledger.Completed = t.ledger.Completed.Without(id)
	} else {
		t.ledger.Completed = t.ledger.Completed.With(id)
		justCompleted = true
	}
	t.applyLatches()
	t.saveLedger(store.KeyCompleted)
	return justCompleted, true
}

// LogMinutes adds minutes to a timed task's accumulated total.
func (t *Tracker) LogMinutes(id int64, minutes int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.taskIndex(id)
	if i < 0 || t.tasks[i].Kind != model.KindTimed || minutes <= 0 {
		return false
	}
	t.ledger.TimedMinutes[id] += minutes
	t.saveLedger(store.KeyTimedMinutes)
	return true
}

// AddProteinEntry logs a food item. An empty label becomes "Food".
func (t *Tracker) AddProteinEntry(label string, grams int) (model.ProteinEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if grams <= 0 {
		return model.ProteinEntry{}, false
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = model.DefaultFoodLabel
	}
	entry := model.ProteinEntry{ID: t.newID(), Label: label, Grams: grams}
	t.ledger.Protein = append(t.ledger.Protein, entry)
	latched := t.applyLatches()
	t.saveLedger(store.KeyProtein)
	if latched {
		t.saveLedger(store.KeyCompleted)
	}
	return entry, true
}

// RemoveProteinEntry drops an entry. A latched nutrition task stays completed.
func (t *Tracker) RemoveProteinEntry(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := slices.IndexFunc(t.ledger.Protein, func(e model.ProteinEntry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	t.ledger.Protein = slices.Delete(t.ledger.Protein, i, i+1)
	t.saveLedger(store.KeyProtein)
	return true
}

// AddApplication records a job application. An empty date means today and an
// empty progress means "Application sent".
func (t *Tracker) AddApplication(company, role, date string, progress model.Progress, hasCoverLetter bool) (model.Application, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	company = strings.TrimSpace(company)
	role = strings.TrimSpace(role)
	if company == "" || role == "" {
		return model.Application{}, false
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = t.todayLabel()
	} else if _, err := time.ParseInLocation(model.DateLayout, date, time.Local); err != nil {
		return model.Application{}, false
	}
	if progress == "" {
		progress = model.ProgressSent
	}
	if !progress.IsValid() {
		return model.Application{}, false
	}

	app := model.Application{
		ID:             t.newID(),
		Company:        company,
		Role:           role,
		Date:           date,
		Progress:       progress,
		HasCoverLetter: hasCoverLetter,
	}
	t.ledger.Applications = append(t.ledger.Applications, app)
	t.saveLedger(store.KeyApplications)
	return app, true
}

// UpdateApplicationProgress moves an application to another stage.
func (t *Tracker) UpdateApplicationProgress(id string, progress model.Progress) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.applicationIndex(id)
	if i < 0 || !progress.IsValid() {
		return false
	}
	t.ledger.Applications[i].Progress = progress
	t.saveLedger(store.KeyApplications)
	return true
}

func (t *Tracker) RemoveApplication(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.applicationIndex(id)
	if i < 0 {
		return false
	}
	t.ledger.Applications = slices.Delete(t.ledger.Applications, i, i+1)
	t.saveLedger(store.KeyApplications)
	return true
}

// Applications returns every application on record, oldest first.
func (t *Tracker) Applications() []model.Application {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.ledger.Applications)
}

func (t *Tracker) applicationIndex(id string) int {
	return slices.IndexFunc(t.ledger.Applications, func(a model.Application) bool { return a.ID == id })
}

// Exercises returns the selectable exercise names.
func (t *Tracker) Exercises() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.exercises)
}

// AddExercise extends the exercise catalog. Blank and duplicate names are rejected.
func (t *Tracker) AddExercise(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(t.exercises, name) {
		return false
	}
	t.exercises = append(t.exercises, name)
	t.saver.Save(store.KeyExercises, t.exercises)
	return true
}

// LogWorkoutSet appends a set to today's entry for exercise, creating the
// entry on first use, and remembers the exercise's sets for later days.
func (t *Tracker) LogWorkoutSet(exercise string, weight float64, reps int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	exercise = strings.TrimSpace(exercise)
	if !slices.Contains(t.exercises, exercise) || weight <= 0 || reps <= 0 {
		return false
	}
	set := model.Set{Weight: weight, Reps: reps}
	i := slices.IndexFunc(t.ledger.Workout, func(e model.WorkoutEntry) bool { return e.Exercise == exercise })
	if i < 0 {
		t.ledger.Workout = append(t.ledger.Workout, model.WorkoutEntry{Exercise: exercise, Sets: []model.Set{set}})
		i = len(t.ledger.Workout) - 1
	} else {
		t.ledger.Workout[i].Sets = append(t.ledger.Workout[i].Sets, set)
	}
	t.exerciseHistory[exercise] = slices.Clone(t.ledger.Workout[i].Sets)

	latched := t.applyLatches()
	t.saveLedger(store.KeyWorkout)
	t.saver.Save(store.KeyExerciseHistory, t.exerciseHistory)
	if latched {
		t.saveLedger(store.KeyCompleted)
	}
	t.log.Debug("workout set logged", zap.String("exercise", exercise), zap.Float64("weight", weight), zap.Int("reps", reps))
	return true
}

// RemoveWorkoutEntry drops today's entry at index. A latched workout task stays completed.
func (t *Tracker) RemoveWorkoutEntry(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.ledger.Workout) {
		return false
	}
	t.ledger.Workout = slices.Delete(t.ledger.Workout, index, index+1)
	t.saveLedger(store.KeyWorkout)
	return true
}

// LastWeight is the weight of the most recent remembered set for exercise.
func (t *Tracker) LastWeight(exercise string) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sets := t.exerciseHistory[exercise]
	if len(sets) == 0 {
		return 0, false
	}
	return sets[len(sets)-1].Weight, true
}

// applyLatches adds nutrition tasks once protein reaches the goal and workout
// tasks once any set is logged. Latched ids are only cleared by the archive
// reset or RemoveTask. It reports whether the completed set grew.
func (t *Tracker) applyLatches() bool {
	proteinMet := t.ledger.ProteinTotal() >= model.ProteinGoalGrams
	worked := len(t.ledger.Workout) > 0
	grew := false
	for _, task := range t.tasks {
		if t.ledger.Completed.Has(task.ID) {
			continue
		}
		if (task.Kind == model.KindNutrition && proteinMet) || (task.Kind == model.KindWorkout && worked) {
			t.ledger.Completed = t.ledger.Completed.With(task.ID)
			grew = true
		}
	}
	return grew
}
