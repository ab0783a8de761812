package tracker

import (
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/scoring"
	"github.com/bryan-cox/pointledger/internal/store"
)

// Tasks returns a copy of the catalog.
func (t *Tracker) Tasks() []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.tasks)
}

// Task looks up one task by id.
func (t *Tracker) Task(id int64) (model.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.taskIndex(id)
	if i < 0 {
		return model.Task{}, false
	}
	return t.tasks[i], true
}

// TotalAssignedPoints sums point values over non-timed tasks.
func (t *Tracker) TotalAssignedPoints() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return scoring.TotalAssignedPoints(t.tasks)
}

// RemainingPoints is what is left of the 100 point budget.
func (t *Tracker) RemainingPoints() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return scoring.RemainingPoints(t.tasks)
}

// AddTask appends a new task. It is rejected when the name is blank, or for
// budgeted kinds when the points are out of range, the budget would exceed 100,
// or the point tier is full.
func (t *Tracker) AddTask(name string, kind model.TaskKind, points float64) (model.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || !kind.IsValid() {
		return model.Task{}, false
	}

	task := model.Task{ID: t.nextTaskID(), Name: name, Kind: kind}
	if kind == model.KindTimed {
		task.MinuteRate = model.DefaultMinuteRate
	} else {
		if !validPoints(points) {
			return model.Task{}, false
		}
		if scoring.TotalAssignedPoints(t.tasks)+points > model.PointBudget {
			return model.Task{}, false
		}
		if !t.tierAllows(points, 0) {
			return model.Task{}, false
		}
		task.Points = points
	}
	if kind == model.KindStackable {
		task.Stackable = true
		task.Counts = model.StackApplications
	}

	t.tasks = append(t.tasks, task)
	t.saver.Save(store.KeyTasks, t.tasks)
	t.log.Debug("task added", zap.Int64("id", task.ID), zap.String("kind", string(kind)), zap.Float64("points", task.Points))
	return task, true
}

// EditTaskName renames a task. Blank names are rejected.
func (t *Tracker) EditTaskName(id int64, name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	i := t.taskIndex(id)
	if i < 0 || name == "" {
		return false
	}
	t.tasks[i].Name = name
	t.saver.Save(store.KeyTasks, t.tasks)
	return true
}

// EditTaskPoints changes a budgeted task's point value. The tier cap is
// checked against every other non-timed task, and the budget against the
// catalog with this task's old value replaced.
func (t *Tracker) EditTaskPoints(id int64, points float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.taskIndex(id)
	if i < 0 || !t.tasks[i].CountsTowardBudget() || !validPoints(points) {
		return false
	}
	if !t.tierAllows(points, id) {
		return false
	}
	if scoring.TotalAssignedPoints(t.tasks)-t.tasks[i].Points+points > model.PointBudget {
		return false
	}
	t.tasks[i].Points = points
	t.saver.Save(store.KeyTasks, t.tasks)
	return true
}

// EditTaskKind switches a task's kind. Switching to timed zeroes the points
// and assigns the default minute rate; switching to stackable marks the task
// stackable; every other switch clears the stackable flag.
func (t *Tracker) EditTaskKind(id int64, kind model.TaskKind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.taskIndex(id)
	if i < 0 || !kind.IsValid() {
		return false
	}
	task := &t.tasks[i]
	task.Kind = kind
	switch kind {
	case model.KindTimed:
		task.Points = 0
		task.MinuteRate = model.DefaultMinuteRate
		task.Stackable = false
		task.Counts = ""
	case model.KindStackable:
		task.MinuteRate = 0
		task.Stackable = true
		if !task.Counts.IsValid() {
			task.Counts = model.StackApplications
		}
	default:
		task.MinuteRate = 0
		task.Stackable = false
		task.Counts = ""
	}
	t.saver.Save(store.KeyTasks, t.tasks)
	return true
}

// EditTaskStackBasis selects which application count a stackable task multiplies.
func (t *Tracker) EditTaskStackBasis(id int64, basis model.StackBasis) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.taskIndex(id)
	if i < 0 || t.tasks[i].Kind != model.KindStackable || !basis.IsValid() {
		return false
	}
	t.tasks[i].Counts = basis
	t.saver.Save(store.KeyTasks, t.tasks)
	return true
}

// RemoveTask deletes a task and purges it from today's completed set.
func (t *Tracker) RemoveTask(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.taskIndex(id)
	if i < 0 {
		return false
	}
	t.tasks = slices.Delete(t.tasks, i, i+1)
	t.ledger.Completed = t.ledger.Completed.Without(id)
	t.saver.Save(store.KeyTasks, t.tasks)
	t.saveLedger(store.KeyCompleted)
	return true
}

func (t *Tracker) taskIndex(id int64) int {
	return slices.IndexFunc(t.tasks, func(task model.Task) bool { return task.ID == id })
}

// tierAllows reports whether one more non-timed task may sit at points,
// ignoring the task with id excludeID.
func (t *Tracker) tierAllows(points float64, excludeID int64) bool {
	limit, ok := model.TierCaps[points]
	if !ok {
		return true
	}
	count := 0
	for _, task := range t.tasks {
		if task.ID != excludeID && task.CountsTowardBudget() && task.Points == points {
			count++
		}
	}
	return count < limit
}

// nextTaskID is the current Unix millisecond, bumped past any existing id.
func (t *Tracker) nextTaskID() int64 {
	id := t.clock.Now().UnixMilli()
	for _, task := range t.tasks {
		if task.ID >= id {
			id = task.ID + 1
		}
	}
	return id
}

func validPoints(p float64) bool {
	if p < model.PointStep || p > model.MaxTaskPoints {
		return false
	}
	return math.Mod(p, model.PointStep) == 0
}
