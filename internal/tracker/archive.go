package tracker

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/scoring"
	"github.com/bryan-cox/pointledger/internal/store"
)

// CheckRollover archives the ledger when the calendar date differs from the
// last saved date. However many days have passed, a single entry labelled
// yesterday is written.
//
// Applications are counted against the last saved date rather than the new
// day, so the archived score includes the applications of the day being
// closed and none dated after midnight.
func (t *Tracker) CheckRollover() (model.HistoryEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	today := model.DateLabel(now)
	if today == t.lastSaved {
		return model.HistoryEntry{}, false
	}

	scoreDay := t.lastSaved
	if scoreDay == "" {
		scoreDay = today
	}
	entry := t.archiveLocked(model.DateLabel(now.AddDate(0, 0, -1)), scoreDay)
	t.lastSaved = today
	t.saver.Save(store.KeyLastSaved, t.lastSaved)
	t.log.Info("day rolled over", zap.String("archived", entry.Date), zap.String("today", today), zap.Float64("points", entry.Points))
	return entry, true
}

// CompleteDay archives the ledger under today's date. The last saved date is
// left alone, so the next automatic rollover archives again.
func (t *Tracker) CompleteDay() model.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.todayLabel()
	entry := t.archiveLocked(today, today)
	t.log.Info("day completed", zap.String("date", entry.Date), zap.Float64("points", entry.Points))
	return entry
}

// archiveLocked snapshots the ledger into the history log and resets it.
// The caller must hold t.mu.
func (t *Tracker) archiveLocked(label, scoreDay string) model.HistoryEntry {
	for _, e := range t.ledger.Workout {
		t.exerciseHistory[e.Exercise] = slices.Clone(e.Sets)
	}

	entry := model.HistoryEntry{
		Date:         label,
		Points:       scoring.TodayPoints(t.tasks, &t.ledger, scoreDay),
		Completed:    slices.Clone([]int64(t.ledger.Completed)),
		TimedMinutes: t.ledger.Clone().TimedMinutes,
		Protein:      t.ledger.ProteinTotal(),
		Workout:      model.CloneWorkout(t.ledger.Workout),
	}

	t.history = slices.Insert(t.history, 0, entry)
	if len(t.history) > model.HistoryLimit {
		t.history = t.history[:model.HistoryLimit]
	}
	t.ledger.Reset()

	t.saver.Save(store.KeyExerciseHistory, t.exerciseHistory)
	t.saver.Save(store.KeyHistory, t.history)
	t.saveLedger(store.KeyCompleted, store.KeyTimedMinutes, store.KeyProtein, store.KeyWorkout)
	return entry.Clone()
}

// Watch checks for a rollover immediately and then on every tick of interval
// until ctx is done. onArchive, when set, receives each archived entry.
func (t *Tracker) Watch(ctx context.Context, interval time.Duration, onArchive func(model.HistoryEntry)) error {
	if interval <= 0 {
		interval = time.Minute
	}
	check := func() {
		if entry, ok := t.CheckRollover(); ok && onArchive != nil {
			onArchive(entry)
		}
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			check()
		}
	}
}
