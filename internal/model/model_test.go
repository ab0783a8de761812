package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogFitsBudget(t *testing.T) {
	total := 0.0
	tiers := map[float64]int{}
	for _, task := range DefaultTasks() {
		if !task.CountsTowardBudget() {
			continue
		}
		total += task.Points
		tiers[task.Points]++
	}
	assert.LessOrEqual(t, total, PointBudget)
	for tier, limit := range TierCaps {
		assert.LessOrEqual(t, tiers[tier], limit, "tier %v", tier)
	}
}

func TestIDSet(t *testing.T) {
	var s IDSet
	s = s.With(3).With(1).With(3)
	assert.Equal(t, IDSet{3, 1}, s)
	assert.True(t, s.Has(1))

	without := s.Without(3)
	assert.Equal(t, IDSet{1}, without)
	assert.Equal(t, IDSet{3, 1}, s, "Without must not modify the receiver")
}

func TestLedgerResetKeepsApplications(t *testing.T) {
	l := EmptyLedger()
	l.Completed = IDSet{1, 7}
	l.TimedMinutes[5] = 30
	l.Protein = append(l.Protein, ProteinEntry{ID: "p", Label: "Eggs", Grams: 20})
	l.Workout = append(l.Workout, WorkoutEntry{Exercise: "Squat", Sets: []Set{{Weight: 100, Reps: 5}}})
	l.Applications = append(l.Applications, Application{ID: "a", Company: "Acme", Role: "Intern", Date: "2026-10-18"})

	snap := l.Clone()
	l.Reset()

	assert.Empty(t, l.Completed)
	assert.Empty(t, l.TimedMinutes)
	assert.Empty(t, l.Protein)
	assert.Empty(t, l.Workout)
	assert.Len(t, l.Applications, 1)

	assert.Equal(t, 30, snap.TimedMinutes[5])
	assert.Equal(t, 20, snap.ProteinTotal())
	require.Len(t, snap.Workout, 1)
	assert.Len(t, snap.Workout[0].Sets, 1)
}

func TestParsers(t *testing.T) {
	t.Run("task kind", func(t *testing.T) {
		k, err := ParseTaskKind(" Timed ")
		require.NoError(t, err)
		assert.Equal(t, KindTimed, k)
		_, err = ParseTaskKind("tickoff")
		assert.Error(t, err)
	})
	t.Run("stack basis", func(t *testing.T) {
		b, err := ParseStackBasis("cover-letters")
		require.NoError(t, err)
		assert.Equal(t, StackCoverLetters, b)
	})
	t.Run("progress", func(t *testing.T) {
		p, err := ParseProgress("interview")
		require.NoError(t, err)
		assert.Equal(t, ProgressInterview, p)
		_, err = ParseProgress("ghosted")
		assert.Error(t, err)
	})
}
