package main

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Setup ---

// setupTests returns flags pointing every command at a fresh state file.
func setupTests(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("POINTLEDGER_LOG_LEVEL", "error")
	return []string{
		"--config", filepath.Join(dir, "config.yml"),
		"--store", "file",
		"--store-path", filepath.Join(dir, "state.yml"),
	}
}

// resetFlags restores every flag to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCommand executes the root command and returns its output and error.
func runCommand(t *testing.T, base []string, args ...string) (string, error) {
	t.Helper()
	b := new(bytes.Buffer)

	// Set the command's output to our buffer
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(append(args, base...))
	resetFlags(rootCmd)

	err := rootCmd.Execute()
	return b.String(), err
}

// executeCommandText captures plain text output from a command that must succeed.
func executeCommandText(t *testing.T, base []string, args ...string) string {
	t.Helper()
	out, err := runCommand(t, base, args...)
	if err != nil {
		t.Fatalf("command execution failed: %v\n%s", err, out)
	}
	return out
}

// --- Test Functions ---

func TestTaskCommands(t *testing.T) {
	base := setupTests(t)

	t.Run("lists the default catalog", func(t *testing.T) {
		output := executeCommandText(t, base, "task", "list")
		assert.Contains(t, output, "Out of bed @ alarm")
		assert.Contains(t, output, "77.5 assigned, 22.5 remaining")
	})

	t.Run("adds a task within the budget", func(t *testing.T) {
		output := executeCommandText(t, base, "task", "add", "Read", "--points", "20")
		assert.Contains(t, output, `"Read" (checkbox, 20 points)`)
	})

	t.Run("rejects a second task at the top tier", func(t *testing.T) {
		output, err := runCommand(t, base, "task", "add", "Write", "--points", "20")
		require.ErrorIs(t, err, errRejected)
		assert.Contains(t, output, "rejected")
	})

	t.Run("adds a timed task outside the budget", func(t *testing.T) {
		output := executeCommandText(t, base, "task", "add", "Piano", "--kind", "timed")
		assert.Contains(t, output, "(timed, 0 points)")
	})

	t.Run("edits and removes a task", func(t *testing.T) {
		output := executeCommandText(t, base, "task", "edit", "7", "--name", "Sunscreen", "--points", "2.5")
		assert.Contains(t, output, `Updated task 7 "Sunscreen" (checkbox, 2.5 points)`)

		_, err := runCommand(t, base, "task", "edit", "7", "--points", "20")
		assert.ErrorIs(t, err, errRejected)

		_, err = runCommand(t, base, "task", "edit", "7")
		assert.Error(t, err)

		output = executeCommandText(t, base, "task", "rm", "7")
		assert.Contains(t, output, "Removed task 7")
		output = executeCommandText(t, base, "task", "list")
		assert.NotContains(t, output, "Sunscreen")
	})
}

func TestLedgerCommandsAndToday(t *testing.T) {
	base := setupTests(t)

	output := executeCommandText(t, base, "toggle", "1")
	assert.Contains(t, output, "Completed. Today: 5 points")

	output = executeCommandText(t, base, "minutes", "5", "45")
	assert.Contains(t, output, "Today: 12 points")

	_, err := runCommand(t, base, "minutes", "5", "0")
	assert.ErrorIs(t, err, errRejected)

	output = executeCommandText(t, base, "protein", "add", "160", "--label", "Steak")
	assert.Contains(t, output, "Steak 160g")
	assert.Contains(t, output, "Total 160 / 150 g")

	output = executeCommandText(t, base, "app", "add", "Acme", "Analyst", "--cover-letter")
	assert.Contains(t, output, "Acme, Analyst")

	output = executeCommandText(t, base, "set", "Squat", "80", "5")
	assert.Contains(t, output, "Squat 80x5")

	_, err = runCommand(t, base, "set", "Cartwheels", "1", "1")
	assert.ErrorIs(t, err, errRejected)

	// 5 + floor(45/6) + 10 protein + 2.5 + 10 + 15 gym
	output = executeCommandText(t, base, "today")
	assert.Contains(t, output, "Score: 49.5 / 100")
	assert.Contains(t, output, "Squat 80x5")

	output = executeCommandText(t, base, "exercise", "list")
	assert.Regexp(t, regexp.MustCompile(`Squat\s+last 80`), output)

	output = executeCommandText(t, base, "app", "list")
	assert.Contains(t, output, "Application sent")
	id := regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`).FindString(output)
	require.NotEmpty(t, id)

	output = executeCommandText(t, base, "app", "progress", id, "interview")
	assert.Contains(t, output, "is now at Interview")
}

func TestCompleteDayAndHistoryCommands(t *testing.T) {
	base := setupTests(t)

	output := executeCommandText(t, base, "week")
	assert.Contains(t, output, "no archived days yet")

	executeCommandText(t, base, "toggle", "9")
	output = executeCommandText(t, base, "complete-day")
	assert.Contains(t, output, "with 10 points")

	output = executeCommandText(t, base, "today")
	assert.Contains(t, output, "Score: 0 / 100")

	output = executeCommandText(t, base, "week")
	assert.Equal(t, 2, len(strings.Split(strings.TrimSpace(output), "\n")))

	output = executeCommandText(t, base, "stats")
	assert.Contains(t, output, "Days logged: 1")
	assert.Contains(t, output, "Best day: 10")

	output = executeCommandText(t, base, "calendar")
	assert.Contains(t, output, "Calendar")
}

func TestUnknownStoreBackend(t *testing.T) {
	setupTests(t)
	_, err := runCommand(t, nil, "today", "--config", filepath.Join(t.TempDir(), "config.yml"), "--store", "etcd")
	assert.ErrorContains(t, err, "unknown store backend")
}
