package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/pointledger/internal/model"
	"github.com/bryan-cox/pointledger/internal/report"
	"github.com/bryan-cox/pointledger/internal/ui"
)

var (
	proteinLabel string
	appDate      string
	appProgress  string
	appCover     bool

	toggleCmd = &cobra.Command{
		Use:   "toggle ID",
		Short: "Check or uncheck a checkbox task for today.",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runToggle),
	}

	minutesCmd = &cobra.Command{
		Use:   "minutes ID MINUTES",
		Short: "Log minutes against a timed task.",
		Args:  cobra.ExactArgs(2),
		RunE:  withSession(runMinutes),
	}

	proteinCmd = &cobra.Command{
		Use:   "protein",
		Short: "Log protein towards the daily goal.",
	}

	proteinAddCmd = &cobra.Command{
		Use:   "add GRAMS",
		Short: "Add a protein entry.",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runProteinAdd),
	}

	proteinRemoveCmd = &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a protein entry.",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runProteinRemove),
	}

	appCmd = &cobra.Command{
		Use:     "app",
		Aliases: []string{"application"},
		Short:   "Track job applications.",
	}

	appAddCmd = &cobra.Command{
		Use:   "add COMPANY ROLE",
		Short: "Record a job application.",
		Args:  cobra.ExactArgs(2),
		RunE:  withSession(runAppAdd),
	}

	appProgressCmd = &cobra.Command{
		Use:   "progress ID STAGE",
		Short: "Move an application to another stage.",
		Long:  `Stages: Application sent, Tests, Hirevue, Interview, Offer, Rejected.`,
		Args:  cobra.ExactArgs(2),
		RunE:  withSession(runAppProgress),
	}

	appRemoveCmd = &cobra.Command{
		Use:   "rm ID",
		Short: "Remove an application.",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runAppRemove),
	}

	appListCmd = &cobra.Command{
		Use:   "list",
		Short: "List applications by stage.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runAppList),
	}

	exerciseCmd = &cobra.Command{
		Use:   "exercise",
		Short: "Manage the exercise catalog.",
	}

	exerciseAddCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Add a selectable exercise.",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runExerciseAdd),
	}

	exerciseListCmd = &cobra.Command{
		Use:   "list",
		Short: "List exercises with the last weight used.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runExerciseList),
	}

	setCmd = &cobra.Command{
		Use:   "set EXERCISE WEIGHT REPS",
		Short: "Log a workout set.",
		Args:  cobra.ExactArgs(3),
		RunE:  withSession(runSet),
	}

	workoutCmd = &cobra.Command{
		Use:   "workout",
		Short: "Manage today's workout log.",
	}

	workoutRemoveCmd = &cobra.Command{
		Use:   "rm INDEX",
		Short: "Remove today's workout entry at INDEX (starting at 0).",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runWorkoutRemove),
	}
)

func init() {
	proteinAddCmd.Flags().StringVar(&proteinLabel, "label", "", "Food label.")

	appAddCmd.Flags().StringVar(&appDate, "date", "", "Submission date (YYYY-MM-DD, default today).")
	appAddCmd.Flags().StringVar(&appProgress, "progress", "", "Stage (default \"Application sent\").")
	appAddCmd.Flags().BoolVar(&appCover, "cover-letter", false, "The application included a cover letter.")

	proteinCmd.AddCommand(proteinAddCmd, proteinRemoveCmd)
	appCmd.AddCommand(appAddCmd, appProgressCmd, appRemoveCmd, appListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd)
	workoutCmd.AddCommand(workoutRemoveCmd)
	rootCmd.AddCommand(toggleCmd, minutesCmd, proteinCmd, appCmd, exerciseCmd, setCmd, workoutCmd)
}

func runToggle(cmd *cobra.Command, args []string, s *session) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	done, ok := s.tracker.ToggleCheckbox(id)
	if !ok {
		return errRejected
	}
	if done {
		cmd.Printf("%s Completed. Today: %s points\n", ui.IconDone, ui.Points(s.tracker.TodayPoints()))
	} else {
		cmd.Printf("Unchecked. Today: %s points\n", ui.Points(s.tracker.TodayPoints()))
	}
	return nil
}

func runMinutes(cmd *cobra.Command, args []string, s *session) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid minutes %q", args[1])
	}
	if !s.tracker.LogMinutes(id, minutes) {
		return errRejected
	}
	cmd.Printf("%s Logged %d min. Today: %s points\n", ui.IconTimer, minutes, ui.Points(s.tracker.TodayPoints()))
	return nil
}

func runProteinAdd(cmd *cobra.Command, args []string, s *session) error {
	grams, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid grams %q", args[0])
	}
	entry, ok := s.tracker.AddProteinEntry(proteinLabel, grams)
	if !ok {
		return errRejected
	}
	today := s.tracker.Today()
	cmd.Printf("%s %s %dg (%s). Total %d / %d g\n", ui.IconProtein, entry.Label, entry.Grams, entry.ID, today.ProteinGrams, today.ProteinGoal)
	return nil
}

func runProteinRemove(cmd *cobra.Command, args []string, s *session) error {
	if !s.tracker.RemoveProteinEntry(args[0]) {
		return errRejected
	}
	cmd.Printf("Removed protein entry %s\n", args[0])
	return nil
}

func runAppAdd(cmd *cobra.Command, args []string, s *session) error {
	var progress model.Progress
	if appProgress != "" {
		p, err := model.ParseProgress(appProgress)
		if err != nil {
			return err
		}
		progress = p
	}
	app, ok := s.tracker.AddApplication(args[0], args[1], appDate, progress, appCover)
	if !ok {
		return errRejected
	}
	cmd.Printf("%s %s, %s on %s (%s)\n", ui.IconStack, app.Company, app.Role, app.Date, app.ID)
	return nil
}

func runAppProgress(cmd *cobra.Command, args []string, s *session) error {
	progress, err := model.ParseProgress(args[1])
	if err != nil {
		return err
	}
	if !s.tracker.UpdateApplicationProgress(args[0], progress) {
		return errRejected
	}
	cmd.Printf("Application %s is now at %s\n", args[0], progress)
	return nil
}

func runAppRemove(cmd *cobra.Command, args []string, s *session) error {
	if !s.tracker.RemoveApplication(args[0]) {
		return errRejected
	}
	cmd.Printf("Removed application %s\n", args[0])
	return nil
}

func runAppList(cmd *cobra.Command, _ []string, s *session) error {
	report.PrintApplications(cmd.OutOrStdout(), s.tracker.Applications())
	return nil
}

func runExerciseAdd(cmd *cobra.Command, args []string, s *session) error {
	if !s.tracker.AddExercise(args[0]) {
		return errRejected
	}
	cmd.Printf("Added exercise %q\n", args[0])
	return nil
}

func runExerciseList(cmd *cobra.Command, _ []string, s *session) error {
	for _, name := range s.tracker.Exercises() {
		if w, ok := s.tracker.LastWeight(name); ok {
			cmd.Printf("  %-22s last %s\n", name, ui.Points(w))
		} else {
			cmd.Printf("  %s\n", name)
		}
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string, s *session) error {
	weight, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid weight %q", args[1])
	}
	reps, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid reps %q", args[2])
	}
	if !s.tracker.LogWorkoutSet(args[0], weight, reps) {
		return errRejected
	}
	cmd.Printf("%s %s %sx%d\n", ui.IconWorkout, args[0], ui.Points(weight), reps)
	return nil
}

func runWorkoutRemove(cmd *cobra.Command, args []string, s *session) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	if !s.tracker.RemoveWorkoutEntry(index) {
		return errRejected
	}
	cmd.Printf("Removed workout entry %d\n", index)
	return nil
}
