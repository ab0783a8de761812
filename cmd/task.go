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
	addKind    string
	addPoints  float64
	editName   string
	editKind   string
	editPoints float64
	editCounts string

	// taskCmd groups the task catalog commands
	taskCmd = &cobra.Command{
		Use:   "task",
		Short: "Manage the task catalog.",
	}

	taskListCmd = &cobra.Command{
		Use:   "list",
		Short: "List tasks with their ids and point values.",
		Args:  cobra.NoArgs,
		RunE:  withSession(runTaskList),
	}

	taskAddCmd = &cobra.Command{
		Use:   "add NAME",
		Short: "Add a task.",
		Long: `Adds a task to the catalog. Non-timed tasks take 0.5 to 20 points in half-point steps and
must fit in the 100 point budget; at most one task may be worth 20, two worth 15 and three worth 10.
Timed tasks earn points per minute and ignore --points.`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(runTaskAdd),
	}

	taskEditCmd = &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a task or change its kind, points or stack basis.",
		Args:  cobra.ExactArgs(1),
		RunE:  withSession(runTaskEdit),
	}

	taskRemoveCmd = &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a task.",
		Args:    cobra.ExactArgs(1),
		RunE:    withSession(runTaskRemove),
	}
)

func init() {
	taskAddCmd.Flags().StringVar(&addKind, "kind", string(model.KindCheckbox), "Task kind: checkbox, stackable, timed, nutrition or workout.")
	taskAddCmd.Flags().Float64Var(&addPoints, "points", 5, "Point value.")

	taskEditCmd.Flags().StringVar(&editName, "name", "", "New name.")
	taskEditCmd.Flags().StringVar(&editKind, "kind", "", "New kind.")
	taskEditCmd.Flags().Float64Var(&editPoints, "points", 0, "New point value.")
	taskEditCmd.Flags().StringVar(&editCounts, "counts", "", "Stack basis for stackable tasks: applications or cover_letters.")

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskEditCmd, taskRemoveCmd)
	rootCmd.AddCommand(taskCmd)
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func runTaskList(cmd *cobra.Command, _ []string, s *session) error {
	report.PrintTasks(cmd.OutOrStdout(), s.tracker.Tasks())
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string, s *session) error {
	kind, err := model.ParseTaskKind(addKind)
	if err != nil {
		return err
	}
	task, ok := s.tracker.AddTask(args[0], kind, addPoints)
	if !ok {
		return errRejected
	}
	cmd.Printf("%s Added task %d %q (%s, %s points)\n", ui.IconDone, task.ID, task.Name, task.Kind, ui.Points(task.Points))
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string, s *session) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("kind") && !flags.Changed("points") && !flags.Changed("counts") {
		return fmt.Errorf("nothing to change: pass --name, --kind, --points or --counts")
	}

	if flags.Changed("name") && !s.tracker.EditTaskName(id, editName) {
		return errRejected
	}
	if flags.Changed("kind") {
		kind, err := model.ParseTaskKind(editKind)
		if err != nil {
			return err
		}
		if !s.tracker.EditTaskKind(id, kind) {
			return errRejected
		}
	}
	if flags.Changed("points") && !s.tracker.EditTaskPoints(id, editPoints) {
		return errRejected
	}
	if flags.Changed("counts") {
		basis, err := model.ParseStackBasis(editCounts)
		if err != nil {
			return err
		}
		if !s.tracker.EditTaskStackBasis(id, basis) {
			return errRejected
		}
	}

	task, _ := s.tracker.Task(id)
	cmd.Printf("Updated task %d %q (%s, %s points)\n", task.ID, task.Name, task.Kind, ui.Points(task.Points))
	return nil
}

func runTaskRemove(cmd *cobra.Command, args []string, s *session) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if !s.tracker.RemoveTask(id) {
		return errRejected
	}
	cmd.Printf("Removed task %d\n", id)
	return nil
}
