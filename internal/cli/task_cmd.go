package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zenban/internal/api"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskEditCmd(app),
		newTaskAssignCmd(app),
		newTaskUnassignCmd(app),
		newTaskAssigneesCmd(app),
	)

	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}

			var patch api.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if patch.Title == nil && patch.Description == nil {
				return fmt.Errorf("nothing to update (use --title or --description)")
			}

			task, err := app.Tasks.UpdateTask(context.Background(), id, patch)
			if err != nil {
				return commandError(err)
			}
			fmt.Printf("Updated task %d: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newTaskAssignCmd(app *App) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "assign <task-id>",
		Short: "Assign a board member to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			if err := app.Assignees.AddAssignee(context.Background(), id, username); err != nil {
				return commandError(err)
			}
			fmt.Printf("Assigned %s to task %d\n", username, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to assign")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newTaskUnassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <task-id> <user-id>",
		Short: "Remove an assignee from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			userID, err := parseID(args[1], "user")
			if err != nil {
				return err
			}
			if err := app.Assignees.RemoveAssignee(context.Background(), taskID, userID); err != nil {
				return commandError(err)
			}
			fmt.Printf("Unassigned user %d from task %d\n", userID, taskID)
			return nil
		},
	}
}

func newTaskAssigneesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assignees <task-id>",
		Short: "List a task's assignees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			users, err := app.Assignees.ListAssignees(context.Background(), id)
			if err != nil {
				return commandError(err)
			}
			if len(users) == 0 {
				fmt.Println("No assignees")
				return nil
			}
			for _, u := range users {
				fmt.Printf("  %-5d %s\n", u.ID, u.Username)
			}
			return nil
		},
	}
}
