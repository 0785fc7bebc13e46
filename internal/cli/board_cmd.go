package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"zenban/internal/cli/formatter"
)

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(
		newBoardListCmd(app),
		newBoardCreateCmd(app),
		newBoardRenameCmd(app),
		newBoardDeleteCmd(app),
		newBoardOpenCmd(app),
	)

	return cmd
}

func newBoardListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := app.Boards.ListBoards(context.Background())
			if err != nil {
				// Fall back to the last cached listing so the command
				// still works offline.
				if app.Cache != nil {
					cached, at, cerr := app.Cache.List()
					if cerr == nil && len(cached) > 0 {
						fmt.Println(formatter.FormatBoardList(cached))
						fmt.Println(formatter.Dim(fmt.Sprintf("  (cached %s, server unreachable)", at.Format(time.RFC822))))
						return nil
					}
				}
				return commandError(err)
			}

			if app.Cache != nil {
				_ = app.Cache.Put(boards)
			}
			fmt.Println(formatter.FormatBoardList(boards))
			return nil
		},
	}
}

func newBoardCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Boards.CreateBoard(context.Background(), name)
			if err != nil {
				return commandError(err)
			}
			fmt.Printf("Created board %q (id %d)\n", b.Name, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <board-id>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			b, err := app.Boards.UpdateBoard(context.Background(), id, name)
			if err != nil {
				return commandError(err)
			}
			fmt.Printf("Renamed board %d to %q\n", b.ID, b.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New board name")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			if err := app.Boards.DeleteBoard(context.Background(), id); err != nil {
				return commandError(err)
			}
			fmt.Printf("Deleted board %d\n", id)
			return nil
		},
	}
}

func newBoardOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <board-id>",
		Short: "Open a board interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			b, err := app.Boards.GetBoard(context.Background(), id)
			if err != nil {
				return commandError(err)
			}
			return runTUIAt(app, b)
		},
	}
}

func parseID(s, what string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, s)
	}
	return id, nil
}
