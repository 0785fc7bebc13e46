package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "zenban" command and registers all
// subcommands against the provided App. Running it without a subcommand
// opens the interactive board view when attached to a terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "zenban",
		Short: "Kanban boards from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newWhoamiCmd(app),
		newBoardCmd(app),
		newTaskCmd(app),
		newMemberCmd(app),
	)

	return root
}
