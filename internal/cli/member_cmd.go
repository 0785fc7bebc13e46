package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zenban/internal/cli/formatter"
	"zenban/internal/domain"
)

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage board members",
	}

	cmd.AddCommand(
		newMemberListCmd(app),
		newMemberInviteCmd(app),
		newMemberSetRoleCmd(app),
		newMemberRemoveCmd(app),
	)

	return cmd
}

func parseRole(s string) (domain.Role, error) {
	switch domain.Role(s) {
	case domain.RoleOwner, domain.RoleEditor, domain.RoleViewer:
		return domain.Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q (expected owner, editor or viewer)", s)
	}
}

func newMemberListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <board-id>",
		Short: "List members of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			members, err := app.Members.ListMembers(context.Background(), boardID)
			if err != nil {
				return commandError(err)
			}
			fmt.Println(formatter.FormatMemberList(members))
			return nil
		},
	}
}

func newMemberInviteCmd(app *App) *cobra.Command {
	var username, role string

	cmd := &cobra.Command{
		Use:   "invite <board-id>",
		Short: "Invite a user to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			r, err := parseRole(role)
			if err != nil {
				return err
			}
			m, err := app.Members.InviteMember(context.Background(), boardID, username, r)
			if err != nil {
				return commandError(err)
			}
			fmt.Printf("Invited %s as %s (member %d)\n", m.User.Username, m.Role, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to invite")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEditor), "Role: owner, editor or viewer")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newMemberSetRoleCmd(app *App) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "set-role <board-id> <member-id>",
		Short: "Change a member's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			memberID, err := parseID(args[1], "member")
			if err != nil {
				return err
			}
			r, err := parseRole(role)
			if err != nil {
				return err
			}
			m, err := app.Members.UpdateMemberRole(context.Background(), boardID, memberID, r)
			if err != nil {
				return commandError(err)
			}
			fmt.Printf("%s is now %s\n", m.User.Username, m.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "New role: owner, editor or viewer")
	cmd.MarkFlagRequired("role")
	return cmd
}

func newMemberRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <board-id> <member-id>",
		Short: "Remove a member from a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			memberID, err := parseID(args[1], "member")
			if err != nil {
				return err
			}
			if err := app.Members.RemoveMember(context.Background(), boardID, memberID); err != nil {
				return commandError(err)
			}
			fmt.Printf("Removed member %d\n", memberID)
			return nil
		},
	}
}
