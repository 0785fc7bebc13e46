package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"zenban/internal/api"
	"zenban/internal/auth"
	"zenban/internal/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("username and password are required (use --username and --password)")
				}
				if err := promptCredentials(&username, &password); err != nil {
					return err
				}
			}

			res, err := app.Accounts.Login(context.Background(), username, password)
			if err != nil {
				return commandError(err)
			}

			sess := &auth.Session{
				Access:  res.Access,
				Refresh: res.Refresh,
				Profile: domain.User{Username: username},
			}
			if err := app.Session.Save(sess); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Printf("Signed in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func promptCredentials(username, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Validate(requireNonEmpty).Value(username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Validate(requireNonEmpty).Value(password),
		),
	)
	return form.Run()
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var username, email, password, password2 string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := promptRegistration(&username, &email, &password, &password2); err != nil {
					return err
				}
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}
			if password != password2 {
				return fmt.Errorf("passwords do not match")
			}

			req := api.RegisterRequest{
				Username:  username,
				Email:     email,
				Password:  password,
				Password2: password2,
			}
			if err := app.Accounts.Register(context.Background(), req); err != nil {
				return commandError(err)
			}

			fmt.Printf("Registered %s. Run `zenban login` to sign in\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&password2, "confirm", "", "Password confirmation")
	return cmd
}

func promptRegistration(username, email, password, password2 *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Validate(requireNonEmpty).Value(username),
			huh.NewInput().Title("Email").Value(email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Validate(requireNonEmpty).Value(password),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Validate(requireNonEmpty).Value(password2),
		),
	)
	return form.Run()
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Session.Load()
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}
			if sess == nil {
				return commandError(api.ErrNotLoggedIn)
			}
			if sess.Profile.Email != "" {
				fmt.Printf("%s <%s>\n", sess.Profile.Username, sess.Profile.Email)
				return nil
			}
			fmt.Println(sess.Profile.Username)
			return nil
		},
	}
}
