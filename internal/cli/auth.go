package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vendeya/internal/usecase"
)

func newLoginCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Session.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada: %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <email> <password> <confirm-password>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Session.Register(cmd.Context(), usecase.RegisterInput{
				Name:            args[0],
				Email:           args[1],
				Password:        args[2],
				ConfirmPassword: args[3],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cuenta creada: %s\n", user.Email)
			return nil
		},
	}
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the session and clear local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Session.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Sin sesión")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, user.Role)
			return nil
		},
	}
}

func newThemeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), app.Session.Theme())
				return nil
			}
			if err := app.Session.SetTheme(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tema: %s\n", args[0])
			return nil
		},
	}
}
