package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/account"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session",
	Long: `Sign in with username and password. The token is stored in the
session file (SESSION_STORE_PATH) and reused by later commands until it
expires. The password is read from stdin when --password is omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		password, err := readSecret(cmd, password, "Password: ")
		if err != nil {
			return err
		}
		user, err := app.accounts.Login(cmd.Context(), account.LoginForm{Username: username, Password: password})
		if err != nil {
			return err
		}
		printStatus(cmd, "Logged in as %s", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.session.Logout(); err != nil {
			return err
		}
		printStatus(cmd, "Logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		confirm, _ := cmd.Flags().GetString("confirm")

		if password == "" {
			var err error
			if password, err = readSecret(cmd, "", "Password: "); err != nil {
				return err
			}
			if confirm, err = readSecret(cmd, "", "Confirm password: "); err != nil {
				return err
			}
		} else if confirm == "" {
			confirm = password
		}

		user, err := app.accounts.Register(cmd.Context(), account.RegisterForm{
			Username:        username,
			Email:           email,
			Password:        password,
			ConfirmPassword: confirm,
		})
		if err != nil {
			return err
		}
		printStatus(cmd, "Registered %s, you can now log in", user.Username)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		user, _ := app.session.User()
		return printResult(cmd, user, func(w io.Writer) {
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tACTIVE\tCREATED")
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", user.ID, user.Username, deref(user.Email), user.IsActive, stamp(user.CreatedAt))
		})
	},
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the password of the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		oldPassword, _ := cmd.Flags().GetString("old")
		newPassword, _ := cmd.Flags().GetString("new")
		confirm, _ := cmd.Flags().GetString("confirm")

		var err error
		if oldPassword, err = readSecret(cmd, oldPassword, "Current password: "); err != nil {
			return err
		}
		if newPassword == "" {
			if newPassword, err = readSecret(cmd, "", "New password: "); err != nil {
				return err
			}
			if confirm, err = readSecret(cmd, "", "Confirm new password: "); err != nil {
				return err
			}
		} else if confirm == "" {
			confirm = newPassword
		}

		err = app.accounts.ChangePassword(cmd.Context(), account.PasswordForm{
			OldPassword:     oldPassword,
			ConfirmPassword: confirm,
			NewPassword:     newPassword,
		})
		if err != nil {
			return err
		}
		printStatus(cmd, "Password changed")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Username")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	registerCmd.Flags().StringP("username", "u", "", "Username")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	registerCmd.Flags().String("confirm", "", "Password confirmation (defaults to --password)")

	passwordCmd.Flags().String("old", "", "Current password")
	passwordCmd.Flags().String("new", "", "New password")
	passwordCmd.Flags().String("confirm", "", "New password confirmation (defaults to --new)")
}
