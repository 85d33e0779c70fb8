package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/infrastructure/apiclient"
)

type statusView struct {
	Backend  apiclient.Health `json:"backend" yaml:"backend"`
	LoggedIn bool             `json:"logged_in" yaml:"logged_in"`
	Username string           `json:"username,omitempty" yaml:"username,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the backend and the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		wait, _ := cmd.Flags().GetDuration("wait")

		var (
			health apiclient.Health
			err    error
		)
		if wait > 0 {
			health, err = app.client.WaitHealthy(cmd.Context(), wait, 500*time.Millisecond)
		} else {
			health, err = app.client.Health(cmd.Context())
		}
		if err != nil {
			return err
		}

		view := statusView{Backend: health}
		if err := app.session.Initialize(cmd.Context()); err != nil {
			return err
		}
		if user, ok := app.session.User(); ok {
			view.LoggedIn, view.Username = true, user.Username
		}

		return printResult(cmd, view, func(w io.Writer) {
			fmt.Fprintf(w, "Backend:\t%s\n", health.URL)
			fmt.Fprintf(w, "Status:\t%s\n", health.Status)
			if health.Message != "" {
				fmt.Fprintf(w, "Message:\t%s\n", health.Message)
			}
			if view.LoggedIn {
				fmt.Fprintf(w, "Session:\tlogged in as %s\n", view.Username)
			} else {
				fmt.Fprintln(w, "Session:\tlogged out")
			}
		})
	},
}

func init() {
	statusCmd.Flags().Duration("wait", 0, "Retry until the backend answers or this much time has passed")
}
