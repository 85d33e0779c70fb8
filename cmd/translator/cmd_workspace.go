package main

import (
	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/interfaces/tui"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace <conversation-id>",
	Aliases: []string{"ws", "open"},
	Short:   "Open the interactive translation workspace",
	Long: `Open a conversation in the full-screen workspace.

Keys:
  enter    translate the input        ctrl+r  start/stop voice input
  ctrl+t   next target language       ctrl+l  next source language
  ctrl+s   swap languages             ctrl+e  export the transcript
  ctrl+p   read the last translation  esc     quit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "conversation id")
		if err != nil {
			return err
		}
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")

		opts := tui.Options{OutputDir: dir, Timeout: app.cfg.HTTPTimeout}
		if player := app.player(); player != nil {
			opts.Player = player
		}
		return tui.Run(app.workspace(id, app.recorder()), opts)
	},
}

func init() {
	workspaceCmd.Flags().String("dir", ".", "Directory exports and speech clips are saved to")
}
