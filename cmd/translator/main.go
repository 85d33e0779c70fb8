package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	loadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails.
	if teardownErr := teardownApp(ctx); err == nil {
		err = teardownErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "translator",
	Short: "Jan Translator - conversational translation from the terminal",
	Long: `translator is the command-line front-end of the Jan translation assistant.

It signs in to the translation backend, manages conversations, translates
text and voice messages and edits the account settings.

Quick Start:
  translator sandbox --seed demo:demo123     # local backend on :8000
  translator login -u demo -p demo123
  translator conversation create "Trip to Paris"
  translator message send 1 "where is the station?" --to fr
  translator workspace 1                     # interactive workspace`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardownApp(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(conversationCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(settingCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(dictionaryCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(sandboxCmd)
	rootCmd.AddCommand(statusCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
