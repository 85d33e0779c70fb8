package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/workspace"
)

var messageCmd = &cobra.Command{
	Use:     "message",
	Aliases: []string{"msg", "m"},
	Short:   "Translate, edit and delete messages",
}

var messageSendCmd = &cobra.Command{
	Use:   "send <conversation-id> <text>",
	Short: "Translate text and append it to the conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		if err := ws.SetSourceLanguage(from); err != nil {
			return err
		}
		if err := ws.SetTargetLanguage(to); err != nil {
			return err
		}

		ws.Composer().SetText(strings.Join(args[1:], " "))
		entry, err := ws.Send(cmd.Context())
		if err != nil {
			return err
		}
		return printEntry(cmd, entry)
	},
}

var messageEditCmd = &cobra.Command{
	Use:   "edit <conversation-id> <message-id> <text>",
	Short: "Replace the original text and translate it again",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1], "message id")
		if err != nil {
			return err
		}
		entry, err := ws.EditMessage(cmd.Context(), id, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		return printEntry(cmd, entry)
	},
}

var messageDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id> <message-id>",
	Short: "Delete a message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1], "message id")
		if err != nil {
			return err
		}
		if err := ws.DeleteMessage(cmd.Context(), id); err != nil {
			return err
		}
		printStatus(cmd, "Deleted message %d", id)
		return nil
	},
}

func printEntry(cmd *cobra.Command, entry workspace.Entry) error {
	return printResult(cmd, entry, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tORIGINAL\tTRANSLATED\tSTATUS")
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", entry.ID, clip(entry.OriginalText, 40), entry.TranslatedText, entry.Status)
	})
}

func init() {
	messageCmd.AddCommand(messageSendCmd)
	messageCmd.AddCommand(messageEditCmd)
	messageCmd.AddCommand(messageDeleteCmd)

	messageSendCmd.Flags().String("from", "auto", "Source language code or name, auto to detect")
	messageSendCmd.Flags().StringP("to", "t", "en", "Target language code or name (en, ar, fr, de, es)")
}
