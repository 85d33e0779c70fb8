package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/conversation"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage the notes of a conversation",
}

var noteListCmd = &cobra.Command{
	Use:   "list <conversation-id>",
	Short: "List notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		notes, err := ws.LoadNotes(cmd.Context())
		if err != nil {
			return err
		}
		return printNotes(cmd, notes)
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add <conversation-id> <content>",
	Short: "Attach a note",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		note, err := ws.AddNote(cmd.Context(), strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return printNotes(cmd, []conversation.Note{note})
	},
}

var noteUpdateCmd = &cobra.Command{
	Use:   "update <conversation-id> <note-id> <content>",
	Short: "Rewrite a note",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1], "note id")
		if err != nil {
			return err
		}
		note, err := ws.UpdateNote(cmd.Context(), id, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		return printNotes(cmd, []conversation.Note{note})
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id> <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1], "note id")
		if err != nil {
			return err
		}
		if err := ws.DeleteNote(cmd.Context(), id); err != nil {
			return err
		}
		printStatus(cmd, "Deleted note %d", id)
		return nil
	},
}

func printNotes(cmd *cobra.Command, notes []conversation.Note) error {
	return printResult(cmd, notes, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tCREATED\tCONTENT")
		for _, n := range notes {
			fmt.Fprintf(w, "%d\t%s\t%s\n", n.ID, stamp(n.CreatedAt), clip(n.Content, 60))
		}
	})
}

func init() {
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteUpdateCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}
