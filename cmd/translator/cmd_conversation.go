package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/conversationlist"
	"github.com/janhq/jan-translator/internal/domain/workspace"
)

var conversationCmd = &cobra.Command{
	Use:     "conversation",
	Aliases: []string{"conv", "c"},
	Short:   "Manage conversations",
}

var conversationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active or archived conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		archived, _ := cmd.Flags().GetBool("archived")
		search, _ := cmd.Flags().GetString("search")

		list := app.conversations()
		mode := conversationlist.ModeActive
		if archived {
			mode = conversationlist.ModeArchived
		}
		if err := list.SetMode(cmd.Context(), mode); err != nil {
			return err
		}
		list.SetQuery(search)
		items := list.Items()

		return printResult(cmd, items, func(w io.Writer) {
			fmt.Fprintln(w, "ID\tTITLE\tCREATED\tCONTEXT\tARCHIVED")
			for _, c := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\n", c.ID, clip(c.Title, 48), stamp(c.CreatedAt), c.UseContext, c.IsArchived)
			}
		})
	},
}

var conversationCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Start a new conversation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		conv, err := app.conversations().Create(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printConversation(cmd, conv)
	},
}

// conversationView is the structured output of conversation show.
type conversationView struct {
	Conversation conversation.Conversation `json:"conversation" yaml:"conversation"`
	Messages     []workspace.Entry         `json:"messages" yaml:"messages"`
}

var conversationShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a conversation and its messages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		view := conversationView{Conversation: ws.Conversation(), Messages: ws.Timeline().Entries()}

		return printResult(cmd, view, func(w io.Writer) {
			c := view.Conversation
			fmt.Fprintf(w, "Conversation:\t%d  %s\n", c.ID, c.Title)
			fmt.Fprintf(w, "Created:\t%s\n", stamp(c.CreatedAt))
			fmt.Fprintf(w, "Use context:\t%t\n", c.UseContext)
			fmt.Fprintf(w, "Custom prompt:\t%s\n", clip(deref(c.CustomPrompt), 60))
			fmt.Fprintf(w, "Archived:\t%t\n\n", c.IsArchived)
			fmt.Fprintln(w, "ID\tORIGINAL\tTRANSLATED\tCREATED")
			for _, m := range view.Messages {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, clip(m.OriginalText, 40), clip(m.TranslatedText, 40), stamp(m.CreatedAt))
			}
		})
	},
}

var conversationRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConversationID(cmd, args[0], func(list *conversationlist.List, id int64) error {
			if err := list.Rename(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			printStatus(cmd, "Renamed conversation %d", id)
			return nil
		})
	},
}

var conversationDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation with its messages and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConversationID(cmd, args[0], func(list *conversationlist.List, id int64) error {
			if err := list.Delete(cmd.Context(), id); err != nil {
				return err
			}
			printStatus(cmd, "Deleted conversation %d", id)
			return nil
		})
	},
}

var conversationArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Move a conversation to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConversationID(cmd, args[0], func(list *conversationlist.List, id int64) error {
			if err := list.Archive(cmd.Context(), id); err != nil {
				return err
			}
			printStatus(cmd, "Archived conversation %d", id)
			return nil
		})
	},
}

var conversationUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Restore an archived conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConversationID(cmd, args[0], func(list *conversationlist.List, id int64) error {
			if err := list.Unarchive(cmd.Context(), id); err != nil {
				return err
			}
			printStatus(cmd, "Restored conversation %d", id)
			return nil
		})
	},
}

var conversationExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Download the plain text transcript",
	Long: `Download the transcript of a conversation. It is saved as <title>.txt
in the current directory unless --out names another file; --out - prints it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		export, err := ws.Export(cmd.Context())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		switch out {
		case "-":
			fmt.Fprint(cmd.OutOrStdout(), export.Content)
			return nil
		case "":
			out = export.Filename
		}
		if err := os.WriteFile(out, []byte(export.Content), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		printStatus(cmd, "Saved transcript to %s", filepath.Clean(out))
		return nil
	},
}

var conversationSettingsCmd = &cobra.Command{
	Use:   "settings <id>",
	Short: "Show or change the context flag and custom prompt",
	Long: `Without flags the current settings are printed. --use-context toggles
whether the previous messages are sent as history, --prompt copies a prompt
from the library, --custom-prompt sets the text directly and --clear-prompt
removes it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd, args[0])
		if err != nil {
			return err
		}
		conv := ws.Conversation()
		useContext := conv.UseContext
		customPrompt := ""
		if conv.CustomPrompt != nil {
			customPrompt = *conv.CustomPrompt
		}

		flags := cmd.Flags()
		changed := false
		if flags.Changed("use-context") {
			useContext, _ = flags.GetBool("use-context")
			changed = true
		}
		if flags.Changed("custom-prompt") {
			customPrompt, _ = flags.GetString("custom-prompt")
			changed = true
		}
		if flags.Changed("prompt") {
			promptID, _ := flags.GetInt64("prompt")
			prompts, err := ws.PromptLibrary(cmd.Context())
			if err != nil {
				return err
			}
			found := false
			for _, p := range prompts {
				if p.ID == promptID {
					customPrompt, found = p.Content, true
					break
				}
			}
			if !found {
				return apperr.Validation("prompt %d is not in the library", promptID)
			}
			changed = true
		}
		if clearPrompt, _ := flags.GetBool("clear-prompt"); clearPrompt {
			customPrompt = ""
			changed = true
		}

		if changed {
			if err := ws.SaveSettings(cmd.Context(), useContext, customPrompt); err != nil {
				return err
			}
		}
		return printConversation(cmd, ws.Conversation())
	},
}

func printConversation(cmd *cobra.Command, c conversation.Conversation) error {
	c.Messages = nil
	return printResult(cmd, c, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tCREATED\tCONTEXT\tCUSTOM PROMPT")
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", c.ID, clip(c.Title, 48), stamp(c.CreatedAt), c.UseContext, clip(deref(c.CustomPrompt), 40))
	})
}

func withConversationID(cmd *cobra.Command, arg string, fn func(list *conversationlist.List, id int64) error) error {
	id, err := parseID(arg, "conversation id")
	if err != nil {
		return err
	}
	if err := app.requireLogin(cmd.Context()); err != nil {
		return err
	}
	return fn(app.conversations(), id)
}

// openWorkspace signs in and loads the conversation named by arg.
func openWorkspace(cmd *cobra.Command, arg string) (*workspace.Workspace, error) {
	id, err := parseID(arg, "conversation id")
	if err != nil {
		return nil, err
	}
	if err := app.requireLogin(cmd.Context()); err != nil {
		return nil, err
	}
	ws := app.workspace(id, nil)
	if err := ws.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return ws, nil
}

func init() {
	conversationCmd.AddCommand(conversationListCmd)
	conversationCmd.AddCommand(conversationCreateCmd)
	conversationCmd.AddCommand(conversationShowCmd)
	conversationCmd.AddCommand(conversationRenameCmd)
	conversationCmd.AddCommand(conversationDeleteCmd)
	conversationCmd.AddCommand(conversationArchiveCmd)
	conversationCmd.AddCommand(conversationUnarchiveCmd)
	conversationCmd.AddCommand(conversationExportCmd)
	conversationCmd.AddCommand(conversationSettingsCmd)

	conversationListCmd.Flags().Bool("archived", false, "List archived conversations")
	conversationListCmd.Flags().StringP("search", "s", "", "Filter by title")

	conversationExportCmd.Flags().String("out", "", "Destination file, - for stdout")

	conversationSettingsCmd.Flags().Bool("use-context", true, "Send previous messages as history")
	conversationSettingsCmd.Flags().Int64("prompt", 0, "Copy the content of a library prompt")
	conversationSettingsCmd.Flags().String("custom-prompt", "", "Custom prompt text")
	conversationSettingsCmd.Flags().Bool("clear-prompt", false, "Remove the custom prompt")
}
