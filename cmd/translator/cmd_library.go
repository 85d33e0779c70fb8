package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/apperr"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/prompt"
	"github.com/janhq/jan-translator/internal/domain/settingspanel"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Manage the prompt library",
}

var promptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPrompts(cmd)
		if err != nil {
			return err
		}
		return printPrompts(cmd, panel)
	},
}

var promptCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Save a new prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openPrompts(cmd)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		p, err := panel.Create(cmd.Context(), title, content)
		if err != nil {
			return err
		}
		return printPrompt(cmd, p, panel.IsDefault(p.ID))
	},
}

var promptUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change the title or content of a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "prompt id")
		if err != nil {
			return err
		}
		panel, err := openPrompts(cmd)
		if err != nil {
			return err
		}
		current, ok := findPrompt(panel.Prompts, id)
		if !ok {
			return apperr.New(apperr.KindDomain, "Prompt not found")
		}
		title, content := current.Title, current.Content
		if cmd.Flags().Changed("title") {
			title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("content") {
			content, _ = cmd.Flags().GetString("content")
		}
		p, err := panel.Update(cmd.Context(), id, title, content)
		if err != nil {
			return err
		}
		return printPrompt(cmd, p, panel.IsDefault(p.ID))
	},
}

var promptDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "prompt id")
		if err != nil {
			return err
		}
		panel, err := openPrompts(cmd)
		if err != nil {
			return err
		}
		if err := panel.Delete(cmd.Context(), id); err != nil {
			return err
		}
		printStatus(cmd, "%s", panel.Status())
		return nil
	},
}

var promptDefaultCmd = &cobra.Command{
	Use:   "default <id>",
	Short: "Make a prompt the default for new translations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "prompt id")
		if err != nil {
			return err
		}
		panel, err := openPrompts(cmd)
		if err != nil {
			return err
		}
		if _, ok := findPrompt(panel.Prompts, id); !ok {
			return apperr.New(apperr.KindDomain, "Prompt not found")
		}
		if err := panel.SetDefault(cmd.Context(), id); err != nil {
			return err
		}
		printStatus(cmd, "%s", panel.Status())
		return nil
	},
}

func openPrompts(cmd *cobra.Command) (*settingspanel.PromptsPanel, error) {
	if err := app.requireLogin(cmd.Context()); err != nil {
		return nil, err
	}
	panel, err := app.panels.Open(cmd.Context(), settingspanel.KindPrompts)
	if err != nil {
		app.session.HandleAuthFailure(err)
		return nil, err
	}
	return panel.(*settingspanel.PromptsPanel), nil
}

func findPrompt(prompts []prompt.Prompt, id int64) (prompt.Prompt, bool) {
	for _, p := range prompts {
		if p.ID == id {
			return p, true
		}
	}
	return prompt.Prompt{}, false
}

type promptRow struct {
	prompt.Prompt `yaml:",inline"`
	IsDefault     bool `json:"is_default" yaml:"is_default"`
}

func printPrompts(cmd *cobra.Command, panel *settingspanel.PromptsPanel) error {
	rows := make([]promptRow, 0, len(panel.Prompts))
	for _, p := range panel.Prompts {
		rows = append(rows, promptRow{Prompt: p, IsDefault: panel.IsDefault(p.ID)})
	}
	return printResult(cmd, rows, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tDEFAULT\tCONTENT")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, clip(r.Title, 32), mark(r.IsDefault), clip(r.Content, 48))
		}
	})
}

func printPrompt(cmd *cobra.Command, p prompt.Prompt, isDefault bool) error {
	row := promptRow{Prompt: p, IsDefault: isDefault}
	return printResult(cmd, row, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tDEFAULT\tCONTENT")
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, clip(p.Title, 32), mark(isDefault), clip(p.Content, 48))
	})
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}

var dictionaryCmd = &cobra.Command{
	Use:     "dictionary",
	Aliases: []string{"dict"},
	Short:   "Manage fixed translations",
}

var dictionaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dictionary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openDictionary(cmd)
		if err != nil {
			return err
		}
		return printEntries(cmd, panel.Entries)
	},
}

var dictionaryAddCmd = &cobra.Command{
	Use:   "add <source> <target>",
	Short: "Always translate source as target",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel, err := openDictionary(cmd)
		if err != nil {
			return err
		}
		entry, err := panel.Add(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printEntries(cmd, []dictionary.Entry{entry})
	},
}

var dictionaryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a dictionary entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "entry id")
		if err != nil {
			return err
		}
		panel, err := openDictionary(cmd)
		if err != nil {
			return err
		}
		var current dictionary.Entry
		found := false
		for _, e := range panel.Entries {
			if e.ID == id {
				current, found = e, true
				break
			}
		}
		if !found {
			return apperr.New(apperr.KindDomain, "Dictionary entry not found")
		}
		source, target := current.SourceText, current.TargetText
		if cmd.Flags().Changed("source") {
			source, _ = cmd.Flags().GetString("source")
		}
		if cmd.Flags().Changed("target") {
			target, _ = cmd.Flags().GetString("target")
		}
		entry, err := panel.Update(cmd.Context(), id, source, target)
		if err != nil {
			return err
		}
		return printEntries(cmd, []dictionary.Entry{entry})
	},
}

var dictionaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dictionary entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "entry id")
		if err != nil {
			return err
		}
		panel, err := openDictionary(cmd)
		if err != nil {
			return err
		}
		if err := panel.Delete(cmd.Context(), id); err != nil {
			return err
		}
		printStatus(cmd, "%s", panel.Status())
		return nil
	},
}

func openDictionary(cmd *cobra.Command) (*settingspanel.DictionaryPanel, error) {
	if err := app.requireLogin(cmd.Context()); err != nil {
		return nil, err
	}
	panel, err := app.panels.Open(cmd.Context(), settingspanel.KindDictionary)
	if err != nil {
		app.session.HandleAuthFailure(err)
		return nil, err
	}
	return panel.(*settingspanel.DictionaryPanel), nil
}

func printEntries(cmd *cobra.Command, entries []dictionary.Entry) error {
	return printResult(cmd, entries, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tSOURCE\tTARGET")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, clip(e.SourceText, 40), clip(e.TargetText, 40))
		}
	})
}

func init() {
	promptCmd.AddCommand(promptListCmd)
	promptCmd.AddCommand(promptCreateCmd)
	promptCmd.AddCommand(promptUpdateCmd)
	promptCmd.AddCommand(promptDeleteCmd)
	promptCmd.AddCommand(promptDefaultCmd)

	promptCreateCmd.Flags().String("title", "", "Prompt title")
	promptCreateCmd.Flags().String("content", "", "Prompt content")
	promptUpdateCmd.Flags().String("title", "", "New title")
	promptUpdateCmd.Flags().String("content", "", "New content")

	dictionaryCmd.AddCommand(dictionaryListCmd)
	dictionaryCmd.AddCommand(dictionaryAddCmd)
	dictionaryCmd.AddCommand(dictionaryUpdateCmd)
	dictionaryCmd.AddCommand(dictionaryDeleteCmd)

	dictionaryUpdateCmd.Flags().String("source", "", "New source text")
	dictionaryUpdateCmd.Flags().String("target", "", "New target text")
}
