package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/setting"
	"github.com/janhq/jan-translator/internal/domain/settingspanel"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Read and write raw user settings",
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		s, err := app.client.GetSetting(cmd.Context(), args[0])
		if err != nil {
			app.session.HandleAuthFailure(err)
			return err
		}
		return printSetting(cmd, s)
	},
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		s, err := app.client.UpsertSetting(cmd.Context(), args[0], args[1])
		if err != nil {
			app.session.HandleAuthFailure(err)
			return err
		}
		if s.Key == setting.KeyOpenAIAPIKey {
			printStatus(cmd, "Stored %s", s.Key)
			return nil
		}
		return printSetting(cmd, s)
	},
}

func printSetting(cmd *cobra.Command, s setting.Setting) error {
	return printResult(cmd, s, func(w io.Writer) {
		fmt.Fprintln(w, "KEY\tVALUE")
		fmt.Fprintf(w, "%s\t%s\n", s.Key, deref(s.Value))
	})
}

var settingsCmd = &cobra.Command{
	Use:   "settings <panel>",
	Short: "Show or edit a settings panel",
	Long: `Open one of the settings panels: profile, api-key, models or audio.
Without flags the current values are shown; with flags the panel is
validated and saved as a whole. Prompts and the dictionary have their own
commands (translator prompt, translator dictionary).

Examples:
  translator settings profile --full-name "Ada Lovelace" --email ada@example.com
  translator settings api-key --key sk-...
  translator settings models --tts-voice nova
  translator settings audio --language fr`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"profile", "api-key", "models", "audio"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := settingspanel.ParseKind(args[0])
		if err != nil {
			return err
		}
		if kind == settingspanel.KindPrompts || kind == settingspanel.KindDictionary {
			return fmt.Errorf("use `translator %s list` for the %s panel", strings.TrimSuffix(string(kind), "s"), kind)
		}
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		panel, err := app.panels.Open(cmd.Context(), kind)
		if err != nil {
			app.session.HandleAuthFailure(err)
			return err
		}

		changed, err := applyPanelFlags(cmd, panel)
		if err != nil {
			return err
		}
		if changed {
			form := panel.(settingspanel.Form)
			outcome, err := form.Save(cmd.Context())
			if err != nil {
				app.session.HandleAuthFailure(err)
				return err
			}
			printStatus(cmd, "%s", outcome.Status)
			if kind == settingspanel.KindAPIKey {
				return nil
			}
		}
		return printPanel(cmd, panel)
	},
}

// applyPanelFlags copies the changed flags into the panel fields and
// reports whether anything was set.
func applyPanelFlags(cmd *cobra.Command, panel settingspanel.Panel) (bool, error) {
	flags := cmd.Flags()
	changed := false
	set := func(name string, apply func(string) error) error {
		if !flags.Changed(name) {
			return nil
		}
		value, _ := flags.GetString(name)
		changed = true
		return apply(value)
	}
	assign := func(target *string) func(string) error {
		return func(v string) error { *target = strings.TrimSpace(v); return nil }
	}

	var err error
	switch p := panel.(type) {
	case *settingspanel.ProfilePanel:
		for flag, field := range map[string]string{
			"full-name":    "full_name",
			"phone":        "phone_number",
			"email":        "email",
			"work-address": "work_address",
		} {
			if err = set(flag, func(v string) error { return p.Set(field, v) }); err != nil {
				return false, err
			}
		}
	case *settingspanel.APIKeyPanel:
		err = set("key", assign(&p.Key))
	case *settingspanel.ModelsPanel:
		if err = set("translation-model", assign(&p.TranslationModel)); err != nil {
			return false, err
		}
		if err = set("tts-model", assign(&p.TTSModel)); err != nil {
			return false, err
		}
		err = set("tts-voice", assign(&p.TTSVoice))
	case *settingspanel.AudioPanel:
		err = set("language", assign(&p.TranscriptionLanguage))
	}
	return changed, err
}

func printPanel(cmd *cobra.Command, panel settingspanel.Panel) error {
	var rows [][2]string
	var value any
	switch p := panel.(type) {
	case *settingspanel.ProfilePanel:
		value = p.Values
		rows = [][2]string{
			{"full_name", deref(p.Values.FullName)},
			{"phone_number", deref(p.Values.PhoneNumber)},
			{"email", deref(p.Values.Email)},
			{"work_address", deref(p.Values.WorkAddress)},
		}
	case *settingspanel.APIKeyPanel:
		value = map[string]string{"openai_api_key": "(hidden)"}
		rows = [][2]string{{"openai_api_key", "(hidden, set with --key)"}}
	case *settingspanel.ModelsPanel:
		value = map[string]string{
			setting.KeyTranslationModel: p.TranslationModel,
			setting.KeyTTSModel:         p.TTSModel,
			setting.KeyTTSVoice:         p.TTSVoice,
		}
		rows = [][2]string{
			{setting.KeyTranslationModel, p.TranslationModel},
			{setting.KeyTTSModel, p.TTSModel},
			{setting.KeyTTSVoice, p.TTSVoice},
		}
	case *settingspanel.AudioPanel:
		value = map[string]string{setting.KeyTranscriptionLanguage: p.TranscriptionLanguage}
		rows = [][2]string{{setting.KeyTranscriptionLanguage, p.TranscriptionLanguage}}
	}
	return printResult(cmd, value, func(w io.Writer) {
		fmt.Fprintln(w, "FIELD\tVALUE")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
		}
	})
}

func init() {
	settingCmd.AddCommand(settingGetCmd)
	settingCmd.AddCommand(settingSetCmd)

	f := settingsCmd.Flags()
	f.String("full-name", "", "Profile: full name")
	f.String("phone", "", "Profile: phone number")
	f.String("email", "", "Profile: email")
	f.String("work-address", "", "Profile: work address")
	f.String("key", "", "API key: OpenAI key")
	f.String("translation-model", "", "Models: "+strings.Join(settingspanel.TranslationModels, ", "))
	f.String("tts-model", "", "Models: "+strings.Join(settingspanel.TTSModels, ", "))
	f.String("tts-voice", "", "Models: "+strings.Join(settingspanel.TTSVoices, ", "))
	f.String("language", "", "Audio: transcription language (auto, ar, en, fr, de, es, tr)")
}
