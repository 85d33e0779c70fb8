package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Turn speech into text",
	Long: `Transcribe an audio file, or record from the microphone for the
--record duration using RECORDER_COMMAND. The language hint comes from the
audio settings panel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		duration, _ := cmd.Flags().GetDuration("record")

		var (
			text string
			err  error
		)
		switch {
		case len(args) == 1 && duration > 0:
			return apperr.Validation("pass either an audio file or --record, not both")
		case len(args) == 1:
			var data []byte
			if data, err = os.ReadFile(args[0]); err != nil {
				return fmt.Errorf("read audio file: %w", err)
			}
			text, err = app.workspace(0, nil).TranscribeFile(cmd.Context(), filepath.Base(args[0]), data)
		case duration > 0:
			text, err = record(cmd, duration)
		default:
			return apperr.Validation("pass an audio file or --record <duration>")
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

// record captures the microphone for d, or until interrupted, and
// transcribes the clip.
func record(cmd *cobra.Command, d time.Duration) (string, error) {
	recorder := app.recorder()
	if recorder == nil {
		return "", apperr.New(apperr.KindPermission, "voice capture is not configured, set RECORDER_COMMAND")
	}
	ws := app.workspace(0, recorder)
	defer ws.Close()

	voice := ws.Voice()
	// The capture must outlive an interrupt so the clip can still be stopped
	// and transcribed.
	if err := voice.StartRecording(contextWithoutCancel(cmd)); err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Recording for %s...\n", d)

	select {
	case <-time.After(d):
	case <-cmd.Context().Done():
	}
	return voice.StopRecording(contextWithoutCancel(cmd))
}

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Read text aloud with the configured voice",
	Long: `Synthesise speech with the tts_model and tts_voice settings. The mp3
is played with TTS_PLAYER_COMMAND when --play is set, otherwise it is saved
to --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.requireLogin(cmd.Context()); err != nil {
			return err
		}
		audio, err := app.workspace(0, nil).Speak(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if play, _ := cmd.Flags().GetBool("play"); play {
			player := app.player()
			if player == nil {
				return apperr.New(apperr.KindPermission, "no audio player configured, set TTS_PLAYER_COMMAND")
			}
			return player.Play(cmd.Context(), audio)
		}

		out, _ := cmd.Flags().GetString("out")
		if err := os.WriteFile(out, audio, 0o644); err != nil {
			return fmt.Errorf("write speech: %w", err)
		}
		printStatus(cmd, "Saved speech to %s", out)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().Duration("record", 0, "Record from the microphone for this long (e.g. 5s)")

	speakCmd.Flags().String("out", "speech.mp3", "Destination mp3 file")
	speakCmd.Flags().Bool("play", false, "Play the audio instead of saving it")
}
