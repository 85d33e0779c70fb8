package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/janhq/jan-translator/internal/domain/setting"
)

// TextToSpeech synthesizes text with the configured model and voice.
func (s *Service) TextToSpeech(ctx context.Context, owner int64, text string) ([]byte, error) {
	if err := s.requireAPIKey(ctx, owner); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, badRequest("Text is required")
	}
	model := s.settingOr(ctx, owner, setting.KeyTTSModel, setting.DefaultTTSModel)
	voice := s.settingOr(ctx, owner, setting.KeyTTSVoice, setting.DefaultTTSVoice)
	audio, err := s.engine.Speak(ctx, text, model, voice)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("Error during text-to-speech: %v", err))
	}
	s.logger(ctx).Debug().Str("model", model).Str("voice", voice).Int("bytes", len(audio)).Msg("speech synthesized")
	return audio, nil
}

// Transcribe converts an uploaded clip into text. The transcription language
// setting is passed along unless it is auto.
func (s *Service) Transcribe(ctx context.Context, owner int64, filename string, audio []byte) (string, error) {
	if err := s.requireAPIKey(ctx, owner); err != nil {
		return "", err
	}
	if len(audio) == 0 {
		return "", badRequest("Audio file is empty")
	}
	lang := s.settingOr(ctx, owner, setting.KeyTranscriptionLanguage, setting.DefaultTranscriptionLanguage)
	if lang == setting.DefaultTranscriptionLanguage {
		lang = ""
	}
	text, err := s.engine.Transcribe(ctx, audio, lang)
	if err != nil {
		return "", badRequest(fmt.Sprintf("Error during transcription: %v", err))
	}
	s.logger(ctx).Debug().Str("filename", filename).Int("bytes", len(audio)).Str("text", s.redact.Text(text)).Msg("audio transcribed")
	return text, nil
}
