package backend

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
)

// TranslationInput is everything the model would receive for one message.
type TranslationInput struct {
	Text           string
	TargetLanguage string
	Model          string
	CustomPrompt   *string
	History        []conversation.Message
	Dictionary     []dictionary.Entry
}

// Engine produces translations, speech and transcriptions.
type Engine interface {
	Translate(ctx context.Context, in TranslationInput) (string, error)
	Speak(ctx context.Context, text, model, voice string) ([]byte, error)
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// speechHeader makes synthesized clips sniff as audio/mpeg.
var speechHeader = []byte{'I', 'D', '3', 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// EchoEngine is a deterministic offline engine. Translations are the input
// tagged with the target language after dictionary substitution; speech
// clips carry their text so transcribing them returns it.
type EchoEngine struct{}

func (EchoEngine) Translate(_ context.Context, in TranslationInput) (string, error) {
	text := in.Text
	for _, e := range in.Dictionary {
		if e.SourceText != "" {
			text = strings.ReplaceAll(text, e.SourceText, e.TargetText)
		}
	}
	return fmt.Sprintf("[%s] %s", in.TargetLanguage, text), nil
}

func (EchoEngine) Speak(_ context.Context, text, _, _ string) ([]byte, error) {
	out := make([]byte, 0, len(speechHeader)+len(text))
	out = append(out, speechHeader...)
	return append(out, text...), nil
}

func (EchoEngine) Transcribe(_ context.Context, audio []byte, _ string) (string, error) {
	if bytes.HasPrefix(audio, speechHeader) {
		return string(audio[len(speechHeader):]), nil
	}
	detected := mimetype.Detect(audio)
	if !strings.HasPrefix(detected.String(), "audio/") && !strings.HasPrefix(detected.String(), "video/") {
		return "", fmt.Errorf("unsupported audio format %s", detected.String())
	}
	return fmt.Sprintf("(%d bytes of %s)", len(audio), detected.String()), nil
}
