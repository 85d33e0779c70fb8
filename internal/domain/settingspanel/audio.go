package settingspanel

import (
	"context"

	"github.com/janhq/jan-translator/internal/domain/language"
	"github.com/janhq/jan-translator/internal/domain/setting"
)

// AudioPanel picks the language hint sent with transcriptions.
type AudioPanel struct {
	*base

	TranscriptionLanguage string
}

func (p *AudioPanel) Kind() Kind { return KindAudio }

func (p *AudioPanel) Load(ctx context.Context) error {
	p.TranscriptionLanguage = setting.DefaultTranscriptionLanguage
	s, err := p.api.GetSetting(ctx, setting.KeyTranscriptionLanguage)
	if err != nil {
		return p.fail(err, "Failed to load the current settings.")
	}
	p.TranscriptionLanguage = s.ValueOr(setting.DefaultTranscriptionLanguage)
	return nil
}

func (p *AudioPanel) Validate() error {
	if !language.IsTranscriptionLanguage(p.TranscriptionLanguage) {
		return p.invalid(validationError("unsupported transcription language %q", p.TranscriptionLanguage))
	}
	return nil
}

func (p *AudioPanel) Save(ctx context.Context) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	if _, err := p.api.UpsertSetting(ctx, setting.KeyTranscriptionLanguage, p.TranscriptionLanguage); err != nil {
		return Outcome{}, p.fail(err, "Failed to save the settings.")
	}
	return p.succeed("Settings saved."), nil
}
