package settingspanel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/janhq/jan-translator/internal/domain/setting"
	"github.com/janhq/jan-translator/internal/domain/validation"
)

// Choices offered by the models panel.
var (
	TranslationModels = []string{"gpt-4o-mini", "gpt-4o", "gpt-4-turbo"}
	TTSModels         = []string{"tts-1", "tts-1-hd"}
	TTSVoices         = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
)

// ModelsPanel selects the translation model and the text-to-speech model
// and voice.
type ModelsPanel struct {
	*base

	TranslationModel string
	TTSModel         string
	TTSVoice         string
}

type modelsForm struct {
	TranslationModel string `validate:"oneof=gpt-4o-mini gpt-4o gpt-4-turbo" label:"translation model"`
	TTSModel         string `validate:"oneof=tts-1 tts-1-hd" label:"speech model"`
	TTSVoice         string `validate:"oneof=alloy echo fable onyx nova shimmer" label:"voice"`
}

func (p *ModelsPanel) Kind() Kind { return KindModels }

// Load reads the three settings concurrently, keeping defaults for unset keys.
func (p *ModelsPanel) Load(ctx context.Context) error {
	var translation, tts, voice setting.Setting
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		translation, err = p.api.GetSetting(gctx, setting.KeyTranslationModel)
		return err
	})
	g.Go(func() (err error) {
		tts, err = p.api.GetSetting(gctx, setting.KeyTTSModel)
		return err
	})
	g.Go(func() (err error) {
		voice, err = p.api.GetSetting(gctx, setting.KeyTTSVoice)
		return err
	})
	if err := g.Wait(); err != nil {
		p.applyDefaults()
		return p.fail(err, "Failed to load the current settings.")
	}

	p.TranslationModel = translation.ValueOr(setting.DefaultTranslationModel)
	p.TTSModel = tts.ValueOr(setting.DefaultTTSModel)
	p.TTSVoice = voice.ValueOr(setting.DefaultTTSVoice)
	return nil
}

func (p *ModelsPanel) applyDefaults() {
	p.TranslationModel = setting.DefaultTranslationModel
	p.TTSModel = setting.DefaultTTSModel
	p.TTSVoice = setting.DefaultTTSVoice
}

func (p *ModelsPanel) Validate() error {
	return p.invalid(validation.Struct(modelsForm{
		TranslationModel: p.TranslationModel,
		TTSModel:         p.TTSModel,
		TTSVoice:         p.TTSVoice,
	}))
}

// Save upserts the three settings concurrently.
func (p *ModelsPanel) Save(ctx context.Context) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	values := map[string]string{
		setting.KeyTranslationModel: p.TranslationModel,
		setting.KeyTTSModel:         p.TTSModel,
		setting.KeyTTSVoice:         p.TTSVoice,
	}
	g, gctx := errgroup.WithContext(ctx)
	for key, value := range values {
		g.Go(func() error {
			_, err := p.api.UpsertSetting(gctx, key, value)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, p.fail(err, "Failed to save the settings.")
	}
	return p.succeed("Settings saved."), nil
}
