package settingspanel

import (
	"context"

	"github.com/janhq/jan-translator/internal/domain/setting"
	"github.com/janhq/jan-translator/internal/domain/validation"
)

// APIKeyPanel stores the OpenAI key used by the backend. The stored key is
// never read back.
type APIKeyPanel struct {
	*base

	Key string
}

type apiKeyForm struct {
	Key string `validate:"nonblank" label:"API key"`
}

func (p *APIKeyPanel) Kind() Kind { return KindAPIKey }

func (p *APIKeyPanel) Load(context.Context) error { return nil }

func (p *APIKeyPanel) Validate() error {
	return p.invalid(validation.Struct(apiKeyForm{Key: p.Key}))
}

// Save stores the key and clears it from the panel.
func (p *APIKeyPanel) Save(ctx context.Context) (Outcome, error) {
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	if _, err := p.api.UpsertSetting(ctx, setting.KeyOpenAIAPIKey, p.Key); err != nil {
		return Outcome{}, p.fail(err, "Failed to save the API key.")
	}
	p.Key = ""
	return p.succeed("API key saved."), nil
}
