package settingspanel

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/janhq/jan-translator/internal/domain/prompt"
	"github.com/janhq/jan-translator/internal/domain/setting"
	"github.com/janhq/jan-translator/internal/domain/validation"
)

// PromptsPanel manages the prompt library and the default prompt.
type PromptsPanel struct {
	*base

	Prompts []prompt.Prompt
	// DefaultID is the prompt stored under default_prompt_id, nil when unset.
	DefaultID *int64
}

type promptForm struct {
	Title   string `validate:"nonblank" label:"title"`
	Content string `validate:"nonblank" label:"content"`
}

func (p *PromptsPanel) Kind() Kind { return KindPrompts }

// Load reads the library and the default prompt setting concurrently.
func (p *PromptsPanel) Load(ctx context.Context) error {
	var (
		prompts []prompt.Prompt
		def     setting.Setting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		prompts, err = p.api.ListPrompts(gctx)
		return err
	})
	g.Go(func() (err error) {
		def, err = p.api.GetSetting(gctx, setting.KeyDefaultPromptID)
		return err
	})
	if err := g.Wait(); err != nil {
		return p.fail(err, "Failed to load the prompts.")
	}

	p.Prompts = prompts
	p.DefaultID = nil
	if raw := def.ValueOr(""); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.DefaultID = &id
		} else {
			p.log.Warn().Str("value", raw).Msg("ignoring malformed default prompt id")
		}
	}
	return nil
}

// IsDefault reports whether id is the default prompt.
func (p *PromptsPanel) IsDefault(id int64) bool {
	return p.DefaultID != nil && *p.DefaultID == id
}

// Default returns the default prompt when it is in the library.
func (p *PromptsPanel) Default() (prompt.Prompt, bool) {
	for _, pr := range p.Prompts {
		if p.IsDefault(pr.ID) {
			return pr, true
		}
	}
	return prompt.Prompt{}, false
}

// Create adds a prompt and reloads the library.
func (p *PromptsPanel) Create(ctx context.Context, title, content string) (prompt.Prompt, error) {
	if err := p.invalid(validation.Struct(promptForm{Title: title, Content: content})); err != nil {
		return prompt.Prompt{}, err
	}
	created, err := p.api.CreatePrompt(ctx, title, content)
	if err != nil {
		return prompt.Prompt{}, p.fail(err, "Failed to save the prompt.")
	}
	p.setStatus("Prompt saved.")
	return created, p.Load(ctx)
}

// Update rewrites a prompt and reloads the library.
func (p *PromptsPanel) Update(ctx context.Context, id int64, title, content string) (prompt.Prompt, error) {
	if err := p.invalid(validation.Struct(promptForm{Title: title, Content: content})); err != nil {
		return prompt.Prompt{}, err
	}
	updated, err := p.api.UpdatePrompt(ctx, id, prompt.Params{Title: &title, Content: &content})
	if err != nil {
		return prompt.Prompt{}, p.fail(err, "Failed to save the prompt.")
	}
	p.setStatus("Prompt saved.")
	return updated, p.Load(ctx)
}

// Delete removes a prompt. Deleting the default prompt clears the setting.
func (p *PromptsPanel) Delete(ctx context.Context, id int64) error {
	if err := p.api.DeletePrompt(ctx, id); err != nil {
		return p.fail(err, "Failed to delete the prompt.")
	}
	if p.IsDefault(id) {
		if _, err := p.api.UpsertSetting(ctx, setting.KeyDefaultPromptID, ""); err != nil {
			return p.fail(err, "Failed to delete the prompt.")
		}
		p.DefaultID = nil
	}
	p.setStatus("Prompt deleted.")
	return p.Load(ctx)
}

// SetDefault stores id as the default prompt.
func (p *PromptsPanel) SetDefault(ctx context.Context, id int64) error {
	if _, err := p.api.UpsertSetting(ctx, setting.KeyDefaultPromptID, strconv.FormatInt(id, 10)); err != nil {
		return p.fail(err, "Failed to set the default prompt.")
	}
	p.DefaultID = &id
	p.setStatus("Default prompt updated.")
	return nil
}
