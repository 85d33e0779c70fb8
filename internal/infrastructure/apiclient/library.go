package apiclient

import (
	"context"
	"net/http"

	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/prompt"
)

// ListPrompts returns the prompt library.
func (c *Client) ListPrompts(ctx context.Context) ([]prompt.Prompt, error) {
	var out []prompt.Prompt
	err := c.doJSON(ctx, "list_prompts", http.MethodGet, "/prompts/", nil, nil, &out)
	return out, err
}

// GetPrompt fetches a single prompt.
func (c *Client) GetPrompt(ctx context.Context, id int64) (prompt.Prompt, error) {
	var out prompt.Prompt
	err := c.doJSON(ctx, "get_prompt", http.MethodGet, "/prompts/{id}", idParam("id", id), nil, &out)
	return out, err
}

// CreatePrompt adds a prompt to the library.
func (c *Client) CreatePrompt(ctx context.Context, title, content string) (prompt.Prompt, error) {
	var out prompt.Prompt
	body := prompt.Params{Title: &title, Content: &content}
	err := c.doJSON(ctx, "create_prompt", http.MethodPost, "/prompts/", nil, body, &out)
	return out, err
}

// UpdatePrompt patches the fields set in params.
func (c *Client) UpdatePrompt(ctx context.Context, id int64, params prompt.Params) (prompt.Prompt, error) {
	var out prompt.Prompt
	err := c.doJSON(ctx, "update_prompt", http.MethodPut, "/prompts/{id}", idParam("id", id), params, &out)
	return out, err
}

// DeletePrompt removes a prompt.
func (c *Client) DeletePrompt(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete_prompt", http.MethodDelete, "/prompts/{id}", idParam("id", id), nil, nil)
}

// ListDictionaryEntries returns the custom dictionary.
func (c *Client) ListDictionaryEntries(ctx context.Context) ([]dictionary.Entry, error) {
	var out []dictionary.Entry
	err := c.doJSON(ctx, "list_dictionary", http.MethodGet, "/dictionary/", nil, nil, &out)
	return out, err
}

// CreateDictionaryEntry adds a forced translation. The backend rejects
// duplicate source texts with a conflict.
func (c *Client) CreateDictionaryEntry(ctx context.Context, sourceText, targetText string) (dictionary.Entry, error) {
	var out dictionary.Entry
	body := dictionary.Params{SourceText: &sourceText, TargetText: &targetText}
	err := c.doJSON(ctx, "create_dictionary_entry", http.MethodPost, "/dictionary/", nil, body, &out)
	return out, err
}

// UpdateDictionaryEntry patches the fields set in params.
func (c *Client) UpdateDictionaryEntry(ctx context.Context, id int64, params dictionary.Params) (dictionary.Entry, error) {
	var out dictionary.Entry
	err := c.doJSON(ctx, "update_dictionary_entry", http.MethodPut, "/dictionary/{id}", idParam("id", id), params, &out)
	return out, err
}

// DeleteDictionaryEntry removes an entry.
func (c *Client) DeleteDictionaryEntry(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete_dictionary_entry", http.MethodDelete, "/dictionary/{id}", idParam("id", id), nil, nil)
}
