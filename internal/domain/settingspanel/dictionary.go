package settingspanel

import (
	"context"
	"strings"

	"github.com/janhq/jan-translator/internal/domain/dictionary"
)

// DictionaryPanel manages the fixed translations applied by the backend.
type DictionaryPanel struct {
	*base

	Entries []dictionary.Entry
}

func (p *DictionaryPanel) Kind() Kind { return KindDictionary }

func (p *DictionaryPanel) Load(ctx context.Context) error {
	entries, err := p.api.ListDictionaryEntries(ctx)
	if err != nil {
		return p.fail(err, "Failed to load the dictionary.")
	}
	p.Entries = entries
	return nil
}

func (p *DictionaryPanel) validate(source, target string) error {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" {
		return p.invalid(validationError("both the source and target text are required"))
	}
	return nil
}

// Add creates an entry and reloads the dictionary.
func (p *DictionaryPanel) Add(ctx context.Context, source, target string) (dictionary.Entry, error) {
	if err := p.validate(source, target); err != nil {
		return dictionary.Entry{}, err
	}
	entry, err := p.api.CreateDictionaryEntry(ctx, source, target)
	if err != nil {
		return dictionary.Entry{}, p.fail(err, "Failed to save the entry.")
	}
	p.setStatus("Entry saved.")
	return entry, p.Load(ctx)
}

// Update rewrites an entry and reloads the dictionary.
func (p *DictionaryPanel) Update(ctx context.Context, id int64, source, target string) (dictionary.Entry, error) {
	if err := p.validate(source, target); err != nil {
		return dictionary.Entry{}, err
	}
	entry, err := p.api.UpdateDictionaryEntry(ctx, id, dictionary.Params{SourceText: &source, TargetText: &target})
	if err != nil {
		return dictionary.Entry{}, p.fail(err, "Failed to save the entry.")
	}
	p.setStatus("Entry saved.")
	return entry, p.Load(ctx)
}

// Delete removes an entry and reloads the dictionary.
func (p *DictionaryPanel) Delete(ctx context.Context, id int64) error {
	if err := p.api.DeleteDictionaryEntry(ctx, id); err != nil {
		return p.fail(err, "Failed to delete the entry.")
	}
	p.setStatus("Entry deleted.")
	return p.Load(ctx)
}
