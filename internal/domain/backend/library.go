package backend

import (
	"context"
	"strings"

	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/prompt"
)

// ListPrompts returns the prompt library, newest first.
func (s *Service) ListPrompts(ctx context.Context, owner int64) []prompt.Prompt {
	out := s.repo.Prompts(ctx, owner)
	if out == nil {
		out = []prompt.Prompt{}
	}
	return out
}

// GetPrompt returns one prompt.
func (s *Service) GetPrompt(ctx context.Context, owner, id int64) (prompt.Prompt, error) {
	p, ok := s.repo.Prompt(ctx, owner, id)
	if !ok {
		return prompt.Prompt{}, notFound("Prompt")
	}
	return p, nil
}

// CreatePrompt adds a prompt. Title and content are required.
func (s *Service) CreatePrompt(ctx context.Context, owner int64, params prompt.Params) (prompt.Prompt, error) {
	if blank(params.Title) || blank(params.Content) {
		return prompt.Prompt{}, badRequest("Title and content are required")
	}
	return s.repo.SavePrompt(ctx, owner, prompt.Prompt{
		Title:     strings.TrimSpace(*params.Title),
		Content:   *params.Content,
		CreatedAt: s.now(),
	}), nil
}

// UpdatePrompt patches the provided fields.
func (s *Service) UpdatePrompt(ctx context.Context, owner, id int64, params prompt.Params) (prompt.Prompt, error) {
	p, ok := s.repo.Prompt(ctx, owner, id)
	if !ok {
		return prompt.Prompt{}, notFound("Prompt")
	}
	if params.Title != nil {
		if blank(params.Title) {
			return prompt.Prompt{}, badRequest("Title is required")
		}
		p.Title = strings.TrimSpace(*params.Title)
	}
	if params.Content != nil {
		if blank(params.Content) {
			return prompt.Prompt{}, badRequest("Content is required")
		}
		p.Content = *params.Content
	}
	return s.repo.SavePrompt(ctx, owner, p), nil
}

// DeletePrompt removes a prompt.
func (s *Service) DeletePrompt(ctx context.Context, owner, id int64) error {
	if !s.repo.DeletePrompt(ctx, owner, id) {
		return notFound("Prompt")
	}
	return nil
}

// ListDictionary returns the dictionary sorted by source text.
func (s *Service) ListDictionary(ctx context.Context, owner int64) []dictionary.Entry {
	out := s.repo.DictionaryEntries(ctx, owner)
	if out == nil {
		out = []dictionary.Entry{}
	}
	return out
}

// CreateDictionaryEntry adds an entry. Source texts are unique per user.
func (s *Service) CreateDictionaryEntry(ctx context.Context, owner int64, params dictionary.Params) (dictionary.Entry, error) {
	if blank(params.SourceText) || blank(params.TargetText) {
		return dictionary.Entry{}, badRequest("Source and target text are required")
	}
	source := strings.TrimSpace(*params.SourceText)
	if s.sourceTaken(ctx, owner, source, 0) {
		return dictionary.Entry{}, conflict("Source text already exists in the dictionary.")
	}
	return s.repo.SaveDictionaryEntry(ctx, owner, dictionary.Entry{
		SourceText: source,
		TargetText: strings.TrimSpace(*params.TargetText),
		CreatedAt:  s.now(),
	}), nil
}

// UpdateDictionaryEntry patches the provided fields.
func (s *Service) UpdateDictionaryEntry(ctx context.Context, owner, id int64, params dictionary.Params) (dictionary.Entry, error) {
	e, ok := s.repo.DictionaryEntry(ctx, owner, id)
	if !ok {
		return dictionary.Entry{}, notFound("Dictionary entry")
	}
	if params.SourceText != nil {
		if blank(params.SourceText) {
			return dictionary.Entry{}, badRequest("Source text is required")
		}
		source := strings.TrimSpace(*params.SourceText)
		if s.sourceTaken(ctx, owner, source, id) {
			return dictionary.Entry{}, conflict("Source text already exists in the dictionary.")
		}
		e.SourceText = source
	}
	if params.TargetText != nil {
		if blank(params.TargetText) {
			return dictionary.Entry{}, badRequest("Target text is required")
		}
		e.TargetText = strings.TrimSpace(*params.TargetText)
	}
	return s.repo.SaveDictionaryEntry(ctx, owner, e), nil
}

// DeleteDictionaryEntry removes an entry.
func (s *Service) DeleteDictionaryEntry(ctx context.Context, owner, id int64) error {
	if !s.repo.DeleteDictionaryEntry(ctx, owner, id) {
		return notFound("Dictionary entry")
	}
	return nil
}

func (s *Service) sourceTaken(ctx context.Context, owner int64, source string, except int64) bool {
	for _, e := range s.repo.DictionaryEntries(ctx, owner) {
		if e.ID != except && e.SourceText == source {
			return true
		}
	}
	return false
}

// ListNotes returns the notes of a conversation, oldest first.
func (s *Service) ListNotes(ctx context.Context, owner, conversationID int64) ([]conversation.Note, error) {
	if _, ok := s.repo.Conversation(ctx, owner, conversationID); !ok {
		return nil, notFound("Conversation")
	}
	out := s.repo.Notes(ctx, owner, conversationID)
	if out == nil {
		out = []conversation.Note{}
	}
	return out, nil
}

// CreateNote attaches a note to a conversation.
func (s *Service) CreateNote(ctx context.Context, owner, conversationID int64, content string) (conversation.Note, error) {
	if _, ok := s.repo.Conversation(ctx, owner, conversationID); !ok {
		return conversation.Note{}, notFound("Conversation")
	}
	if strings.TrimSpace(content) == "" {
		return conversation.Note{}, badRequest("Content is required")
	}
	now := s.now()
	return s.repo.SaveNote(ctx, owner, conversation.Note{
		ConversationID: conversationID,
		Content:        content,
		CreatedAt:      now,
		UpdatedAt:      now,
	}), nil
}

// UpdateNote replaces the note content.
func (s *Service) UpdateNote(ctx context.Context, owner, id int64, content string) (conversation.Note, error) {
	n, ok := s.repo.Note(ctx, owner, id)
	if !ok {
		return conversation.Note{}, notFound("Note")
	}
	if strings.TrimSpace(content) == "" {
		return conversation.Note{}, badRequest("Content is required")
	}
	n.Content = content
	n.UpdatedAt = s.now()
	return s.repo.SaveNote(ctx, owner, n), nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, owner, id int64) error {
	if !s.repo.DeleteNote(ctx, owner, id) {
		return notFound("Note")
	}
	return nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
