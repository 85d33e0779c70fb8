package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/setting"
)

// historySize is how many earlier messages are sent along when a
// conversation translates with context.
const historySize = 4

// ListConversations returns the active or archived conversations.
func (s *Service) ListConversations(ctx context.Context, owner int64, archived bool) []conversation.Conversation {
	out := []conversation.Conversation{}
	for _, c := range s.repo.Conversations(ctx, owner) {
		if c.IsArchived == archived {
			c.Messages = nil
			out = append(out, c)
		}
	}
	return out
}

// CreateConversation starts an empty conversation that translates with context.
func (s *Service) CreateConversation(ctx context.Context, owner int64, title string) (conversation.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return conversation.Conversation{}, badRequest("Title is required")
	}
	c := s.repo.SaveConversation(ctx, owner, conversation.Conversation{
		Title:      title,
		CreatedAt:  s.now(),
		UseContext: true,
	})
	c.Messages = []conversation.Message{}
	return c, nil
}

// GetConversation returns the conversation with its messages.
func (s *Service) GetConversation(ctx context.Context, owner, id int64) (conversation.Conversation, error) {
	c, ok := s.repo.Conversation(ctx, owner, id)
	if !ok {
		return conversation.Conversation{}, notFound("Conversation")
	}
	c.Messages = s.repo.Messages(ctx, owner, id)
	if c.Messages == nil {
		c.Messages = []conversation.Message{}
	}
	return c, nil
}

// RenameConversation changes the title.
func (s *Service) RenameConversation(ctx context.Context, owner, id int64, title string) (conversation.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return conversation.Conversation{}, badRequest("Title is required")
	}
	return s.patchConversation(ctx, owner, id, func(c *conversation.Conversation) { c.Title = title })
}

// ArchiveConversation sets the archived flag.
func (s *Service) ArchiveConversation(ctx context.Context, owner, id int64, archived bool) (conversation.Conversation, error) {
	return s.patchConversation(ctx, owner, id, func(c *conversation.Conversation) { c.IsArchived = archived })
}

// UpdateConversationSettings patches the per-conversation translation settings.
func (s *Service) UpdateConversationSettings(ctx context.Context, owner, id int64, update conversation.SettingsUpdate) (conversation.Conversation, error) {
	return s.patchConversation(ctx, owner, id, func(c *conversation.Conversation) {
		if update.UseContext != nil {
			c.UseContext = *update.UseContext
		}
		if update.CustomPrompt != nil {
			if strings.TrimSpace(*update.CustomPrompt) == "" {
				c.CustomPrompt = nil
			} else {
				prompt := *update.CustomPrompt
				c.CustomPrompt = &prompt
			}
		}
	})
}

func (s *Service) patchConversation(ctx context.Context, owner, id int64, patch func(*conversation.Conversation)) (conversation.Conversation, error) {
	c, ok := s.repo.Conversation(ctx, owner, id)
	if !ok {
		return conversation.Conversation{}, notFound("Conversation")
	}
	patch(&c)
	c = s.repo.SaveConversation(ctx, owner, c)
	c.Messages = nil
	return c, nil
}

// DeleteConversation removes the conversation with its messages and notes.
func (s *Service) DeleteConversation(ctx context.Context, owner, id int64) error {
	if !s.repo.DeleteConversation(ctx, owner, id) {
		return notFound("Conversation")
	}
	return nil
}

// ExportConversation renders the transcript as plain text.
func (s *Service) ExportConversation(ctx context.Context, owner, id int64) (conversation.Conversation, string, error) {
	c, err := s.GetConversation(ctx, owner, id)
	if err != nil {
		return conversation.Conversation{}, "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Conversation Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Exported on: %s\n", s.now().Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	for _, m := range c.Messages {
		fmt.Fprintf(&b, "[User]: %s\n", m.OriginalText)
		fmt.Fprintf(&b, "[Assistant]: %s\n", m.TranslatedText)
		b.WriteString("---\n")
	}
	return c, b.String(), nil
}

// Translate translates text into the target language and appends the pair
// to the conversation.
func (s *Service) Translate(ctx context.Context, owner, id int64, req conversation.TranslateRequest) (conversation.Message, error) {
	if err := s.requireAPIKey(ctx, owner); err != nil {
		return conversation.Message{}, err
	}
	c, ok := s.repo.Conversation(ctx, owner, id)
	if !ok {
		return conversation.Message{}, notFound("Conversation")
	}
	if strings.TrimSpace(req.TextToTranslate) == "" {
		return conversation.Message{}, badRequest("Text to translate is required")
	}

	in := s.translationInput(ctx, owner, c, req.TextToTranslate, req.TargetLanguage)
	if c.UseContext {
		history := s.repo.Messages(ctx, owner, id)
		if len(history) > historySize {
			history = history[len(history)-historySize:]
		}
		in.History = history
	}

	translated, err := s.engine.Translate(ctx, in)
	if err != nil {
		return conversation.Message{}, badRequest(fmt.Sprintf("Error during translation: %v", err))
	}
	msg := s.repo.SaveMessage(ctx, owner, conversation.Message{
		ConversationID: id,
		OriginalText:   req.TextToTranslate,
		TranslatedText: translated,
		CreatedAt:      s.now(),
	})
	s.logger(ctx).Debug().Int64("conversation_id", id).Int64("message_id", msg.ID).Str("model", in.Model).
		Str("text", s.redact.Text(req.TextToTranslate)).
		Msg("message translated")
	return msg, nil
}

func (s *Service) translationInput(ctx context.Context, owner int64, c conversation.Conversation, text, target string) TranslationInput {
	if strings.TrimSpace(target) == "" {
		target = "English"
	}
	return TranslationInput{
		Text:           text,
		TargetLanguage: target,
		Model:          s.settingOr(ctx, owner, setting.KeyTranslationModel, setting.DefaultTranslationModel),
		CustomPrompt:   c.CustomPrompt,
		Dictionary:     s.repo.DictionaryEntries(ctx, owner),
	}
}

// EditMessage replaces the original text and translates it again. Edits
// always translate into English.
func (s *Service) EditMessage(ctx context.Context, owner, id int64, originalText string) (conversation.Message, error) {
	if err := s.requireAPIKey(ctx, owner); err != nil {
		return conversation.Message{}, err
	}
	msg, ok := s.repo.Message(ctx, owner, id)
	if !ok {
		return conversation.Message{}, notFound("Message")
	}
	if strings.TrimSpace(originalText) == "" {
		return conversation.Message{}, badRequest("Original text is required")
	}
	c, ok := s.repo.Conversation(ctx, owner, msg.ConversationID)
	if !ok {
		return conversation.Message{}, notFound("Conversation")
	}
	translated, err := s.engine.Translate(ctx, s.translationInput(ctx, owner, c, originalText, "English"))
	if err != nil {
		return conversation.Message{}, badRequest(fmt.Sprintf("Error during re-translation: %v", err))
	}
	msg.OriginalText = originalText
	msg.TranslatedText = translated
	return s.repo.SaveMessage(ctx, owner, msg), nil
}

// DeleteMessage removes one message.
func (s *Service) DeleteMessage(ctx context.Context, owner, id int64) error {
	if !s.repo.DeleteMessage(ctx, owner, id) {
		return notFound("Message")
	}
	return nil
}
