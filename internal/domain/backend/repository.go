package backend

import (
	"context"

	"github.com/janhq/jan-translator/internal/domain/conversation"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/profile"
	"github.com/janhq/jan-translator/internal/domain/prompt"
)

// Repository stores the backend records. Every record but the account is
// owned by a user id. Save methods assign an id when the record has none.
type Repository interface {
	CreateAccount(ctx context.Context, account Account) (Account, error)
	AccountByUsername(ctx context.Context, username string) (Account, bool)
	AccountByEmail(ctx context.Context, email string) (Account, bool)
	UpdateAccount(ctx context.Context, account Account) error

	Setting(ctx context.Context, owner int64, key string) (*string, bool)
	PutSetting(ctx context.Context, owner int64, key string, value *string)

	Profile(ctx context.Context, owner int64) (profile.Profile, bool)
	PutProfile(ctx context.Context, owner int64, p profile.Profile) profile.Profile

	// Conversations returns conversations without messages, most recently
	// updated first.
	Conversations(ctx context.Context, owner int64) []conversation.Conversation
	Conversation(ctx context.Context, owner, id int64) (conversation.Conversation, bool)
	SaveConversation(ctx context.Context, owner int64, c conversation.Conversation) conversation.Conversation
	// DeleteConversation removes the conversation with its messages and notes.
	DeleteConversation(ctx context.Context, owner, id int64) bool

	// Messages returns the messages of a conversation, oldest first.
	Messages(ctx context.Context, owner, conversationID int64) []conversation.Message
	Message(ctx context.Context, owner, id int64) (conversation.Message, bool)
	SaveMessage(ctx context.Context, owner int64, m conversation.Message) conversation.Message
	DeleteMessage(ctx context.Context, owner, id int64) bool

	// Prompts returns the prompt library, newest first.
	Prompts(ctx context.Context, owner int64) []prompt.Prompt
	Prompt(ctx context.Context, owner, id int64) (prompt.Prompt, bool)
	SavePrompt(ctx context.Context, owner int64, p prompt.Prompt) prompt.Prompt
	DeletePrompt(ctx context.Context, owner, id int64) bool

	// DictionaryEntries returns the dictionary sorted by source text.
	DictionaryEntries(ctx context.Context, owner int64) []dictionary.Entry
	DictionaryEntry(ctx context.Context, owner, id int64) (dictionary.Entry, bool)
	SaveDictionaryEntry(ctx context.Context, owner int64, e dictionary.Entry) dictionary.Entry
	DeleteDictionaryEntry(ctx context.Context, owner, id int64) bool

	// Notes returns the notes of a conversation, oldest first.
	Notes(ctx context.Context, owner, conversationID int64) []conversation.Note
	Note(ctx context.Context, owner, id int64) (conversation.Note, bool)
	SaveNote(ctx context.Context, owner int64, n conversation.Note) conversation.Note
	DeleteNote(ctx context.Context, owner, id int64) bool
}
