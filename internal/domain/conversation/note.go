package conversation

import "time"

// Note is a free-form annotation attached to a conversation.
type Note struct {
	ID             int64     `json:"id" yaml:"id"`
	ConversationID int64     `json:"conversation_id" yaml:"conversation_id"`
	Content        string    `json:"content" yaml:"content"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"updated_at"`
}
