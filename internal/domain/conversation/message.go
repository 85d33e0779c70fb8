package conversation

import "time"

// MessageStatus is the client side outcome of the latest send or edit.
type MessageStatus string

const (
	MessageStatusPending  MessageStatus = "pending"
	MessageStatusComplete MessageStatus = "complete"
	MessageStatusError    MessageStatus = "error"
)

// Message is one original/translated pair inside a conversation.
// Records returned by the backend carry no status and are complete.
type Message struct {
	ID             int64         `json:"id" yaml:"id"`
	ConversationID int64         `json:"conversation_id" yaml:"conversation_id"`
	OriginalText   string        `json:"original_text" yaml:"original_text"`
	TranslatedText string        `json:"translated_text" yaml:"translated_text"`
	CreatedAt      time.Time     `json:"created_at" yaml:"created_at"`
	Status         MessageStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// TranslateRequest asks the backend to translate and append a message.
type TranslateRequest struct {
	TextToTranslate string `json:"text_to_translate"`
	TargetLanguage  string `json:"target_language"`
}

// Settled returns a copy of m marked complete, as the backend never sets status.
func (m Message) Settled() Message {
	m.Status = MessageStatusComplete
	return m
}
