package conversation

import "time"

// Conversation is a translation thread owned by the authenticated user.
type Conversation struct {
	ID           int64     `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	IsArchived   bool      `json:"is_archived" yaml:"is_archived"`
	UseContext   bool      `json:"use_context" yaml:"use_context"`
	CustomPrompt *string   `json:"custom_prompt,omitempty" yaml:"custom_prompt,omitempty"`
	Messages     []Message `json:"messages" yaml:"messages,omitempty"`
}

// SettingsUpdate patches the per-conversation translation settings.
// Nil fields are left untouched by the backend.
type SettingsUpdate struct {
	UseContext   *bool   `json:"use_context,omitempty"`
	CustomPrompt *string `json:"custom_prompt,omitempty"`
}

// ExportFilename returns the file name a transcript export is saved under.
func (c Conversation) ExportFilename() string {
	name := c.Title
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "conversation.txt"
	}
	return string(out) + ".txt"
}
