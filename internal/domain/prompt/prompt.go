package prompt

import "time"

// Prompt is a reusable instruction from the user's prompt library.
type Prompt struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Params carries the fields of a create or update call.
// Nil fields are left untouched on update.
type Params struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
