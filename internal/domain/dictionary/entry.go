package dictionary

import "time"

// Entry forces a fixed translation of SourceText.
type Entry struct {
	ID         int64     `json:"id" yaml:"id"`
	SourceText string    `json:"source_text" yaml:"source_text"`
	TargetText string    `json:"target_text" yaml:"target_text"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Params carries the fields of a create or update call.
type Params struct {
	SourceText *string `json:"source_text,omitempty"`
	TargetText *string `json:"target_text,omitempty"`
}
