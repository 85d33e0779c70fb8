package apiclient

import (
	"context"
	"net/http"

	"github.com/janhq/jan-translator/internal/domain/conversation"
)

// ListNotes returns the notes attached to a conversation.
func (c *Client) ListNotes(ctx context.Context, conversationID int64) ([]conversation.Note, error) {
	var out []conversation.Note
	err := c.doJSON(ctx, "list_notes", http.MethodGet, "/conversations/{id}/notes/", idParam("id", conversationID), nil, &out)
	return out, err
}

// CreateNote attaches a note to a conversation.
func (c *Client) CreateNote(ctx context.Context, conversationID int64, content string) (conversation.Note, error) {
	var out conversation.Note
	body := map[string]string{"content": content}
	err := c.doJSON(ctx, "create_note", http.MethodPost, "/conversations/{id}/notes/", idParam("id", conversationID), body, &out)
	return out, err
}

// UpdateNote replaces the content of a note.
func (c *Client) UpdateNote(ctx context.Context, id int64, content string) (conversation.Note, error) {
	var out conversation.Note
	body := map[string]string{"content": content}
	err := c.doJSON(ctx, "update_note", http.MethodPut, "/notes/{id}", idParam("id", id), body, &out)
	return out, err
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete_note", http.MethodDelete, "/notes/{id}", idParam("id", id), nil, nil)
}
