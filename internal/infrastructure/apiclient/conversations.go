package apiclient

import (
	"context"
	"net/http"

	"github.com/janhq/jan-translator/internal/domain/conversation"
)

// ListConversations returns the active conversations.
func (c *Client) ListConversations(ctx context.Context) ([]conversation.Conversation, error) {
	var out []conversation.Conversation
	err := c.doJSON(ctx, "list_conversations", http.MethodGet, "/conversations/", nil, nil, &out)
	return out, err
}

// ListArchivedConversations returns the archived conversations.
func (c *Client) ListArchivedConversations(ctx context.Context) ([]conversation.Conversation, error) {
	var out []conversation.Conversation
	err := c.doJSON(ctx, "list_archived_conversations", http.MethodGet, "/conversations/archived", nil, nil, &out)
	return out, err
}

// CreateConversation starts a new conversation.
func (c *Client) CreateConversation(ctx context.Context, title string) (conversation.Conversation, error) {
	var out conversation.Conversation
	body := map[string]string{"title": title}
	err := c.doJSON(ctx, "create_conversation", http.MethodPost, "/conversations/", nil, body, &out)
	return out, err
}

// GetConversation fetches a conversation with its messages.
func (c *Client) GetConversation(ctx context.Context, id int64) (conversation.Conversation, error) {
	var out conversation.Conversation
	err := c.doJSON(ctx, "get_conversation", http.MethodGet, "/conversations/{id}", idParam("id", id), nil, &out)
	return out, err
}

// ExportConversation returns the plain-text transcript of a conversation.
func (c *Client) ExportConversation(ctx context.Context, id int64) (string, error) {
	req := c.request(ctx).
		SetPathParams(idParam("id", id)).
		SetHeader("Accept", "text/plain")
	resp, err := c.execute(ctx, "export_conversation", http.MethodGet, "/conversations/{id}/export", req)
	if err != nil {
		return "", err
	}
	return string(resp.Body()), nil
}

// Translate translates text and appends the pair to the conversation.
func (c *Client) Translate(ctx context.Context, id int64, request conversation.TranslateRequest) (conversation.Message, error) {
	var out conversation.Message
	err := c.doJSON(ctx, "translate", http.MethodPost, "/conversations/{id}/translate", idParam("id", id), request, &out)
	return out, err
}

// UpdateConversationSettings patches use_context and custom_prompt.
func (c *Client) UpdateConversationSettings(ctx context.Context, id int64, update conversation.SettingsUpdate) (conversation.Conversation, error) {
	var out conversation.Conversation
	err := c.doJSON(ctx, "update_conversation_settings", http.MethodPatch, "/conversations/{id}/settings", idParam("id", id), update, &out)
	return out, err
}

// RenameConversation changes the conversation title.
func (c *Client) RenameConversation(ctx context.Context, id int64, title string) (conversation.Conversation, error) {
	var out conversation.Conversation
	body := map[string]string{"title": title}
	err := c.doJSON(ctx, "rename_conversation", http.MethodPatch, "/conversations/{id}/rename", idParam("id", id), body, &out)
	return out, err
}

// ArchiveConversation moves the conversation in or out of the archive.
func (c *Client) ArchiveConversation(ctx context.Context, id int64, archived bool) (conversation.Conversation, error) {
	var out conversation.Conversation
	body := map[string]bool{"is_archived": archived}
	err := c.doJSON(ctx, "archive_conversation", http.MethodPatch, "/conversations/{id}/archive", idParam("id", id), body, &out)
	return out, err
}

// DeleteConversation removes the conversation and its messages.
func (c *Client) DeleteConversation(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete_conversation", http.MethodDelete, "/conversations/{id}", idParam("id", id), nil, nil)
}

// EditMessage replaces the original text of a message; the backend
// re-translates it.
func (c *Client) EditMessage(ctx context.Context, id int64, originalText string) (conversation.Message, error) {
	var out conversation.Message
	body := map[string]string{"original_text": originalText}
	err := c.doJSON(ctx, "edit_message", http.MethodPatch, "/messages/{id}", idParam("id", id), body, &out)
	return out, err
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "delete_message", http.MethodDelete, "/messages/{id}", idParam("id", id), nil, nil)
}
