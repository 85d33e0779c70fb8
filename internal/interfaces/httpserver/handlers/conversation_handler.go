package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/domain/conversation"
)

// ConversationHandler serves conversations and their messages.
type ConversationHandler struct {
	service *backend.Service
}

// NewConversationHandler wires dependencies for conversation routes.
func NewConversationHandler(service *backend.Service) *ConversationHandler {
	return &ConversationHandler{service: service}
}

type titleRequest struct {
	Title string `json:"title" binding:"required"`
}

type translateRequest struct {
	TextToTranslate string `json:"text_to_translate" binding:"required"`
	TargetLanguage  string `json:"target_language"`
}

type editMessageRequest struct {
	OriginalText string `json:"original_text" binding:"required"`
}

// List returns the active conversations.
func (h *ConversationHandler) List(c *gin.Context) {
	h.list(c, false)
}

// ListArchived returns the archived conversations.
func (h *ConversationHandler) ListArchived(c *gin.Context) {
	h.list(c, true)
}

func (h *ConversationHandler) list(c *gin.Context, archived bool) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.ListConversations(c.Request.Context(), user.ID, archived))
}

// Create starts a conversation.
func (h *ConversationHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req titleRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateConversation(c.Request.Context(), user.ID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Get returns a conversation with its messages.
func (h *ConversationHandler) Get(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.service.GetConversation(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Export downloads the transcript as a text attachment.
func (h *ConversationHandler) Export(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	conv, text, err := h.service.ExportConversation(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", conv.ExportFilename()))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// Translate appends a translated message.
func (h *ConversationHandler) Translate(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req translateRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.service.Translate(c.Request.Context(), user, id, conversation.TranslateRequest{
		TextToTranslate: req.TextToTranslate,
		TargetLanguage:  req.TargetLanguage,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// UpdateSettings patches use_context and custom_prompt.
func (h *ConversationHandler) UpdateSettings(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req conversation.SettingsUpdate
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.UpdateConversationSettings(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Rename changes the title.
func (h *ConversationHandler) Rename(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req titleRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.RenameConversation(c.Request.Context(), user, id, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Archive sets the archived flag. The body must carry a boolean is_archived.
func (h *ConversationHandler) Archive(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req struct {
		IsArchived *bool `json:"is_archived"`
	}
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil || req.IsArchived == nil {
		respondError(c, &backend.Error{
			Status: http.StatusBadRequest,
			Detail: "Payload must include 'is_archived' key with a boolean value.",
		})
		return
	}
	out, err := h.service.ArchiveConversation(c.Request.Context(), user, id, *req.IsArchived)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Delete removes a conversation.
func (h *ConversationHandler) Delete(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.service.DeleteConversation(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EditMessage replaces a message's original text and re-translates it.
func (h *ConversationHandler) EditMessage(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req editMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.service.EditMessage(c.Request.Context(), user, id, req.OriginalText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage removes a message.
func (h *ConversationHandler) DeleteMessage(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMessage(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// target resolves the user id and the :id path parameter.
func (h *ConversationHandler) target(c *gin.Context) (int64, int64, bool) {
	user, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	id, ok := pathID(c, "id")
	return user.ID, id, ok
}
