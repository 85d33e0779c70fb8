package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/domain/dictionary"
	"github.com/janhq/jan-translator/internal/domain/prompt"
)

// LibraryHandler serves prompts, the dictionary and notes.
type LibraryHandler struct {
	service *backend.Service
}

// NewLibraryHandler wires dependencies for library routes.
func NewLibraryHandler(service *backend.Service) *LibraryHandler {
	return &LibraryHandler{service: service}
}

type promptRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type dictionaryRequest struct {
	SourceText string `json:"source_text" binding:"required"`
	TargetText string `json:"target_text" binding:"required"`
}

type noteRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *LibraryHandler) ListPrompts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.ListPrompts(c.Request.Context(), user.ID))
}

func (h *LibraryHandler) GetPrompt(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.service.GetPrompt(c.Request.Context(), user, id)
	respond(c, http.StatusOK, out, err)
}

func (h *LibraryHandler) CreatePrompt(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req promptRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreatePrompt(c.Request.Context(), user.ID, prompt.Params{
		Title:   &req.Title,
		Content: &req.Content,
	})
	respond(c, http.StatusCreated, out, err)
}

func (h *LibraryHandler) UpdatePrompt(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req prompt.Params
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.UpdatePrompt(c.Request.Context(), user, id, req)
	respond(c, http.StatusOK, out, err)
}

func (h *LibraryHandler) DeletePrompt(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	noContent(c, h.service.DeletePrompt(c.Request.Context(), user, id))
}

func (h *LibraryHandler) ListDictionary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.ListDictionary(c.Request.Context(), user.ID))
}

func (h *LibraryHandler) CreateDictionaryEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dictionaryRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateDictionaryEntry(c.Request.Context(), user.ID, dictionary.Params{
		SourceText: &req.SourceText,
		TargetText: &req.TargetText,
	})
	respond(c, http.StatusCreated, out, err)
}

func (h *LibraryHandler) UpdateDictionaryEntry(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req dictionary.Params
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.UpdateDictionaryEntry(c.Request.Context(), user, id, req)
	respond(c, http.StatusOK, out, err)
}

func (h *LibraryHandler) DeleteDictionaryEntry(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	noContent(c, h.service.DeleteDictionaryEntry(c.Request.Context(), user, id))
}

func (h *LibraryHandler) ListNotes(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.service.ListNotes(c.Request.Context(), user, id)
	respond(c, http.StatusOK, out, err)
}

func (h *LibraryHandler) CreateNote(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.CreateNote(c.Request.Context(), user, id, req.Content)
	respond(c, http.StatusCreated, out, err)
}

func (h *LibraryHandler) UpdateNote(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.service.UpdateNote(c.Request.Context(), user, id, req.Content)
	respond(c, http.StatusOK, out, err)
}

func (h *LibraryHandler) DeleteNote(c *gin.Context) {
	user, id, ok := h.target(c)
	if !ok {
		return
	}
	noContent(c, h.service.DeleteNote(c.Request.Context(), user, id))
}

func (h *LibraryHandler) target(c *gin.Context) (int64, int64, bool) {
	user, ok := currentUser(c)
	if !ok {
		return 0, 0, false
	}
	id, ok := pathID(c, "id")
	return user.ID, id, ok
}

// respond writes a (value, error) service result.
func respond(c *gin.Context, status int, out any, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, out)
}

func noContent(c *gin.Context, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
