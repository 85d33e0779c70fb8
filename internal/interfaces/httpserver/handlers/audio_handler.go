package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/domain/backend"
)

// maxUploadBytes caps transcription uploads at the hosted model's limit.
const maxUploadBytes = 25 << 20

// AudioHandler serves transcription and speech synthesis.
type AudioHandler struct {
	service *backend.Service
	log     zerolog.Logger
}

// NewAudioHandler wires dependencies for audio routes.
func NewAudioHandler(service *backend.Service, log zerolog.Logger) *AudioHandler {
	return &AudioHandler{service: service, log: log}
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

// Transcribe reads the audio_file multipart field and returns its text.
func (h *AudioHandler) Transcribe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	header, err := c.FormFile("audio_file")
	if err != nil {
		respondInvalid(c, missing("body", "audio_file"))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(audio) > maxUploadBytes {
		respondError(c, &backend.Error{Status: http.StatusRequestEntityTooLarge, Detail: "Audio file is too large"})
		return
	}
	h.log.Debug().
		Str("filename", header.Filename).
		Str("content_type", header.Header.Get("Content-Type")).
		Int("bytes", len(audio)).
		Msg("transcription upload")

	text, err := h.service.Transcribe(c.Request.Context(), user.ID, header.Filename, audio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcribed_text": text})
}

// TextToSpeech returns the synthesized clip as audio/mpeg.
func (h *AudioHandler) TextToSpeech(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req speechRequest
	if !bindJSON(c, &req) {
		return
	}
	audio, err := h.service.TextToSpeech(c.Request.Context(), user.ID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
