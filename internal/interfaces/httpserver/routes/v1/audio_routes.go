package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/interfaces/httpserver/handlers"
)

func registerAudioRoutes(router gin.IRoutes, handler *handlers.AudioHandler) {
	router.POST("/transcribe", handler.Transcribe)
	router.POST("/text-to-speech", handler.TextToSpeech)
}
