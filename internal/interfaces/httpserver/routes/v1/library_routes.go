package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/interfaces/httpserver/handlers"
)

func registerLibraryRoutes(router gin.IRoutes, handler *handlers.LibraryHandler) {
	router.GET("/prompts/", handler.ListPrompts)
	router.POST("/prompts/", handler.CreatePrompt)
	router.GET("/prompts/:id", handler.GetPrompt)
	router.PUT("/prompts/:id", handler.UpdatePrompt)
	router.DELETE("/prompts/:id", handler.DeletePrompt)

	router.GET("/dictionary/", handler.ListDictionary)
	router.POST("/dictionary/", handler.CreateDictionaryEntry)
	router.PUT("/dictionary/:id", handler.UpdateDictionaryEntry)
	router.DELETE("/dictionary/:id", handler.DeleteDictionaryEntry)

	router.GET("/conversations/:id/notes/", handler.ListNotes)
	router.POST("/conversations/:id/notes/", handler.CreateNote)
	router.PUT("/notes/:id", handler.UpdateNote)
	router.DELETE("/notes/:id", handler.DeleteNote)
}
