package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router gin.IRoutes, handler *handlers.ConversationHandler) {
	router.GET("/conversations/", handler.List)
	router.POST("/conversations/", handler.Create)
	router.GET("/conversations/archived", handler.ListArchived)
	router.GET("/conversations/:id", handler.Get)
	router.DELETE("/conversations/:id", handler.Delete)
	router.GET("/conversations/:id/export", handler.Export)
	router.POST("/conversations/:id/translate", handler.Translate)
	router.PATCH("/conversations/:id/settings", handler.UpdateSettings)
	router.PATCH("/conversations/:id/rename", handler.Rename)
	router.PATCH("/conversations/:id/archive", handler.Archive)

	router.PATCH("/messages/:id", handler.EditMessage)
	router.DELETE("/messages/:id", handler.DeleteMessage)
}
