package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	auth     gin.HandlerFunc
}

// NewRoutes builds the v1 route registrar. authMiddleware guards every
// route except login and registration.
func NewRoutes(handlerProvider *handlers.Provider, authMiddleware gin.HandlerFunc) *Routes {
	return &Routes{
		handlers: handlerProvider,
		auth:     authMiddleware,
	}
}

// Register attaches all v1 routes under the /api/v1 prefix.
func (r *Routes) Register(engine *gin.Engine) {
	public := engine.Group("/api/v1")
	registerAuthRoutes(public, r.handlers.Account)

	protected := engine.Group("/api/v1", r.auth)
	registerAccountRoutes(protected, r.handlers.Account)
	registerConversationRoutes(protected, r.handlers.Conversation)
	registerLibraryRoutes(protected, r.handlers.Library)
	registerAudioRoutes(protected, r.handlers.Audio)
}
