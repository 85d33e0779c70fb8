package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/jan-translator/internal/interfaces/httpserver/handlers"
)

func registerAuthRoutes(router gin.IRoutes, handler *handlers.AccountHandler) {
	router.POST("/token", handler.Login)
	router.POST("/register", handler.Register)
}

func registerAccountRoutes(router gin.IRoutes, handler *handlers.AccountHandler) {
	router.GET("/users/me/", handler.Me)
	router.PUT("/users/me/password", handler.ChangePassword)

	router.POST("/settings", handler.UpsertSetting)
	router.GET("/settings/:key", handler.GetSetting)

	router.GET("/profile", handler.GetProfile)
	router.POST("/profile", handler.UpdateProfile)
}
