package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"mockchat/api/handlers"
	"mockchat/services"
)

// PublicApi registers the HTTP surface. Handlers get their services built
// from the shared db handle here; nothing reads a package global.
func PublicApi(router *gin.Engine, db *gorm.DB) *gin.RouterGroup {
	messages := &handlers.MessageHandler{
		Messages: services.NewMessageService(db, services.RandomReplySource{}),
	}
	accounts := &handlers.AccountHandler{Accounts: services.NewAccountService(db)}
	auth := &handlers.AuthHandler{Auth: services.NewAuthService(db)}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	publicEndpoints := router.Group("/api/v1/")
	{
		publicEndpoints.GET("messages", messages.List)
		publicEndpoints.POST("messages", messages.Create)
		publicEndpoints.POST("messages/mark_viewed", messages.MarkViewed)
		publicEndpoints.POST("messages/delete_history", messages.DeleteHistory)

		publicEndpoints.POST("accounts", accounts.Create)
		publicEndpoints.GET("accounts/:identifier", accounts.Get)
		publicEndpoints.PUT("accounts/:identifier", accounts.Update)
		publicEndpoints.DELETE("accounts/:identifier", accounts.Delete)

		publicEndpoints.POST("auth/login", auth.Login)
	}
	return publicEndpoints
}
