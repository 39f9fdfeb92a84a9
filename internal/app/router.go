package app

import (
	"classroom_backend/docs"
	"classroom_backend/internal/config"
	"classroom_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	basePath := cfg.Server.BasePath
	if basePath == "" {
		basePath = "/api"
	}

	docs.SwaggerInfo.BasePath = basePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group(basePath)
	{
		api.GET("/health", c.health.HealthCheck)

		// 用户快照
		api.GET("/user/:id", c.userData.GetUserData)
		api.POST("/user/:id/save", c.userData.SaveUserData)

		// 消息; 列表的 :id 是群ID或用户ID
		api.POST("/messages", c.message.CreateMessage)
		api.GET("/messages/:id", c.message.ListMessages)
		api.POST("/messages/:id/reaction", c.message.ToggleReaction)
		api.PATCH("/messages/:id/read", c.message.MarkRead)

		api.POST("/posts", c.post.CreatePost)

		api.POST("/notifications", c.notification.CreateNotification)
		api.PATCH("/notifications/:id/read", c.notification.MarkRead)

		api.POST("/upload", c.upload.Upload)
	}
}
