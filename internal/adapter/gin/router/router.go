package router

import (
	"html/template"
	"net/http"

	"user-console/internal/adapter/gin/handler"
	"user-console/internal/adapter/gin/middleware"
	"user-console/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	screenHandler *handler.ScreenHandler,
	views *template.Template,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(views)

	// Global middleware
	router.Use(logger.RequestIDMiddleware())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	router.GET("/", screenHandler.Index)
	router.POST("/cancel", screenHandler.Cancel)

	users := router.Group("/users")
	{
		users.POST("", screenHandler.Submit)
		users.POST("/:id/edit", screenHandler.Edit)
		users.GET("/:id/delete", screenHandler.ConfirmDelete)
		users.POST("/:id/delete", screenHandler.Delete)
	}

	return router
}
