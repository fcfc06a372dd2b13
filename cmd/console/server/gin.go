package server

import (
	"html/template"
	"net/http"
	"time"

	"user-console/internal/adapter/gin/handler"
	ginrouter "user-console/internal/adapter/gin/router"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the console HTTP server
func SetupGinServer(
	screenHandler *handler.ScreenHandler,
	views *template.Template,
	serviceName string,
	addr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(screenHandler, views, serviceName, l)

	l.Info("console configured", zap.String("address", addr))

	// No write timeout: a page render waits on the backend, which has no client-side timeout
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
