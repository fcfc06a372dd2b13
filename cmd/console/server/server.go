package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"user-console/cmd/console/di"

	"go.uber.org/zap"
)

// Server holds the console HTTP server
type Server struct {
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance from the container
func New(c *di.Container) *Server {
	return &Server{
		Logger: c.Logger,
		HTTP: SetupGinServer(
			c.ScreenHandler,
			c.Views,
			c.Config.Logger.ServiceName,
			c.Config.App.HTTPAddress(),
			c.Logger,
		),
	}
}

// Serve serves on an existing listener until Shutdown is called
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("console running", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
