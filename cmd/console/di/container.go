package di

import (
	"fmt"
	"html/template"

	"user-console/internal/adapter/gin/handler"
	"user-console/internal/adapter/gin/templates"
	"user-console/internal/adapter/restclient"
	"user-console/internal/config"
	"user-console/internal/usecase/user"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Client        *restclient.Client
	UserAPI       *restclient.UserAPI
	Screen        *user.Screen
	Views         *template.Template
	ScreenHandler *handler.ScreenHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize backend client
	client := restclient.New(restclient.Config{
		BaseURL:        cfg.API.BaseURL,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
	}, nil, l.Named("backend"))
	userAPI := restclient.NewUserAPI(client)

	// Initialize screen state
	screen := user.New(userAPI, l.Named("screen"))

	views, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Container{
		Config:        cfg,
		Logger:        l,
		Client:        client,
		UserAPI:       userAPI,
		Screen:        screen,
		Views:         views,
		ScreenHandler: handler.NewScreenHandler(screen, l),
	}, nil
}
