package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, "3000", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "user-console", cfg.Logger.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "API_BASE_URL=http://backend:9000/api/\nHTTP_PORT=4000\nAPP_ENV=production\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000/api", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "4000", cfg.App.HTTPPort)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("HTTP_PORT=4000\n"), 0o600))
	t.Setenv("HTTP_PORT", "5000")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.App.HTTPPort)
	assert.Equal(t, ":5000", cfg.App.HTTPAddress())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{BaseURL: "http://localhost:8000/api"},
			App: AppConfig{HTTPPort: "3000", ShutdownTimeoutSeconds: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: "API_BASE_URL is required"},
		{name: "relative base url", mutate: func(c *Config) { c.API.BaseURL = "/api" }, wantErr: "absolute URL"},
		{name: "missing port", mutate: func(c *Config) { c.App.HTTPPort = "" }, wantErr: "HTTP_PORT is required"},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.App.ShutdownTimeoutSeconds = 0 }, wantErr: "SHUTDOWN_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
