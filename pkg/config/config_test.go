package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORTFOLIO_API_URL", "")
	t.Setenv("HTTP_TIMEOUT_MS", "")
	t.Setenv("BATCH_SIZE", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("ROWS_PER_PAGE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 50, cfg.RowsPerPage)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_API_URL", "https://api.example.com")
	t.Setenv("HTTP_TIMEOUT_MS", "5000")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("ROWS_PER_PAGE", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.Equal(t, 10, cfg.RowsPerPage)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("BATCH_SIZE", "not-a-number")
	t.Setenv("MAX_FILE_SIZE", "ten megabytes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		HTTPTimeout: time.Second,
		BatchSize:   100,
		MaxFileSize: 1024,
		RowsPerPage: 50,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }},
		{"zero max file size", func(c *Config) { c.MaxFileSize = 0 }},
		{"zero rows per page", func(c *Config) { c.RowsPerPage = 0 }},
		{"zero http timeout", func(c *Config) { c.HTTPTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
