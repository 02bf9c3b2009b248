// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Submission endpoint
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Pipeline settings
	BatchSize   int
	MaxFileSize int64
	RowsPerPage int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		APIBaseURL:  getEnv("PORTFOLIO_API_URL", ""),
		HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT_MS", 30000)) * time.Millisecond,
		BatchSize:   getEnvAsInt("BATCH_SIZE", 100),
		MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10*1024*1024),
		RowsPerPage: getEnvAsInt("ROWS_PER_PAGE", 50),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("max file size must be positive")
	}

	if c.RowsPerPage <= 0 {
		return errors.New("rows per page must be positive")
	}

	if c.HTTPTimeout <= 0 {
		return errors.New("http timeout must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
