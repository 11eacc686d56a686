package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type HTTPConfig struct {
	CORSAllowedOrigin string
	MaxUploadBytes    int64
}

// ReportConfig holds the defaults applied when a report request omits a
// parameter. All of them can be overridden per request.
type ReportConfig struct {
	DefaultThreshold string
	DefaultCutoffPct int
	DefaultDimension string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// HTTP configuration
	maxUploadBytes, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "20971520"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}

	config.HTTP = HTTPConfig{
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		MaxUploadBytes:    maxUploadBytes,
	}

	// Report defaults
	cutoffPct, err := strconv.Atoi(getEnv("DEFAULT_CUTOFF_PCT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CUTOFF_PCT: %w", err)
	}

	config.Report = ReportConfig{
		DefaultThreshold: getEnv("DEFAULT_THRESHOLD", "09:00:00"),
		DefaultCutoffPct: cutoffPct,
		DefaultDimension: getEnv("DEFAULT_DIMENSION", "area"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be between 1 and 65535")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if _, err := time.Parse("15:04:05", c.Report.DefaultThreshold); err != nil {
		return fmt.Errorf("DEFAULT_THRESHOLD must be in HH:MM:SS format: %w", err)
	}
	if c.Report.DefaultCutoffPct < 0 || c.Report.DefaultCutoffPct > 100 {
		return fmt.Errorf("DEFAULT_CUTOFF_PCT must be between 0 and 100")
	}
	if c.Report.DefaultDimension != "area" && c.Report.DefaultDimension != "region" {
		return fmt.Errorf("DEFAULT_DIMENSION must be either area or region")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
