package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	RateLimit      float64 // requests per second per client IP
	RateBurst      int
}

// UpstreamConfig points at the marketplace REST API
type UpstreamConfig struct {
	BaseURL string
}

// SessionConfig configures the session cookie store
type SessionConfig struct {
	Secret string
}

// Load reads configuration from the environment, with .env as a fallback
// for local development
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            getEnv("APP_ENV", "development"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
			RateLimit:      getEnvFloat("RATE_LIMIT_RPS", 20),
			RateBurst:      getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
		},
	}

	if cfg.Session.Secret == "" {
		if cfg.Server.Env == "production" {
			return nil, errors.New("SESSION_SECRET is required in production")
		}
		cfg.Session.Secret = "development-secret"
	}

	return cfg, nil
}

// IsProduction returns true when running with production settings
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
