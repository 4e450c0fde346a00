// Package config loads the remote completion configuration for Restaceratops.
// Configuration is read once at startup from a local .env file (if present)
// and the process environment; environment variables take precedence.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"restaceratops/internal/logger"
	"restaceratops/pkg/resttypes"
)

// Defaults mirror the remote provider the assistant was built against.
const (
	DefaultProvider    = "openrouter"
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "qwen/qwen3-coder:free"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// Environment variable names consumed by Load.
const (
	EnvAPIKey          = "OPENROUTER_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvProvider        = "RESTACERATOPS_PROVIDER"
	EnvBaseURL         = "RESTACERATOPS_BASE_URL"
	EnvModel           = "RESTACERATOPS_MODEL"
	EnvTemperature     = "RESTACERATOPS_TEMPERATURE"
	EnvMaxTokens       = "RESTACERATOPS_MAX_TOKENS"
)

// Load builds the remote configuration from the environment. A missing API
// key is a valid, fully supported configuration: the assistant then runs in
// fallback-only mode. Load never fails.
func Load() resttypes.RemoteConfig {
	// Local .env is optional; environment variables still win because
	// godotenv does not override variables that are already set.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded configuration from .env file")
	}

	cfg := resttypes.RemoteConfig{
		Provider:    envOr(EnvProvider, DefaultProvider),
		BaseURL:     envOr(EnvBaseURL, DefaultBaseURL),
		Model:       envOr(EnvModel, DefaultModel),
		Temperature: envFloatOr(EnvTemperature, DefaultTemperature),
		MaxTokens:   envIntOr(EnvMaxTokens, DefaultMaxTokens),
		Headers: map[string]string{
			// OpenRouter routing and attribution headers
			"HTTP-Referer": "https://restaceratops.dev",
			"X-Title":      "Restaceratops",
		},
	}

	switch cfg.Provider {
	case "anthropic":
		cfg.APIKey = os.Getenv(EnvAnthropicAPIKey)
	default:
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}

	if cfg.Configured() {
		logger.Info("Remote completion configured", "provider", cfg.Provider, "model", cfg.Model)
	} else {
		logger.Warn("No API key found, running in fallback-only mode", "provider", cfg.Provider)
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		logger.Warn("Invalid float in environment, using default", "key", key, "value", v)
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logger.Warn("Invalid integer in environment, using default", "key", key, "value", v)
	}
	return fallback
}
