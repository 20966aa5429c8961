package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	Inventory InventoryConfig
	Auth      AuthConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
	// AllowCredentials lets cross-origin clients send the token cookie to /api
	AllowCredentials bool
}

// InventoryConfig points at the upstream product API
type InventoryConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	TokenCookie string // Name of the cookie holding the bearer token
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence over it.
func Load() (*Config, error) {
	loadEnvFile(".env")

	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnv("PORT", "8080"),
			Host:             getEnv("HOST", "0.0.0.0"),
			ReadTimeout:      getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:     getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout:  getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:   getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
		},
		Inventory: InventoryConfig{
			BaseURL: strings.TrimRight(getEnv("INVENTORY_BASE_URL", "https://beimpal.telkom.cloud"), "/"),
			Timeout: time.Duration(getEnvAsInt("INVENTORY_TIMEOUT", 10)) * time.Second,
		},
		Auth: AuthConfig{
			TokenCookie: getEnv("TOKEN_COOKIE", "token"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Inventory.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid INVENTORY_BASE_URL: %q", c.Inventory.BaseURL)
	}

	if c.Inventory.Timeout <= 0 {
		return fmt.Errorf("INVENTORY_TIMEOUT must be positive")
	}

	if c.Server.AllowCredentials {
		for _, origin := range c.Server.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ALLOW_CREDENTIALS requires explicit ALLOWED_ORIGINS, not *")
			}
		}
	}

	if c.Auth.TokenCookie == "" {
		return fmt.Errorf("TOKEN_COOKIE is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// loadEnvFile loads variables from path without overriding the environment
func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to load env file", "path", path, "error", err)
		}
		return
	}
	slog.Debug("env file loaded", "path", path)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
