package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Backend collaborators. BackendURL points at the hosted auth/storage
	// deployment; PublishableKey is safe to hand to browsers, ServiceKey
	// is not.
	BackendURL     string
	PublishableKey string
	ServiceKey     string

	// Secret used to verify the auth provider's access tokens
	AuthJWTSecret string

	// Database configuration
	DatabaseURL string

	// Object storage configuration (S3-compatible)
	StorageEndpoint  string
	StorageBucket    string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string

	// Redis configuration (optional, enables upload rate limiting)
	RedisAddr     string
	RedisPassword string
}

// Load creates a new Config instance from the process environment.
// Public-prefixed variables are consulted before their unprefixed
// fallbacks, matching what the frontend deployment exposes.
func Load() (*Config, error) {
	if IsDevelopment() {
		// Missing .env is fine, development can run on exported vars alone
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerHost:       getenv("SERVER_HOST", "0.0.0.0"),
		ServerPort:       getenv("SERVER_PORT", "8080"),
		BackendURL:       envFirst("PUBLIC_BACKEND_URL", "BACKEND_URL"),
		PublishableKey:   envFirst("PUBLIC_PUBLISHABLE_KEY", "PUBLIC_ANON_KEY", "ANON_KEY"),
		ServiceKey:       os.Getenv("SERVICE_KEY"),
		AuthJWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageBucket:    getenv("STORAGE_BUCKET", "avatars"),
		StorageRegion:    getenv("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
	}

	// Hosted storage rides on the backend deployment unless pointed elsewhere
	if cfg.StorageEndpoint == "" && cfg.BackendURL != "" {
		cfg.StorageEndpoint = strings.TrimRight(cfg.BackendURL, "/") + "/storage/v1/s3"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envFirst returns the first non-empty value among the named variables.
func envFirst(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// getenv returns the variable's value or the given default when unset.
func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
