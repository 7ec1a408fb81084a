package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateConfig checks that every handler-critical setting is present.
// A missing backend URL or key is a fatal startup condition: there is no
// degraded mode in which the profile handlers can serve requests.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if cfg.BackendURL == "" {
		missing = append(missing, "PUBLIC_BACKEND_URL (or BACKEND_URL)")
	}
	if cfg.PublishableKey == "" {
		missing = append(missing, "PUBLIC_PUBLISHABLE_KEY (or ANON_KEY)")
	}
	if cfg.AuthJWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if _, err := url.ParseRequestURI(cfg.BackendURL); err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", cfg.BackendURL, err)
	}

	return nil
}
