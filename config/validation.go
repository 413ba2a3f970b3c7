package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks the configuration and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.APIBaseURL == "" {
		add("API_BASE_URL", "is required")
	} else if u, err := url.Parse(cfg.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add("API_BASE_URL", "must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	} else if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", "must be a port number, got %q", cfg.ServerPort)
	}

	if cfg.RequestTimeout < 0 {
		add("REQUEST_TIMEOUT", "must not be negative")
	}

	if cfg.RateLimit < 0 {
		add("RATE_LIMIT", "must not be negative")
	}
	if cfg.RateLimit > 0 && cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive when RATE_LIMIT is set")
	}

	if cfg.S3Enabled() {
		if cfg.AWSRegion == "" {
			add("AWS_REGION", "is required when S3_BUCKET_NAME is set")
		}
		if cfg.ImageURLExpiry <= 0 {
			add("IMAGE_URL_EXPIRY", "must be positive")
		}
	}

	if IsProduction() {
		for _, origin := range cfg.AllowedOrigins {
			if origin == "*" {
				add("CORS_ALLOWED_ORIGINS", "wildcard origin is not allowed in production")
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
