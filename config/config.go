package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Default values used outside production
const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = "8080"
	DefaultAPIBaseURL      = "http://localhost:8000"
	DefaultImagePrefix     = "images/"
	DefaultImageURLExpiry  = 15 * time.Minute
	DefaultRateLimitWindow = time.Minute
)

// DefaultCategories are the category buttons shown when none are configured
var DefaultCategories = []string{"Breakfast", "Lunch", "Dinner", "Dessert"}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Catalog API configuration
	APIBaseURL     string
	RequestTimeout time.Duration

	// UI configuration
	Categories     []string
	AllowedOrigins []string

	// Redis configuration, used by the rate limiter when set
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Rate limiting of mutating routes; zero disables it
	RateLimit       int
	RateLimitWindow time.Duration

	// S3 image hosting, used for image links when a bucket is set
	S3BucketName   string
	AWSRegion      string
	S3ImagePrefix  string
	ImageURLExpiry time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	if env.UsesLocalDefaults() {
		applyDefaults(cfg)
	}

	if err := loadValues(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in values that make a local setup work out of the box
func applyDefaults(cfg *Config) {
	cfg.ServerHost = DefaultServerHost
	cfg.ServerPort = DefaultServerPort
	cfg.APIBaseURL = DefaultAPIBaseURL
}

// loadValues overlays environment variables and Docker secrets onto cfg
func loadValues(cfg *Config) error {
	cfg.ServerHost = lookup("SERVER_HOST", cfg.ServerHost)
	cfg.ServerPort = lookup("SERVER_PORT", cfg.ServerPort)
	cfg.APIBaseURL = lookup("API_BASE_URL", cfg.APIBaseURL)

	cfg.Categories = splitList(lookup("RECIPE_CATEGORIES", ""))
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]string(nil), DefaultCategories...)
	}
	cfg.AllowedOrigins = splitList(lookup("CORS_ALLOWED_ORIGINS", ""))

	cfg.RedisURL = lookup("REDIS_URL", "")
	cfg.RedisHost = lookup("REDIS_HOST", "")
	cfg.RedisPort = lookup("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.S3BucketName = lookup("S3_BUCKET_NAME", "")
	cfg.AWSRegion = lookup("AWS_REGION", "")
	cfg.S3ImagePrefix = lookup("S3_IMAGE_PREFIX", DefaultImagePrefix)

	var err error
	if cfg.RequestTimeout, err = durationValue("REQUEST_TIMEOUT", 0); err != nil {
		return err
	}
	if cfg.RateLimitWindow, err = durationValue("RATE_LIMIT_WINDOW", DefaultRateLimitWindow); err != nil {
		return err
	}
	if cfg.ImageURLExpiry, err = durationValue("IMAGE_URL_EXPIRY", DefaultImageURLExpiry); err != nil {
		return err
	}
	if raw := lookup("RATE_LIMIT", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT must be an integer: %w", err)
		}
		cfg.RateLimit = n
	}

	return nil
}

// RedisEnabled reports whether a Redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether images are served from S3
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup returns the environment variable, then the Docker secret of the
// same name in lower case, then fallback
func lookup(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

func durationValue(name string, fallback time.Duration) (time.Duration, error) {
	raw := lookup(name, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s: %w", name, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
