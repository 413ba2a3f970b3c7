package config

import (
	"os"
	"strings"
)

// Environment is the deployment the UI runs in, read from ENV and CI
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI=true wins over ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// UsesLocalDefaults reports whether missing settings fall back to the
// local API and listen address
func (e Environment) UsesLocalDefaults() bool {
	return e != Production
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}
