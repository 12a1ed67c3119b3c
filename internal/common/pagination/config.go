// Package pagination provides the pagination framework shared by every
// paginated endpoint: parameter parsing, offset/total-page arithmetic,
// navigation link generation, and the generic response envelope.
package pagination

import (
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables.
type Config struct {
	DefaultPage int // Default page number (typically 1)
	DefaultSize int // Default items per page (typically 5)
	MaxSize     int // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, size=5, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage: 1,
		DefaultSize: 5,
		MaxSize:     100,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_PAGE: Default page number
//   - PAGINATION_DEFAULT_SIZE: Default items per page
//   - PAGINATION_MAX_SIZE: Maximum items per page
//
// Falls back to DefaultConfig() if environment variables are not set.
func LoadFromEnv() Config {
	return Config{
		DefaultPage: getEnvAsInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultSize: getEnvAsInt("PAGINATION_DEFAULT_SIZE", 5),
		MaxSize:     getEnvAsInt("PAGINATION_MAX_SIZE", 100),
	}
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
