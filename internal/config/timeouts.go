package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values for console API calls.
// These values can be customized via environment variables.
type Timeouts struct {
	Request           time.Duration // Timeout for a single API request
	Delete            time.Duration // Overall timeout for a delete, retries included
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CENTRAL_TIMEOUT_REQUEST (default: 30s)
//   - CENTRAL_TIMEOUT_DELETE (default: 2m)
//   - CENTRAL_RETRY_MAX_ATTEMPTS (default: 5)
//   - CENTRAL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:           parseDuration("CENTRAL_TIMEOUT_REQUEST", 30*time.Second),
		Delete:            parseDuration("CENTRAL_TIMEOUT_DELETE", 2*time.Minute),
		RetryMaxAttempts:  parseInt("CENTRAL_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("CENTRAL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses a non-negative integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}

// parseBool parses a boolean from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseBool(envVar string, defaultVal bool) bool {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}
