package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all client-side configuration.
type Config struct {
	// BaseURL is the address of the board API, without a trailing slash.
	BaseURL string

	// TimeoutMs bounds each HTTP request, including the refresh round trip.
	TimeoutMs int

	// DataDir holds the session database and board cache.
	DataDir string

	// LogAPICalls enables one-line call logging on stderr.
	LogAPICalls bool
}

// DefaultConfig returns a Config with sensible defaults.
// API call logging is disabled by default.
func DefaultConfig() Config {
	dataDir := ".zenban"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".zenban")
	}
	return Config{
		BaseURL:     "http://localhost:8000",
		TimeoutMs:   10000,
		DataDir:     dataDir,
		LogAPICalls: false,
	}
}

// LoadConfig reads configuration from a local .env file (if present) and
// the environment, falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("ZENBAN_BASE_URL"); v != "" {
		cfg.BaseURL = trimTrailingSlash(v)
	}
	if v := os.Getenv("ZENBAN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("ZENBAN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ZENBAN_LOG_API_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogAPICalls = b
		}
	}

	return cfg
}

// DBPath returns the location of the local session/cache database.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "zenban.db")
}

func trimTrailingSlash(s string) string {
	for len(s) > 1 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
