// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// APIKey authenticates against the WakaTime API.
	APIKey string
	// APIBaseURL is the WakaTime API root, overridable for testing.
	APIBaseURL string
	// BaseDir is the root of the activity log tree.
	BaseDir string
	// DatabasePath locates the SQLite usage index.
	DatabasePath string
	// RequestTimeout bounds each upstream HTTP request.
	RequestTimeout time.Duration
	// Notify enables desktop notifications when rollups are written.
	Notify bool
	// LogLevel selects the slog level (debug, info, warn, error).
	LogLevel string
}

// Default values
const (
	defaultAPIBaseURL     = "https://wakatime.com/api/v1"
	defaultRequestTimeout = 30 * time.Second
)

// Load reads configuration from .env files and environment variables.
// The API key is not required here: only the fetch command needs it, and
// read-only commands (report, tui, backfill) must work without one.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIKey:         getEnvString("WAKATIME_API_KEY", ""),
		APIBaseURL:     getEnvString("WAKATIME_API_URL", defaultAPIBaseURL),
		BaseDir:        getEnvString("WAKALOG_BASE_DIR", getDefaultBaseDir()),
		DatabasePath:   getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		Notify:         getEnvBool("WAKALOG_NOTIFY", false),
		LogLevel:       getEnvString("LOG_LEVEL", "info"),
	}

	// Ensure base and database directories exist
	if err := ensureDir(cfg.BaseDir); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequireAPIKey returns an error when no API key is configured.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("WAKATIME_API_KEY is required (set it in the environment or a .env file)")
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "wakalog", ".env"),
			filepath.Join(home, ".wakalog", ".env"),
		)
	}

	return paths
}

// getDefaultBaseDir returns the default root for the activity log tree.
func getDefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wakatime_logs"
	}
	return filepath.Join(home, "wakatime_logs")
}

// getDefaultDatabasePath returns the default path for the SQLite usage index.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "usage.db"
	}
	return filepath.Join(home, ".config", "wakalog", "usage.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
