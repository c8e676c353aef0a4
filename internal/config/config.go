// ABOUTME: Configuration loader for the grocery client
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when GROCERY_API_URL is unset
const DefaultAPIURL = "http://localhost:8000"

// appDirName is the directory created under the XDG config home
const appDirName = "smart-grocery"

type Config struct {
	// Backend
	APIURL      string
	HTTPTimeout time.Duration

	// Local state (session file, debug log)
	StateDir string

	// Logging
	LogLevel  string
	LogFormat string // text, json

	// Data hooks
	NearExpiryDays int
	CacheTTL       time.Duration
	DashboardPoll  time.Duration
}

// Load reads .env (if present) and the environment, then validates.
func Load() (*Config, error) {
	// A missing .env is the normal case outside development
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:      ensureScheme(getEnv("GROCERY_API_URL", DefaultAPIURL)),
		HTTPTimeout: getEnvDuration("GROCERY_HTTP_TIMEOUT", 30*time.Second),

		StateDir: getEnv("GROCERY_STATE_DIR", DefaultStateDir()),

		LogLevel:  getEnv("GROCERY_LOG_LEVEL", "info"),
		LogFormat: getEnv("GROCERY_LOG_FORMAT", "text"),

		NearExpiryDays: getEnvInt("GROCERY_NEAR_EXPIRY_DAYS", 3),
		CacheTTL:       getEnvDuration("GROCERY_CACHE_TTL", 30*time.Second),
		DashboardPoll:  getEnvDuration("GROCERY_DASHBOARD_POLL", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("GROCERY_API_URL is required")
	}
	if c.StateDir == "" {
		return fmt.Errorf("GROCERY_STATE_DIR could not be determined")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("GROCERY_HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.NearExpiryDays < 0 || c.NearExpiryDays > 365 {
		return fmt.Errorf("GROCERY_NEAR_EXPIRY_DAYS must be between 0 and 365, got %d", c.NearExpiryDays)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("GROCERY_CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.DashboardPoll < 5*time.Second {
		return fmt.Errorf("GROCERY_DASHBOARD_POLL must be at least 5s, got %s", c.DashboardPoll)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("GROCERY_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// SessionFile is the path of the persisted session key/value file
func (c *Config) SessionFile() string {
	return filepath.Join(c.StateDir, "session.json")
}

// DefaultStateDir returns the XDG config directory for the application
func DefaultStateDir() string {
	if xdg.ConfigHome == "" {
		return ""
	}
	return filepath.Join(xdg.ConfigHome, appDirName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme and trims a trailing slash
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	url = strings.TrimRight(url, "/")
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
