package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for prison-admin.
type Config struct {
	// Backend REST API
	APIURL       string
	APITimeout   time.Duration // 0 disables the client-side timeout
	APIRateLimit float64       // Requests per second, 0 disables limiting

	// List behaviour
	PageSize       int           // Page size for paginated lists (prisoners)
	ListLimit      int           // Fetch limit for non-paginated lists (visits, incidents)
	SearchDebounce time.Duration // Quiet period before a search fetch

	// Notifications
	ToastTTL time.Duration

	// Backend health check interval, 0 disables the monitor
	HealthInterval time.Duration

	// Session state file (last page and report tab), empty disables persistence
	StateFile string

	// Web UI
	WebPort string

	// Logging
	LogLevel string // DEBUG, INFO, WARN, ERROR
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	apiURL := getEnv("API_URL", "http://localhost:8000")
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_URL must be an absolute URL, got %q", apiURL)
	}

	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", "20"))
	if err != nil || pageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be a positive integer")
	}
	listLimit, err := strconv.Atoi(getEnv("LIST_LIMIT", "50"))
	if err != nil || listLimit < 1 {
		return nil, fmt.Errorf("LIST_LIMIT must be a positive integer")
	}

	debounceMs, _ := strconv.Atoi(getEnv("SEARCH_DEBOUNCE_MS", "300"))
	toastMs, _ := strconv.Atoi(getEnv("TOAST_TTL_MS", "3000"))
	timeoutSec, _ := strconv.Atoi(getEnv("API_TIMEOUT_SEC", "0"))
	rateLimit, _ := strconv.ParseFloat(getEnv("API_RATE_LIMIT", "0"), 64)
	healthSec, _ := strconv.Atoi(getEnv("HEALTH_INTERVAL_SEC", "30"))

	return &Config{
		APIURL:         apiURL,
		APITimeout:     time.Duration(timeoutSec) * time.Second,
		APIRateLimit:   rateLimit,
		PageSize:       pageSize,
		ListLimit:      listLimit,
		SearchDebounce: time.Duration(debounceMs) * time.Millisecond,
		ToastTTL:       time.Duration(toastMs) * time.Millisecond,
		HealthInterval: time.Duration(healthSec) * time.Second,
		StateFile:      getEnv("STATE_FILE", ""),
		WebPort:        getEnv("WEB_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
