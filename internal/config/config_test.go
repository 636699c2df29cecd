package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"API_URL", "PAGE_SIZE", "LIST_LIMIT", "SEARCH_DEBOUNCE_MS", "TOAST_TTL_MS", "API_TIMEOUT_SEC", "API_RATE_LIMIT", "WEB_PORT", "LOG_LEVEL", "HEALTH_INTERVAL_SEC", "STATE_FILE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 50, cfg.ListLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Zero(t, cfg.APITimeout)
	assert.Zero(t, cfg.APIRateLimit)
	assert.Equal(t, "8080", cfg.WebPort)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HealthInterval)
	assert.Empty(t, cfg.StateFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_URL", "http://backend:9000")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("SEARCH_DEBOUNCE_MS", "150")
	t.Setenv("API_RATE_LIMIT", "5.5")
	t.Setenv("HEALTH_INTERVAL_SEC", "0")
	t.Setenv("STATE_FILE", "/tmp/prison-admin.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.APIURL)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 5.5, cfg.APIRateLimit)
	assert.Zero(t, cfg.HealthInterval)
	assert.Equal(t, "/tmp/prison-admin.json", cfg.StateFile)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("relative api url", func(t *testing.T) {
		t.Setenv("API_URL", "localhost")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero page size", func(t *testing.T) {
		t.Setenv("API_URL", "")
		t.Setenv("PAGE_SIZE", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}
