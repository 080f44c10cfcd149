// internal/common/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==========================
// LoadFromFile
// ==========================

func TestLoadFromFile_FullConfig(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: chassis-evaluator
  environment: test
sheet:
  url: https://example.com/sheet.csv
  ttl_seconds: 45
  timeout: 5000
cache:
  enabled: false
  key_prefix: chassis
scoring:
  default_score: 2
  top_gaps: 6
sessions:
  idle_ttl_minutes: 30
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "chassis-evaluator", cfg.App.Name)
	assert.Equal(t, "https://example.com/sheet.csv", cfg.Sheet.URL)
	assert.Equal(t, 45*time.Second, cfg.Sheet.SheetTTL())
	assert.Equal(t, 5*time.Second, GetDuration(cfg.Sheet.Timeout))
	assert.Equal(t, 2, cfg.Scoring.DefaultScore)
	assert.Equal(t, 6, cfg.Scoring.TopGaps)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL())
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
sheet:
  url: https://example.com/sheet.csv
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Sheet.SheetTTL())
	assert.Equal(t, 10000, cfg.Sheet.Timeout)
	assert.Equal(t, "chassis", cfg.Cache.KeyPrefix)
	assert.Equal(t, 3, cfg.Scoring.DefaultScore)
	assert.Equal(t, 4, cfg.Scoring.TopGaps)
	assert.Equal(t, time.Hour, cfg.Sessions.IdleTTL())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_MissingSheetURL(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: chassis-evaluator
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet.url is required")
}

func TestLoadFromFile_DefaultScoreOutOfRange(t *testing.T) {
	path := writeConfigFile(t, `
sheet:
  url: https://example.com/sheet.csv
scoring:
  default_score: 9
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_score")
}

func TestLoadFromFile_CacheEnabledNeedsAddress(t *testing.T) {
	path := writeConfigFile(t, `
sheet:
  url: https://example.com/sheet.csv
cache:
  enabled: true
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.address")
}

func TestLoadFromFile_EnvOverrideForRedis(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	path := writeConfigFile(t, `
sheet:
  url: https://example.com/sheet.csv
cache:
  enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Address)
}
