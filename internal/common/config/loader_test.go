// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  environment: "test"
api:
  base_url: "http://localhost:8000"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "leme-intake", cfg.App.Name)
	assert.Equal(t, 30000, cfg.API.Timeout)
	assert.Equal(t, 10000, cfg.API.SessionTimeout)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 9102, cfg.Metrics.Port)
}

func TestLoadFromFileFullConfig(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: "leme-intake"
  environment: "production"
api:
  base_url: "https://api.leme.example"
  timeout: 15000
  session_timeout: 5000
storage:
  backend: "redis"
  redis:
    address: "redis:6379"
    db: 2
wizards:
  analise:
    enabled: true
    timeout: 20000
  pre_abertura:
    enabled: false
logging:
  level: "debug"
  format: "json"
metrics:
  enabled: true
  port: 9200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.leme.example", cfg.API.BaseURL)
	assert.Equal(t, 15000, cfg.API.Timeout)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.True(t, cfg.Metrics.Enabled)

	analise := GetWizardConfig(cfg, "analise")
	assert.True(t, analise.Enabled)
	assert.Equal(t, 20000, analise.Timeout)

	pre := GetWizardConfig(cfg, "pre_abertura")
	assert.False(t, pre.Enabled)
	// Missing timeout falls back to the default.
	assert.Equal(t, 30000, pre.Timeout)
}

func TestLoadFromFileRejectsInvalidBackend(t *testing.T) {
	path := writeConfigFile(t, `
api:
  base_url: "http://localhost:8000"
storage:
  backend: "postgres"
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestLoadFromFileRequiresRedisAddress(t *testing.T) {
	path := writeConfigFile(t, `
api:
  base_url: "http://localhost:8000"
storage:
  backend: "redis"
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.redis.address")
}

func TestGetWizardConfigUnknownWizard(t *testing.T) {
	cfg := &Config{}

	wizard := GetWizardConfig(cfg, "unknown")
	assert.True(t, wizard.Enabled)
	assert.Equal(t, 30000, wizard.Timeout)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, GetDuration(30000))
	assert.Equal(t, 500*time.Millisecond, GetDuration(500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
