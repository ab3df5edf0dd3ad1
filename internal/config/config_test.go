package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Empty(t, cfg.APIKey())
	assert.Equal(t, "GEMINI_API_KEY", cfg.CredentialName())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{
		"server": {"port": 9090},
		"ai": {"gemini_api_key": "from-file", "model": "gemini-pro"},
		"log": {"level": "debug", "format": "console"}
	}`), 0o644)
	require.NoError(t, err)

	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("PANTRYCHEF_RATE_LIMIT_BURST", "9")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini-pro", cfg.AI.Model)
	assert.Equal(t, "from-env", cfg.APIKey())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9, cfg.RateLimit.Burst)
}

func TestLoad_EnvWithoutFile(t *testing.T) {
	t.Setenv("PANTRYCHEF_STORE_REDIS_PASSWORD", "s3cret")
	t.Setenv("PANTRYCHEF_STORE_REDIS_DB", "4")
	t.Setenv("PANTRYCHEF_LOG_DEVELOPMENT", "true")
	t.Setenv("PANTRYCHEF_RATE_LIMIT_BURST", "9")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Store.RedisPassword)
	assert.Equal(t, 4, cfg.Store.RedisDB)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, 9, cfg.RateLimit.Burst)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"store": {"driver": "postgres"}}`), 0o644))
	t.Setenv("DATABASE_URL", "")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "database_url")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		AI:    AIConfig{Provider: "openai"},
		Store: StoreConfig{Driver: DriverMemory},
		Timer: TimerConfig{TickInterval: time.Second},
	}
	assert.ErrorContains(t, cfg.Validate(), "ai.provider")

	cfg.AI.Provider = ProviderLocal
	cfg.AI.LocalAPIKey = "lm-studio"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "lm-studio", cfg.APIKey())
}
