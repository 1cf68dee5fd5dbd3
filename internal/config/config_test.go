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
	t.Setenv("YTRELAY_TELEGRAM_TOKEN", "test-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/app/downloads/", cfg.Download.OutputRoot)
	assert.Equal(t, 3, cfg.Download.MaxRetries)
	assert.Equal(t, time.Second, cfg.Download.RetryDelay())
	assert.Empty(t, cfg.Telegram.AllowedUserIDs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Health.Enabled)
	assert.Equal(t, "0.0.0.0:8090", cfg.Health.Address())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("YTRELAY_TELEGRAM_TOKEN", "test-token")
	t.Setenv("YTRELAY_DOWNLOAD_MAX_RETRIES", "5")
	t.Setenv("YTRELAY_DOWNLOAD_RETRY_DELAY_MS", "250")
	t.Setenv("YTRELAY_DOWNLOAD_OUTPUT_ROOT", "/srv/media")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Download.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Download.RetryDelay())
	assert.Equal(t, "/srv/media", cfg.Download.OutputRoot)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
telegram:
  token: file-token
  allowed_user_ids: [111, 222]
download:
  output_root: /data/videos
  max_retries: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, []int64{111, 222}, cfg.Telegram.AllowedUserIDs)
	assert.Equal(t, "/data/videos", cfg.Download.OutputRoot)
	assert.Equal(t, 7, cfg.Download.MaxRetries)
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv("YTRELAY_TELEGRAM_TOKEN", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token")
}
