package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daddeck/daddeck-api/internal/config"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daddeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, int64(60), cfg.RateLimit.Free)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[rate_limit]
pro = 2000
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, int64(2000), cfg.RateLimit.Pro)
	assert.Equal(t, int64(300), cfg.RateLimit.Basic)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":8443"
shutdown_timeout_seconds = 10

[redis]
address = "redis.internal:6379"
password = "hunter2"
db = 3

[auth]
enabled = false
bootstrap_key = "dd_bootstrap"

[rate_limit]
window_seconds = 30
free = 10
basic = 50
pro = 100
enterprise = 500
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8443", cfg.Server.Addr)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Address)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "dd_bootstrap", cfg.Auth.BootstrapKey)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window())
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ""

[rate_limit]
free = 0
`)

	_, err := config.Load(path)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLimitFor(t *testing.T) {
	limits := config.Default().RateLimit

	assert.Equal(t, int64(60), limits.LimitFor(entities.TierFree))
	assert.Equal(t, int64(300), limits.LimitFor(entities.TierBasic))
	assert.Equal(t, int64(1000), limits.LimitFor(entities.TierPro))
	assert.Equal(t, int64(5000), limits.LimitFor(entities.TierEnterprise))
	assert.Equal(t, int64(60), limits.LimitFor(entities.APITier("platinum")))
}
