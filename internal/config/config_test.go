package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "foodshare.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.NATSURL)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FOODSHARE_DB", "/tmp/fs.db")
	t.Setenv("FOODSHARE_ADDR", ":9090")
	t.Setenv("FOODSHARE_JWT_SECRET", "s3cret")
	t.Setenv("FOODSHARE_NATS_URL", "nats://localhost:4222")
	t.Setenv("FOODSHARE_METRICS", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fs.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadEnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set, so register
	// the key first to have t.Setenv restore it afterwards.
	t.Setenv("FOODSHARE_LOG", "")
	os.Unsetenv("FOODSHARE_LOG")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOODSHARE_LOG=/var/log/foodshare.log\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/foodshare.log", cfg.LogPath)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadEmptyVariableKeepsDefault(t *testing.T) {
	t.Setenv("FOODSHARE_ADDR", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}
