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
	t.Setenv("DB_DSN", "host=localhost dbname=ativos")
	t.Setenv("SESSION_SECRET", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "memory", cfg.CacheDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_SECRET", "secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("DB_DSN", "x")
	t.Setenv("SESSION_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DSN", "x")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "DB_DSN: from-file\nSESSION_SECRET: file-secret\nSERVER_PORT: \"4000\"\nPUBLIC_BASE_URL: http://ativos.local/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SERVER_PORT", "5000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.DBDSN)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "http://ativos.local", cfg.PublicBaseURL)
}
