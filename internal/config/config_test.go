package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Point at a path that does not exist; defaults must apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8099, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8099", cfg.Server.Addr())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/blueprint-test.db
server:
  host: 0.0.0.0
  port: 9000
  shutdown_timeout: 5s
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/blueprint-test.db", cfg.Database.Path)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
log:
  level: debug
`)
	t.Setenv("BLUEPRINT_SERVER_PORT", "9100")
	t.Setenv("BLUEPRINT_LOG_LEVEL", "warn")
	t.Setenv("BLUEPRINT_DATABASE_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 70000\n")
	_, err := Load(path)
	assert.Error(t, err, "out-of-range port rejected")

	path = writeConfig(t, "log:\n  level: loud\n")
	_, err = Load(path)
	assert.Error(t, err, "unknown log level rejected")
}
