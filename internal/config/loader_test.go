package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's own config file and TASKS_* variables out of the test
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{
		ConfigFileEnv, "TASKS_DB_DIR", "TASKS_DB_FILENAME", "TASKS_SERVER_ADDR",
		"TASKS_CLIENT_BASE_URL", "TASKS_LOG_LEVEL", "TASKS_LOG_FORMAT", "TASKS_VALIDATION_TITLE_MAX",
	} {
		t.Setenv(name, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "tasks.db", cfg.Database.Filename)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 255, cfg.Validation.TitleMaxLength)
	assert.Equal(t, "info", cfg.Application.LogLevel)
}

func TestLoader_File(t *testing.T) {
	isolate(t)
	path := writeYAML(t, `
database:
  filename: other.db
  query_timeout: 3s
server:
  addr: 0.0.0.0:9999
validation:
  title_max_length: 80
application:
  log_format: json
`)

	cfg, err := NewLoader().WithFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "other.db", cfg.Database.Filename)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout, "keys absent from the file keep their defaults")
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Addr)
	assert.Equal(t, 80, cfg.Validation.TitleMaxLength)
	assert.Equal(t, "json", cfg.Application.LogFormat)
}

func TestLoader_FileFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(ConfigFileEnv, writeYAML(t, "server:\n  addr: localhost:7000\n"))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:7000", cfg.Server.Addr)
}

func TestLoader_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := NewLoader().WithFile(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	assert.Error(t, err)
}

func TestLoader_InvalidFile(t *testing.T) {
	isolate(t)

	_, err := NewLoader().WithFile(writeYAML(t, "server: [unclosed")).Load()
	assert.Error(t, err)
}

func TestLoader_Precedence(t *testing.T) {
	isolate(t)
	path := writeYAML(t, "server:\n  addr: file:1\nclient:\n  base_url: http://file\n")
	t.Setenv("TASKS_SERVER_ADDR", "env:2")

	flagURL := "http://flag"
	cfg, err := NewLoader().WithFile(path).LoadWithOverrides(&ConfigOverrides{ServerURL: &flagURL})
	require.NoError(t, err)

	assert.Equal(t, "env:2", cfg.Server.Addr, "environment beats file")
	assert.Equal(t, "http://flag", cfg.Client.BaseURL, "flags beat file")
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	isolate(t)

	level := "loud"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{LogLevel: &level})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "application.log_level", cfgErr.Field)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := NewConfig()
	cfg.Server.Addr = "localhost:1234"
	cfg.Database.QueryTimeout = 42 * time.Second
	require.NoError(t, WriteFile(path, cfg, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "query_timeout: 42s")

	loaded, err := NewLoader().WithFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:1234", loaded.Server.Addr)
	assert.Equal(t, 42*time.Second, loaded.Database.QueryTimeout)
	assert.Equal(t, cfg.Database.DirPermissions, loaded.Database.DirPermissions)
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	path := writeYAML(t, "server:\n  addr: keep:1\n")

	err := WriteFile(path, NewConfig(), false)
	assert.Error(t, err)

	require.NoError(t, WriteFile(path, NewConfig(), true))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(NewConfig())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "server:")
	assert.Contains(t, out, "addr: 127.0.0.1:8080")
	assert.Contains(t, out, "title_max_length: 255")
	assert.Contains(t, out, "timeout: 1m0s")
}
