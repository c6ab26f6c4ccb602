package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "missing")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "showcase-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "showcase.db", cfg.GetDatabaseURL())
	assert.Equal(t, EventsMemory, cfg.Events.Driver)
	assert.Equal(t, "http://httpbin.org", cfg.Delay.BaseURL)
	assert.Equal(t, 5, cfg.Delay.Seconds)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.json"), []byte(`{
		"port": "9090",
		"database": {"driver": "postgres", "host": "db", "port": 5433, "user": "u", "password": "p", "database": "ledger"},
		"log": {"level": "debug"}
	}`), 0o600))

	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SHOWCASE_LOG_LEVEL", "warn")
	t.Setenv("SHOWCASE_EVENTS_DRIVER", "aws")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, EventsAWS, cfg.Events.Driver)
	assert.Equal(t, "postgres://u:p@db:5433/ledger?sslmode=disable", cfg.GetDatabaseURL())
}

func TestLoad_ExplicitURLWins(t *testing.T) {
	t.Setenv("ENVIRONMENT", "missing")
	t.Setenv("SHOWCASE_DATABASE_URL", "file::memory:")

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "file::memory:", cfg.GetDatabaseURL())
}

func TestLoad_RejectsUnknownDrivers(t *testing.T) {
	t.Setenv("ENVIRONMENT", "missing")

	t.Setenv("SHOWCASE_DATABASE_DRIVER", "mysql")
	_, err := Load(t.TempDir())
	assert.EqualError(t, err, `unsupported database driver: "mysql"`)

	t.Setenv("SHOWCASE_DATABASE_DRIVER", "sqlite")
	t.Setenv("SHOWCASE_EVENTS_DRIVER", "kafka")
	_, err = Load(t.TempDir())
	assert.EqualError(t, err, `unsupported events driver: "kafka"`)
}

func TestReadConfig_LocalFile(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")

	cfg, err := ReadConfig()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}
