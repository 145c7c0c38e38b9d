package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "PUBLIC_URL", "LOG_LEVEL", "CORS_ORIGINS", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DATABASE", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7521", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "http://localhost:7521", cfg.PublicURL)
	assert.Equal(t, []string{"*"}, cfg.Origins)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "weekboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
log_level: debug
cors_origins: ["https://school.example"]
store:
  driver: mongo
  mongo_uri: mongodb://db:27017
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	assert.Equal(t, "weekboard", cfg.Store.MongoDatabase, "unset file keys keep defaults")
	assert.Equal(t, []string{"https://school.example"}, cfg.Origins)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "postgres")
	_, err = Load("")
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestLevel_Fallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warn"}.Level())
}
