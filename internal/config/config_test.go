package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"itorg-api/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "DB_DRIVER", "DB_DSN", "SQLITE_URL", "AUTO_MIGRATE",
		"ENABLE_METRICS", "ENABLE_SWAGGER", "IMPORT_MAX_BYTES", "SHUTDOWN_TIMEOUT", "DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "itorg.db", cfg.DBDSN)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.EnableMetrics)
	assert.False(t, cfg.EnableSwagger)
	assert.Equal(t, int64(20<<20), cfg.ImportMaxBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadWithEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://localhost/itorg")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("IMPORT_MAX_BYTES", "1024")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/itorg", cfg.DBDSN)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, int64(1024), cfg.ImportMaxBytes)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFallsBackToSQLiteURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLITE_URL", "/var/lib/itorg/app.db")

	assert.Equal(t, "/var/lib/itorg/app.db", Load().DBDSN)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTO_MIGRATE", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestDefaultConfigOpensStore(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.NoError(t, cfg.Validate())

	st, err := store.Open(context.Background(), cfg.DBDriver, filepath.Join(t.TempDir(), cfg.DBDSN))
	require.NoError(t, err)
	assert.NoError(t, st.Close())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Addr:            ":8000",
			DBDriver:        DriverSQLite,
			DBDSN:           "itorg.db",
			ImportMaxBytes:  1 << 20,
			ShutdownTimeout: time.Second,
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "postgres driver", mutate: func(c *Config) { c.DBDriver = DriverPostgres }},
		{name: "empty addr", mutate: func(c *Config) { c.Addr = "" }, expectError: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, expectError: true},
		{name: "empty dsn", mutate: func(c *Config) { c.DBDSN = "" }, expectError: true},
		{name: "zero import limit", mutate: func(c *Config) { c.ImportMaxBytes = 0 }, expectError: true},
		{name: "negative shutdown timeout", mutate: func(c *Config) { c.ShutdownTimeout = -time.Second }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadAndValidate()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Setenv("DB_DRIVER", "oracle")
	_, err = LoadAndValidate()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestConfigureLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CONSOLE_LOGGING_ENABLED", "")
	t.Setenv("FILE_LOGGING_ENABLED", "")

	logger, err := ConfigureLogger(false)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	logger, err = ConfigureLogger(true)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	t.Setenv("LOG_LEVEL", "warn")
	logger, err = ConfigureLogger(true)
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	t.Setenv("LOG_LEVEL", "loud")
	_, err = ConfigureLogger(false)
	assert.Error(t, err)
}

func TestConfigureLoggerWithFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("FILE_LOGGING_ENABLED", "true")
	t.Setenv("LOGS_DIRECTORY", dir)
	t.Setenv("LOGS_MAX_SIZE", "1")

	conf, err := buildLoggerConfig(false)
	require.NoError(t, err)
	assert.True(t, conf.FileLoggingEnabled)
	assert.Equal(t, dir, conf.Directory)
	assert.Equal(t, "itorg-api.log", conf.Filename)
	assert.Equal(t, 1, conf.MaxSize)
	assert.Equal(t, 10, conf.MaxBackups)

	_, err = ConfigureLogger(false)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	t.Setenv("LOGS_MAX_AGE", "forever")
	_, err = buildLoggerConfig(false)
	assert.Error(t, err)
}
