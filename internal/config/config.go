package config

import (
	"os"
	"strconv"
	"time"

	"itorg-api/internal/store"

	"github.com/pkg/errors"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverSQLite   = store.DriverSQLite
	DriverPostgres = store.DriverPostgres
)

type Config struct {
	Addr            string
	DBDriver        string
	DBDSN           string
	AutoMigrate     bool
	EnableMetrics   bool
	EnableSwagger   bool
	ImportMaxBytes  int64
	ShutdownTimeout time.Duration
	Debug           bool
}

// Load reads the configuration from the environment. Values that fail to
// parse keep their default.
func Load() *Config {
	return &Config{
		Addr:            getEnv("HTTP_ADDR", ":8000"),
		DBDriver:        getEnv("DB_DRIVER", DriverSQLite),
		DBDSN:           getEnv("DB_DSN", getEnv("SQLITE_URL", "itorg.db")),
		AutoMigrate:     getEnvBool("AUTO_MIGRATE", true),
		EnableMetrics:   getEnvBool("ENABLE_METRICS", false),
		EnableSwagger:   getEnvBool("ENABLE_SWAGGER", false),
		ImportMaxBytes:  getEnvInt64("IMPORT_MAX_BYTES", 20<<20),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Debug:           getEnvBool("DEBUG", false),
	}
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("HTTP_ADDR is required")
	}
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.Errorf("DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.ImportMaxBytes <= 0 {
		return errors.New("IMPORT_MAX_BYTES must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := GetenvBool(key); err == nil && v != nil {
		return *v
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// GetenvBool returns nil when key is unset.
func GetenvBool(key string) (*bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	return &b, nil
}

// GetenvInt returns nil when key is unset.
func GetenvInt(key string) (*int, error) {
	value := os.Getenv(key)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", key)
	}
	return &n, nil
}
