package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerConfig struct {
	// Print human-readable output instead of JSON
	ConsoleLoggingEnabled bool

	DebugModeEnabled bool
	// Level overrides the default of info (debug when DebugModeEnabled)
	Level string

	// The fields below are ignored unless FileLoggingEnabled is set.
	FileLoggingEnabled bool
	Directory          string
	Filename           string
	// MaxSize in megabytes before the file is rolled
	MaxSize    int
	MaxBackups int
	// MaxAge in days
	MaxAge int
}

func buildLoggerConfig(debugModeEnabled bool) (*LoggerConfig, error) {
	conf := LoggerConfig{
		DebugModeEnabled: debugModeEnabled,
		Level:            strings.ToLower(os.Getenv("LOG_LEVEL")),
	}

	if v, err := GetenvBool("CONSOLE_LOGGING_ENABLED"); err != nil {
		return nil, err
	} else if v != nil {
		conf.ConsoleLoggingEnabled = *v
	}

	if v, err := GetenvBool("FILE_LOGGING_ENABLED"); err != nil {
		return nil, err
	} else if v != nil && *v {
		conf.FileLoggingEnabled = true
		conf.Directory = getEnv("LOGS_DIRECTORY", "logs")
		conf.Filename = getEnv("LOGS_FILE_NAME", "itorg-api.log")

		if v, err := GetenvInt("LOGS_MAX_SIZE"); err != nil {
			return nil, err
		} else if v != nil {
			conf.MaxSize = *v
		} else {
			conf.MaxSize = 10
		}

		if v, err := GetenvInt("LOGS_MAX_BACKUPS"); err != nil {
			return nil, err
		} else if v != nil {
			conf.MaxBackups = *v
		} else {
			conf.MaxBackups = 10
		}

		if v, err := GetenvInt("LOGS_MAX_AGE"); err != nil {
			return nil, err
		} else if v != nil {
			conf.MaxAge = *v
		} else {
			conf.MaxAge = 10
		}
	}

	return &conf, nil
}

func (c *LoggerConfig) level() (zerolog.Level, error) {
	if c.Level != "" {
		return zerolog.ParseLevel(c.Level)
	}
	if c.DebugModeEnabled {
		return zerolog.DebugLevel, nil
	}
	return zerolog.InfoLevel, nil
}

// ConfigureLogger builds the process logger from the LOG_*, CONSOLE_* and
// FILE_* environment variables.
func ConfigureLogger(debugModeEnabled bool) (*zerolog.Logger, error) {
	config, err := buildLoggerConfig(debugModeEnabled)
	if err != nil {
		return nil, errors.Wrap(err, "can't get logger config")
	}
	level, err := config.level()
	if err != nil {
		return nil, errors.Wrap(err, "LOG_LEVEL")
	}

	var writers []io.Writer
	if config.ConsoleLoggingEnabled {
		writers = append(writers, zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = time.RFC3339
		}))
	} else {
		writers = append(writers, os.Stderr)
	}
	if config.FileLoggingEnabled {
		file, err := newRollingFile(config)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	logger.Debug().
		Bool("consoleLogging", config.ConsoleLoggingEnabled).
		Bool("debugMode", config.DebugModeEnabled).
		Str("level", level.String()).
		Bool("fileLogging", config.FileLoggingEnabled).
		Str("logDirectory", config.Directory).
		Str("fileName", config.Filename).
		Int("maxSizeMB", config.MaxSize).
		Int("maxBackups", config.MaxBackups).
		Int("maxAgeInDays", config.MaxAge).
		Msg("logging configured")

	return &logger, nil
}

func newRollingFile(config *LoggerConfig) (io.Writer, error) {
	if err := os.MkdirAll(config.Directory, 0o744); err != nil {
		return nil, errors.Wrapf(err, "can't create log directory %s", config.Directory)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(config.Directory, config.Filename),
		MaxBackups: config.MaxBackups, // files
		MaxSize:    config.MaxSize,    // megabytes
		MaxAge:     config.MaxAge,     // days
	}, nil
}
