// Package logger builds the application-wide zerolog logger from config.
package logger

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format         string `mapstructure:"format" validate:"oneof=json console"`
	TimeField      string `mapstructure:"time_field"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Env            string `mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller     bool   `mapstructure:"with_caller"`
}

// New validates the config and assembles the logger: JSON to stdout for
// prod-like environments, human console output for dev. The global level is
// set as a side effect so child loggers inherit it.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	cfg.setDefaults()

	var logger zerolog.Logger
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = cfg.TimeField

	var out zerolog.Logger
	if cfg.Format == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		out = zerolog.New(os.Stdout)
	}
	logger = out.With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.ServiceName == "" {
		c.ServiceName = "gamelib-analytics"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
}
