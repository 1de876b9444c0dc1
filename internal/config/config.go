package config

import (
	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/logger"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

type RedisConfig struct {
	// Empty Addr disables the derived-result cache entirely.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

type Config struct {
	Server     ServerConfig         `mapstructure:"server"`
	Logger     logger.LoggerConfig  `mapstructure:"logger"`
	Postgres   PostgresConfig       `mapstructure:"postgres"`
	Redis      RedisConfig          `mapstructure:"redis"`
	Thresholds analytics.Thresholds `mapstructure:"thresholds"`
}
