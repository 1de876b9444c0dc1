package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
)

// Load reads the YAML config at path, layering APP_-prefixed environment
// variables on top. Classifier thresholds fall back to the shipped defaults
// when the section is absent; a partially overridden section must still pass
// validation so a typo cannot silently zero a cutoff.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !v.IsSet("thresholds") {
		config.Thresholds = analytics.DefaultThresholds()
	} else {
		if err := validator.New().Struct(config.Thresholds); err != nil {
			return nil, fmt.Errorf("invalid thresholds config: %w", err)
		}
	}
	return &config, nil
}
