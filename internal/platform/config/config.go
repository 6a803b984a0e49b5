package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config is the process configuration, bound from environment variables.
type Config struct {
	PostgresDSN string `mapstructure:"POSTGRES_DSN"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from the environment with defaults applied.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	// AutomaticEnv alone does not surface env vars to Unmarshal;
	// bind each key explicitly.
	for _, key := range []string{"POSTGRES_DSN", "HTTP_PORT", "LOG_LEVEL"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is not set")
	}

	return &cfg, nil
}
