// Package config loads the CLI configuration from a .env file and the
// environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
}

// Load reads configuration from an optional .env file in the working
// directory, with environment variables taking precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.AutomaticEnv()
	// A missing .env file is fine; the environment alone can carry the
	// configuration.
	_ = v.ReadInConfig()

	if err := v.BindEnv("DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("unable to bind environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	return &cfg, nil
}
