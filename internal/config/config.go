// Package config loads settings from an optional .env file and FOODSHARE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration. Command-line flags take precedence
// over these values.
type Config struct {
	DBPath         string `mapstructure:"db"`
	Addr           string `mapstructure:"addr"`
	LogPath        string `mapstructure:"log"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	NATSURL        string `mapstructure:"nats_url"`
	MetricsEnabled bool   `mapstructure:"metrics"`
}

// Load reads envFile when it exists, then the environment. A missing
// envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("FOODSHARE")
	v.SetDefault("db", "foodshare.db")
	v.SetDefault("addr", ":8080")
	v.SetDefault("log", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("nats_url", "")
	v.SetDefault("metrics", true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, errors.New("database path must not be empty")
	}
	if cfg.Addr == "" {
		return nil, errors.New("listen address must not be empty")
	}
	return &cfg, nil
}
