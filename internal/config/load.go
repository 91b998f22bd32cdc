package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables use the NATOURS_ prefix with
// underscores separating nested keys (e.g. NATOURS_AUTH_JWT_SECRET).
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.name", "natours")
	v.SetDefault("auth.token_lifetime_minutes", 90*24*60)
	v.SetDefault("auth.cookie_lifetime_days", 90)
	v.SetDefault("auth.reset_token_lifetime_minutes", 10)
	v.SetDefault("query.default_limit", 100)
	v.SetDefault("mail.port", 587)

	// Keys without a usable default still need to be registered, or
	// AutomaticEnv will not surface them during Unmarshal.
	v.SetDefault("database.uri", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")

	// Optional config file alongside the binary
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override file values
	v.SetEnvPrefix("NATOURS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
