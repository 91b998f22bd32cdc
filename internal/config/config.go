package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Query    QueryConfig    `mapstructure:"query"    validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	Env      string `mapstructure:"env"       validate:"required,oneof=development production test"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// IsProduction reports whether the server runs in a production-like
// environment. Controls the Secure flag on auth cookies and whether raw
// error details are included in error responses.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"  validate:"required"`
	Name string `mapstructure:"name" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                 string `mapstructure:"jwt_secret"                   validate:"required,min=32"`
	TokenLifetimeMinutes      int    `mapstructure:"token_lifetime_minutes"       validate:"required,gt=0"`
	CookieLifetimeDays        int    `mapstructure:"cookie_lifetime_days"         validate:"required,gt=0"`
	ResetTokenLifetimeMinutes int    `mapstructure:"reset_token_lifetime_minutes" validate:"required,gt=0"`
}

// QueryConfig contains defaults applied by the list query builder.
type QueryConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"required,gt=0"`
}

// MailConfig contains SMTP settings for outbound mail (password resets).
// Optional: when Host is empty the server falls back to a logging mailer.
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}
