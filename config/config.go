package config

import (
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// AppConfig is the process configuration. It is loaded once at startup
// and passed by value; nothing mutates it afterwards.
type AppConfig struct {
	// Debug enables the console log encoder and verbose error responses
	Debug bool `env:"DEBUG" envDefault:"false"`

	Auth     AuthConfig
	HTTP     HTTPConfig
	Database DBConfig
	Log      LogConfig
}

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8000"`
	// LoginRateLimit is a ulule limiter rate, e.g. 10-M for ten per minute
	LoginRateLimit string `env:"LOGIN_RATE_LIMIT" envDefault:"10-M"`
}

// Addr returns the listen address
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// DBConfig contains database configuration.
type DBConfig struct {
	// URL is a sqlite DSN
	URL string `env:"DATABASE_URL" envDefault:"file:eventdesk.db"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Parse reads the environment into an AppConfig and validates it
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, goerrors.Wrap(err, goerrors.CategoryBadInput, "parse config")
	}

	cfg.Sanitize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Sanitize applies guardrails to configuration values loaded from env.
func (c *AppConfig) Sanitize() {
	c.Auth.Algorithm = strings.ToUpper(strings.TrimSpace(c.Auth.Algorithm))
	c.HTTP.Host = strings.TrimSpace(c.HTTP.Host)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func (c AppConfig) Validate() error {
	if err := c.Auth.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid auth configuration")
	}

	err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.HTTP.LoginRateLimit, validation.Required, validation.By(validRate)),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid http configuration")
	}

	err = validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid log configuration")
	}

	err = validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.URL, validation.Required),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid database configuration")
	}

	return nil
}

// LogFields returns key value pairs safe to log at startup
func (c AppConfig) LogFields() []any {
	return []any{
		"addr", c.HTTP.Addr(),
		"debug", c.Debug,
		"log_level", c.Log.Level,
		"algorithm", c.Auth.Algorithm,
		"token_ttl_minutes", c.Auth.AccessTokenExpireMinutes,
		"hash_cost", c.Auth.HashCost,
		"login_rate_limit", c.HTTP.LoginRateLimit,
		"secret_key", c.Auth.Redacted(),
	}
}
