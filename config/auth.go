package config

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/ulule/limiter/v3"
)

// AuthConfig holds the token and password hashing settings
type AuthConfig struct {
	SecretKey                string `env:"SECRET_KEY"`
	Algorithm                string `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	HashCost                 int    `env:"HASH_COST" envDefault:"12"`
}

var _ auth.Config = AuthConfig{}

func (a AuthConfig) GetSigningKey() string {
	return a.SecretKey
}

func (a AuthConfig) GetSigningMethod() string {
	return a.Algorithm
}

func (a AuthConfig) GetTokenExpiration() int {
	return a.AccessTokenExpireMinutes
}

func (a AuthConfig) GetHashCost() int {
	return a.HashCost
}

// Redacted reports whether a secret is set without revealing it
func (a AuthConfig) Redacted() string {
	if a.SecretKey == "" {
		return "<unset>"
	}
	return "<redacted>"
}

// String never includes the secret
func (a AuthConfig) String() string {
	return "AuthConfig{SecretKey:" + a.Redacted() + " Algorithm:" + a.Algorithm + "}"
}

// GoString keeps %#v from printing the secret
func (a AuthConfig) GoString() string {
	return a.String()
}

func (a AuthConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.SecretKey, validation.Required.Error("SECRET_KEY is required")),
		validation.Field(&a.Algorithm, validation.Required, validation.In("HS256", "HS384", "HS512")),
		validation.Field(&a.AccessTokenExpireMinutes, validation.Required, validation.Min(1)),
		validation.Field(&a.HashCost, validation.Required, validation.Min(4), validation.Max(31)),
	)
}

func validRate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := limiter.NewRateFromFormatted(s)
	return err
}
