// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the API server settings. Every field has a default, so
// an empty environment yields a working local setup.
type Config struct {
	Addr               string        `env:"APP_ADDR,default=:8000"`
	DatabaseDSN        string        `env:"DB_DSN,default=sqlite://books.db"`
	DBTimeout          time.Duration `env:"DB_TIMEOUT,default=5s"`
	LogLevel           string        `env:"LOG_LEVEL,default=info"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS,default=*"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=20"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES,default=1048576"`
	EnableHSTS         bool          `env:"ENABLE_HSTS,default=false"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=20s"`
}

// LoadEnvFiles reads .env and .env.local when present. Variables already
// set in the environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the env files and decodes the environment into a Config.
func Load() (Config, error) {
	LoadEnvFiles()
	return FromEnv()
}

// FromEnv decodes the current environment without touching env files.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("APP_ADDR must not be empty")
	case c.DatabaseDSN == "":
		return errors.New("DB_DSN must not be empty")
	case c.DBTimeout <= 0:
		return errors.New("DB_TIMEOUT must be positive")
	case c.RateLimitRPS < 0:
		return errors.New("RATE_LIMIT_RPS must not be negative")
	case c.RateLimitRPS > 0 && c.RateLimitBurst < 1:
		return errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is on")
	case c.MaxBodyBytes <= 0:
		return errors.New("MAX_BODY_BYTES must be positive")
	case c.ShutdownTimeout <= 0:
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
