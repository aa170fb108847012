// Package config loads service configuration from the environment, with a
// .env file picked up in development.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port int `env:"PORT" envDefault:"4002"`

	PostgresDSN string `env:"PG_DSN"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	CianAPIKey    string        `env:"CIAN_API_KEY"`
	CianReportTTL time.Duration `env:"CIAN_REPORT_TTL" envDefault:"10m"`

	ObjectsListLimit int `env:"OBJECTS_LIST_LIMIT" envDefault:"200"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.PostgresDSN == "" {
		return cfg, errors.New("PG_DSN is required")
	}
	return cfg, nil
}
