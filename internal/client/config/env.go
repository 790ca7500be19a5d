package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig is a DTO used exclusively for environment parsing. Only set
// variables are copied into the runtime Config, so the environment can
// override any subset of the defaults.
type EnvConfig struct {
	ProviderBaseURL string        `env:"GYMTRACKER_PROVIDER_URL"`
	ProviderAPIKey  string        `env:"GYMTRACKER_PROVIDER_API_KEY"`
	DatabaseDSN     string        `env:"GYMTRACKER_DB_DSN"`
	HTTPTimeout     time.Duration `env:"GYMTRACKER_HTTP_TIMEOUT"`

	S3Bucket        string `env:"GYMTRACKER_S3_BUCKET"`
	S3Region        string `env:"GYMTRACKER_S3_REGION"`
	S3Endpoint      string `env:"GYMTRACKER_S3_ENDPOINT"`
	S3AccessKey     string `env:"GYMTRACKER_S3_ACCESS_KEY"`
	S3SecretKey     string `env:"GYMTRACKER_S3_SECRET_KEY"`
	S3PublicBaseURL string `env:"GYMTRACKER_S3_PUBLIC_BASE_URL"`
}

// parseEnv overlays Config with values from the process environment.
// Unset variables leave the corresponding field untouched.
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ProviderBaseURL != "" {
		cfg.ProviderBaseURL = ec.ProviderBaseURL
	}
	if ec.ProviderAPIKey != "" {
		cfg.ProviderAPIKey = ec.ProviderAPIKey
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
	if ec.HTTPTimeout != 0 {
		cfg.HTTPTimeout = ec.HTTPTimeout
	}
	if ec.S3Bucket != "" {
		cfg.S3Bucket = ec.S3Bucket
	}
	if ec.S3Region != "" {
		cfg.S3Region = ec.S3Region
	}
	if ec.S3Endpoint != "" {
		cfg.S3Endpoint = ec.S3Endpoint
	}
	if ec.S3AccessKey != "" {
		cfg.S3AccessKey = ec.S3AccessKey
	}
	if ec.S3SecretKey != "" {
		cfg.S3SecretKey = ec.S3SecretKey
	}
	if ec.S3PublicBaseURL != "" {
		cfg.S3PublicBaseURL = ec.S3PublicBaseURL
	}
}
