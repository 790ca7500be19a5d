package config

import "time"

// Config holds runtime settings for the GymTracker CLI.
//
// Fields:
//   - ProviderBaseURL / ProviderAPIKey: the external auth provider project
//     URL and its anon API key. Both present = external mode; otherwise the
//     client falls back to the local mock registry.
//   - DatabaseDSN: SQLite file for local durable storage.
//   - HTTPTimeout: per-request timeout of the provider HTTP client.
//   - S3*: optional object store for avatar uploads; the feature is off
//     until bucket, region and credentials are all set.
type Config struct {
	ProviderBaseURL string
	ProviderAPIKey  string
	DatabaseDSN     string
	HTTPTimeout     time.Duration

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "gymtracker.db"
	c.HTTPTimeout = 10 * time.Second
}

// ExternalConfigured reports whether the external auth provider can be used.
func (c *Config) ExternalConfigured() bool {
	return c.ProviderBaseURL != "" && c.ProviderAPIKey != ""
}

// S3Configured reports whether avatar uploads are available.
func (c *Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3Region != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
