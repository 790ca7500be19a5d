// Package config loads runtime configuration for the GymTracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables with the GYMTRACKER_ prefix (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the external auth provider
//	-k string   API key of the external auth provider
//	-d string   SQLite DSN for local storage
//	-t int      provider HTTP timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "provider_base_url": "https://xyz.example.co",
//	  "provider_api_key": "anon-key",
//	  "database_dsn": "gymtracker.db",
//	  "http_timeout": "10s"
//	}
//
// Backend selection: when both provider_base_url and provider_api_key are
// present the client talks to the external provider; otherwise it runs
// against the local mock registry.
package config
