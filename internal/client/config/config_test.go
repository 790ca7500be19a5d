package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "gymtracker.db", c.DatabaseDSN)
	assert.Equal(t, 10*time.Second, c.HTTPTimeout)
	assert.Empty(t, c.ProviderBaseURL)
	assert.Empty(t, c.ProviderAPIKey)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "gymtracker.db", cfg.DatabaseDSN)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestExternalConfigured(t *testing.T) {
	var c Config
	assert.False(t, c.ExternalConfigured())

	c.ProviderBaseURL = "https://xyz.example.co"
	assert.False(t, c.ExternalConfigured(), "URL alone is not enough")

	c.ProviderAPIKey = "anon-key"
	assert.True(t, c.ExternalConfigured())
}

func TestS3Configured(t *testing.T) {
	var c Config
	assert.False(t, c.S3Configured())

	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	assert.False(t, c.S3Configured(), "credentials missing")

	c.S3AccessKey = "key"
	c.S3SecretKey = "secret"
	assert.True(t, c.S3Configured())
}
