package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, 100, cfg.BodyLimitMB)
	assert.Equal(t, 50, cfg.RateLimitPerMinute)
	assert.NotEmpty(t, cfg.JWTSecret, "development falls back to a dev secret")
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production"}
	assert.Error(t, cfg.validate())
}

func TestValidate_S3RequiresBucket(t *testing.T) {
	cfg := &Config{Env: "development", JWTSecret: "x", StorageDriver: "s3"}
	assert.Error(t, cfg.validate())

	cfg.S3Bucket = "docs"
	assert.NoError(t, cfg.validate())
}
