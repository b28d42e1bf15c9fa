package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:       "secret",
		TokenExpiryDays: 2,
		OTPStore:        "memory",
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingJWTSecretFailsStartup(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveExpiry(t *testing.T) {
	cfg := validConfig()
	cfg.TokenExpiryDays = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_RedisStoreNeedsAddr(t *testing.T) {
	cfg := validConfig()
	cfg.OTPStore = "redis"
	assert.Error(t, cfg.Validate())

	cfg.RedisAddr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownStore(t *testing.T) {
	cfg := validConfig()
	cfg.OTPStore = "etcd"
	assert.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "memory", cfg.OTPStore)
	assert.Equal(t, 2, cfg.TokenExpiryDays)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
}
