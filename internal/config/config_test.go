package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:               "8376",
		Env:                "development",
		DBPassword:         "secure-password",
		DBSSLMode:          "disable",
		AccessTokenSecret:  "access-secret-at-least-32-chars-long!!",
		RefreshTokenSecret: "refresh-secret-at-least-32-chars-long!",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    240 * time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing access secret", func(c *Config) { c.AccessTokenSecret = "" }, true},
		{"missing refresh secret", func(c *Config) { c.RefreshTokenSecret = "" }, true},
		{"identical secrets", func(c *Config) {
			c.RefreshTokenSecret = c.AccessTokenSecret
		}, true},
		{"zero access TTL", func(c *Config) { c.AccessTokenTTL = 0 }, true},
		{"refresh TTL not longer than access TTL", func(c *Config) {
			c.RefreshTokenTTL = c.AccessTokenTTL
		}, true},
		{"production with valid secrets", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
		{"production with default access secret", func(c *Config) {
			c.Env = "production"
			c.AccessTokenSecret = defaultAccessSecret
		}, true},
		{"production with default refresh secret", func(c *Config) {
			c.Env = "production"
			c.RefreshTokenSecret = defaultRefreshSecret
		}, true},
		{"production with short secret", func(c *Config) {
			c.Env = "production"
			c.AccessTokenSecret = "short-secret"
		}, true},
		{"production with default DB password", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}
