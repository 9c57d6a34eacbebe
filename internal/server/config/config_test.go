package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.HTTPAddr)
	assert.Equal(t, StoragePostgres, c.StorageDriver)
	assert.Equal(t, "library", c.MongoDatabase)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, DefaultHashCost, c.HashCost)
	assert.Equal(t, TransportHeader, c.TokenTransport)
	assert.Equal(t, "authToken", c.CookieName)
	assert.Equal(t, DefaultSecretKey, c.SecretKey)
	assert.NoError(t, c.Validate())
}

func TestLoad_DefaultsWithoutSources(t *testing.T) {
	c, err := load(nil, noEnv)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr": ":7000",
		"hash_cost": 11,
		"token_ttl": "30m",
	})
	env := map[string]string{
		"HASH_COST":  "12",
		"JWT_SECRET": "from-env",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	c, err := load([]string{"-c", path, "-s", "from-flag"}, lookup)
	require.NoError(t, err)

	assert.Equal(t, ":7000", c.HTTPAddr, "json overrides defaults")
	assert.Equal(t, 30*time.Minute, c.TokenTTL, "json overrides defaults")
	assert.Equal(t, 12, c.HashCost, "env overrides json")
	assert.Equal(t, "from-flag", c.SecretKey, "flags override env")
}

func TestLoad_InvalidIsRejected(t *testing.T) {
	_, err := load([]string{"-hash-cost", "2"}, noEnv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash cost")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "cookie ok", mutate: func(c *Config) { c.TokenTransport = TransportCookie }},
		{name: "empty secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "secret key"},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: "token ttl"},
		{name: "cost too high", mutate: func(c *Config) { c.HashCost = 32 }, wantErr: "hash cost"},
		{name: "bad transport", mutate: func(c *Config) { c.TokenTransport = "query" }, wantErr: "token transport"},
		{name: "cookie without name", mutate: func(c *Config) {
			c.TokenTransport = TransportCookie
			c.CookieName = ""
		}, wantErr: "cookie name"},
		{name: "bad storage", mutate: func(c *Config) { c.StorageDriver = "redis" }, wantErr: "storage driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
