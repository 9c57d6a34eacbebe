package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(c *Config)
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-storage", "memory", "-d", "db",
				"-mongo-uri", "mongodb://m", "-mongo-db", "lib", "-s", "secret",
				"-token-ttl", "90m", "-hash-cost", "12", "-token-transport", "cookie",
				"-cookie-name", "sid", "-cookie-secure", "-log-level", "debug",
				"-shutdown-timeout", "1s",
			},
			expected: func(c *Config) {
				c.HTTPAddr = "127.0.0.1:9090"
				c.StorageDriver = StorageMemory
				c.DatabaseDSN = "db"
				c.MongoURI = "mongodb://m"
				c.MongoDatabase = "lib"
				c.SecretKey = "secret"
				c.TokenTTL = 90 * time.Minute
				c.HashCost = 12
				c.TokenTransport = TransportCookie
				c.CookieName = "sid"
				c.CookieSecure = true
				c.LogLevel = "debug"
				c.ShutdownTimeout = time.Second
			},
		},
		{
			name:     "unset flags keep values",
			args:     []string{"-s", "only-secret"},
			expected: func(c *Config) { c.SecretKey = "only-secret" },
		},
		{
			name:    "unknown flag",
			args:    []string{"-x", "1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := &Config{}
			got.LoadDefaults()

			err := parseFlags(got, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := &Config{}
			want.LoadDefaults()
			tt.expected(want)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}

func Test_configPath(t *testing.T) {
	p, err := configPath([]string{"-a", ":1", "-config", "/etc/auth.json"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/auth.json", p)

	p, err = configPath([]string{"-c=/tmp/x.json"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.json", p)

	p, err = configPath(nil)
	require.NoError(t, err)
	assert.Empty(t, p)
}
