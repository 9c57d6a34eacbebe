package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/libauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only keys
// present in the file override the current values, so every field is a
// pointer.
type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	StorageDriver   *string         `json:"storage_driver"`
	DatabaseDSN     *string         `json:"database_dsn"`
	MongoURI        *string         `json:"mongo_uri"`
	MongoDatabase   *string         `json:"mongo_database"`
	SecretKey       *string         `json:"secret_key"`
	TokenTTL        *timex.Duration `json:"token_ttl"`
	HashCost        *int            `json:"hash_cost"`
	TokenTransport  *string         `json:"token_transport"`
	CookieName      *string         `json:"cookie_name"`
	CookieSecure    *bool           `json:"cookie_secure"`
	LogLevel        *string         `json:"log_level"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file at path. An empty path means
// no file was requested.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenTransport, c.TokenTransport)
	setString(&config.CookieName, c.CookieName)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.HashCost != nil {
		config.HashCost = *c.HashCost
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
