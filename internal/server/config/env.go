package config

import (
	"fmt"
	"strconv"
	"time"
)

// parseEnv overlays values from environment variables. SERVER_ROUNDS is
// accepted as an alias of HASH_COST.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SERVER_ADDR":     &config.HTTPAddr,
		"STORAGE_DRIVER":  &config.StorageDriver,
		"DATABASE_DSN":    &config.DatabaseDSN,
		"MONGO_URI":       &config.MongoURI,
		"MONGO_DATABASE":  &config.MongoDatabase,
		"JWT_SECRET":      &config.SecretKey,
		"TOKEN_TRANSPORT": &config.TokenTransport,
		"COOKIE_NAME":     &config.CookieName,
		"LOG_LEVEL":       &config.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"TOKEN_TTL":        &config.TokenTTL,
		"SHUTDOWN_TIMEOUT": &config.ShutdownTimeout,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("env %s: %w", key, err)
			}
			*dst = d
		}
	}

	for _, key := range []string{"SERVER_ROUNDS", "HASH_COST"} {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("env %s: %w", key, err)
			}
			config.HashCost = n
		}
	}

	if v, ok := lookup("COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("env COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = b
	}
	return nil
}
