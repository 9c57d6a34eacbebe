package config

import (
	"flag"
	"io"
)

// bindFlags registers every supported flag on fs, using the current values
// of config as defaults.
//
// Supported flags:
//
//	-c, -config string        JSON config file
//	-a string                 HTTP bind address (e.g. ":8000")
//	-storage string           postgres | mongo | memory
//	-d string                 PostgreSQL DSN
//	-mongo-uri string         MongoDB URI
//	-mongo-db string          MongoDB database name
//	-s string                 JWT HMAC secret key
//	-token-ttl duration       session token lifetime
//	-hash-cost int            bcrypt cost factor
//	-token-transport string   header | cookie
//	-cookie-name string       auth cookie name
//	-cookie-secure bool       mark the auth cookie Secure
//	-log-level string         debug | info | warn | error
//	-shutdown-timeout duration
func bindFlags(fs *flag.FlagSet, config *Config, configFile *string) {
	fs.StringVar(configFile, "config", "", "path to JSON config file")
	fs.StringVar(configFile, "c", "", "path to JSON config file (short)")

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.StorageDriver, "storage", config.StorageDriver, "storage driver: postgres, mongo or memory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "mongo-uri", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "mongo-db", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.TokenTTL, "token-ttl", config.TokenTTL, "session token validity")
	fs.IntVar(&config.HashCost, "hash-cost", config.HashCost, "bcrypt cost factor")
	fs.StringVar(&config.TokenTransport, "token-transport", config.TokenTransport, "token transport: header or cookie")
	fs.StringVar(&config.CookieName, "cookie-name", config.CookieName, "auth cookie name")
	fs.BoolVar(&config.CookieSecure, "cookie-secure", config.CookieSecure, "set Secure on the auth cookie")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.DurationVar(&config.ShutdownTimeout, "shutdown-timeout", config.ShutdownTimeout, "graceful shutdown timeout")
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// configPath extracts the -c/-config value without touching any other
// setting.
func configPath(args []string) (string, error) {
	var path string
	scratch := &Config{}
	fs := newFlagSet()
	bindFlags(fs, scratch, &path)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return path, nil
}

// parseFlags applies command-line flags on top of config. Flags that are not
// given keep the value config already holds.
func parseFlags(config *Config, args []string) error {
	var path string
	fs := newFlagSet()
	bindFlags(fs, config, &path)
	return fs.Parse(args)
}
