// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr"`

	// DatabaseDSN holds the PostgreSQL connection string. When empty the
	// server runs on in-memory stores and loses all mutations on restart.
	DatabaseDSN string `json:"database_dsn"`

	// SeedFile is the path to a JSON seed file with initial facts and
	// accounts. When empty the compiled-in demo content is used.
	SeedFile string `json:"seed_file"`

	// SessionTTL is the idle lifetime of a visitor session.
	SessionTTL time.Duration `json:"-"`

	// Config is the path to the config file.
	Config string `json:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn (empty: in-memory stores)")
	flag.StringVar(&options.SeedFile, "s", "", "path to JSON seed file")
	flag.DurationVar(&options.SessionTTL, "session-ttl", 30*time.Minute, "idle session lifetime")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		options.SeedFile = seedFile
	}

	return options
}
