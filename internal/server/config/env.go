package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	envDatabaseDSN = "BLOGLY_DATABASE_DSN"
	envSecretKey   = "BLOGLY_SECRET_KEY"
	envAddr        = "BLOGLY_ADDR"
)

// dotenvFile is read, if present, before the environment is consulted.
// Variables already set in the process win over the file.
var dotenvFile = ".env"

// parseEnv overlays BLOGLY_* variables onto config. A malformed .env file
// panics, like a malformed JSON file; a missing one is ignored.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envAddr); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
}
