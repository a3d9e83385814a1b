package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blogly/internal/flagx"
	"github.com/dmitrijs2005/blogly/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations accept
// "5s" style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	ShutdownTimeout  timex.Duration `json:"shutdown_timeout"`
	FlashTTL         timex.Duration `json:"flash_ttl"`
}

// parseJson overlays the file named by -c/-config onto config. Keys missing
// from the file leave the current values alone. An unreadable or malformed
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.FlashTTL.Duration != 0 {
		config.FlashTTL = c.FlashTTL.Duration
	}
}
