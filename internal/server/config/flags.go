package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/blogly/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     database DSN
//	-s string     flash cookie secret key
//	-t duration   shutdown timeout (e.g., "5s")
//	-f duration   flash message lifetime (e.g., "5m")
//
// Unknown flags are dropped by flagx.FilterArgs so that -c/-config can share
// the command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "graceful shutdown timeout")
	fs.DurationVar(&config.FlashTTL, "f", config.FlashTTL, "flash message lifetime")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
