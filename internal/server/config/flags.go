package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   data directory
//	-b string   storage backend: file or memory
//	-p string   corrupt collection policy: degrade or strict
//	-k int      bcrypt cost
//	-s string   access token HMAC secret
//	-t int      access token validity, minutes
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c, -env) do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-p", "-k", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (file, memory)")
	fs.StringVar(&config.CorruptPolicy, "p", config.CorruptPolicy, "corrupt collection policy (degrade, strict)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
