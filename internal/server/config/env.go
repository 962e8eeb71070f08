package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvPort           = "PORT"
	EnvAddress        = "ADDRESS"
	EnvDataDir        = "DATA_DIR"
	EnvStorageBackend = "STORAGE_BACKEND"
	EnvCorruptPolicy  = "CORRUPT_POLICY"
	EnvBcryptCost     = "BCRYPT_COST"
	EnvSecretKey      = "SECRET_KEY"
	EnvTokenTTL       = "ACCESS_TOKEN_TTL"
	EnvLogLevel       = "LOG_LEVEL"
)

// parseEnv loads an optional dotenv file (the -env flag, or ./.env) and
// then overlays environment variables onto config. Variables already set in
// the process environment win over the file. PORT alone binds all
// interfaces; ADDRESS takes a full host:port and wins over PORT.
// Malformed numbers and durations panic, like malformed flags.
func parseEnv(config *Config) {
	if file := flagx.EnvFileFlags(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else {
		// .env is optional
		_ = godotenv.Load()
	}

	if v := os.Getenv(EnvPort); v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	setString(&config.EndpointAddrHTTP, os.Getenv(EnvAddress))
	setString(&config.DataDir, os.Getenv(EnvDataDir))
	setString(&config.StorageBackend, os.Getenv(EnvStorageBackend))
	setString(&config.CorruptPolicy, os.Getenv(EnvCorruptPolicy))
	setString(&config.SecretKey, os.Getenv(EnvSecretKey))
	setString(&config.LogLevel, os.Getenv(EnvLogLevel))

	if v := os.Getenv(EnvBcryptCost); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = cost
	}

	if v := os.Getenv(EnvTokenTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = ttl
	}
}
