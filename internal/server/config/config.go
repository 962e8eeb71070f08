// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment/.env and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/recordstore"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the foodstore server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DataDir: directory holding users.json, orders.json and messages.json.
//   - StorageBackend: "file" (durable) or "memory" (ephemeral).
//   - CorruptPolicy: "degrade" or "strict", see recordstore.CorruptPolicy.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - SecretKey: HMAC secret for access tokens. Empty means a random key per process.
//   - AccessTokenValidityDuration: lifetime of tokens issued on login.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP            string
	DataDir                     string
	StorageBackend              string
	CorruptPolicy               string
	BcryptCost                  int
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DataDir = "data"
	c.StorageBackend = recordstore.BackendFile
	c.CorruptPolicy = string(recordstore.PolicyDegrade)
	c.BcryptCost = bcrypt.DefaultCost
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.LogLevel = "info"
}

// Validate checks values that would otherwise fail late, at first use.
func (c *Config) Validate() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if _, err := recordstore.ParseCorruptPolicy(c.CorruptPolicy); err != nil {
		return err
	}
	switch c.StorageBackend {
	case recordstore.BackendFile, recordstore.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("access token validity must be positive, got %s", c.AccessTokenValidityDuration)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, then from the environment (after loading an
// optional .env file) and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
