package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/foodstore/internal/flagx"
	"github.com/dmitrijs2005/foodstore/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "1m" as well as
// integer nanoseconds. Zero values leave the current setting untouched.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DataDir                     string         `json:"data_dir"`
	StorageBackend              string         `json:"storage_backend"`
	CorruptPolicy               string         `json:"corrupt_policy"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded. An unreadable or invalid
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DataDir, c.DataDir)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.CorruptPolicy, c.CorruptPolicy)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
