package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "www.example:9000",
		"data_dir":                       "/srv/data",
		"storage_backend":                "memory",
		"corrupt_policy":                 "strict",
		"bcrypt_cost":                    11,
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "2m",
		"log_level":                      "warn",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "/srv/data", cfg.DataDir)
		assert.Equal(t, "memory", cfg.StorageBackend)
		assert.Equal(t, "strict", cfg.CorruptPolicy)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("partial json keeps other fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"data_dir": "/tmp/x"})
		os.Args = []string{"testbin", "-c", partial}

		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg)

		assert.Equal(t, "/tmp/x", cfg.DataDir)
		assert.Equal(t, ":5000", cfg.EndpointAddrHTTP)
		assert.Equal(t, 10, cfg.BcryptCost)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", DataDir: "d", BcryptCost: 5}
		parseJson(cfg)

		assert.Equal(t, &Config{EndpointAddrHTTP: "defaults:1234", DataDir: "d", BcryptCost: 5}, cfg)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
