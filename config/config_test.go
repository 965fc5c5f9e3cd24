package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMustLoadPath_OverridesAndDefaults(t *testing.T) {
	path := writeTempYAML(t, `
storage_driver: "memory"
slots:
  accounts: "users"
latency:
  login: 5ms
token:
  ttl: 2h
`)

	cfg := MustLoadPath(path)

	assert.Equal(t, "users", cfg.Slots.Accounts)
	assert.Equal(t, "token", cfg.Slots.Token)
	assert.Equal(t, 5*time.Millisecond, cfg.Latency.Login)
	assert.Equal(t, 800*time.Millisecond, cfg.Latency.Register)
	assert.Equal(t, 600*time.Millisecond, cfg.Latency.Profile)
	assert.Equal(t, "mock-jwt-token-", cfg.Token.Prefix)
	assert.Equal(t, 2*time.Hour, cfg.Token.TTL)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
}

func TestMustLoadPath_MissingFilePanics(t *testing.T) {
	require.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}

func TestMustLoadPath_InvalidYAMLPanics(t *testing.T) {
	path := writeTempYAML(t, "latency: [this is: not valid")

	require.Panics(t, func() { MustLoadPath(path) })
}

func TestMustLoad_UsesConfigPathEnv(t *testing.T) {
	path := writeTempYAML(t, `
slots:
  token: "session_token"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad("")

	assert.Equal(t, "session_token", cfg.Slots.Token)
}

func TestMustLoad_FlagWinsOverEnv(t *testing.T) {
	fromEnv := writeTempYAML(t, "slots:\n  token: \"from_env\"\n")
	fromFlag := writeTempYAML(t, "slots:\n  token: \"from_flag\"\n")
	t.Setenv("CONFIG_PATH", fromEnv)

	cfg := MustLoad(fromFlag)

	assert.Equal(t, "from_flag", cfg.Slots.Token)
}

func TestShippedLocalConfigLoads(t *testing.T) {
	cfg := MustLoadPath("local.yaml")

	assert.Equal(t, "mock_users_db", cfg.Slots.Accounts)
	assert.Equal(t, "mock", cfg.Token.Scheme)
	assert.Equal(t, "secure-key-123", cfg.Token.Secret)
}
