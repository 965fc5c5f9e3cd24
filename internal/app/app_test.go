package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secureid/config"
	"secureid/internal/lib/logger/handlers/slogdiscard"
	"secureid/internal/storage/accounts"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	return &config.Config{
		Env:           "local",
		StorageDriver: driver,
		StoragePath:   filepath.Join(t.TempDir(), "secureid.db"),
		Slots:         config.SlotsConfig{Accounts: "mock_users_db", Token: "token"},
		Token:         config.TokenConfig{Scheme: "mock", Prefix: "mock-jwt-token-", Secret: "secure-key-123"},
		Password:      config.PasswordConfig{Hasher: "plain"},
	}
}

func TestNew_SQLiteSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, DriverSQLite)
	log := slogdiscard.NewDiscardLogger()

	storageApp, err := NewStorageApp(cfg.StorageDriver, cfg.StoragePath)
	require.NoError(t, err)

	application, err := New(ctx, log, storageApp, cfg)
	require.NoError(t, err)

	require.NoError(t, application.Auth.Register(ctx, "Alice", "a@x.com", "Abc123!@", "ID-1"))
	require.NoError(t, application.Session.Login(ctx, "a@x.com", "Abc123!@"))
	require.NoError(t, storageApp.Stop())

	reopened, err := NewStorageApp(cfg.StorageDriver, cfg.StoragePath)
	require.NoError(t, err)
	defer reopened.Stop()

	restarted, err := New(ctx, log, reopened, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, restarted.Accounts.Len())

	profile, err := restarted.Session.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
}

func TestNew_CorruptAccountsSlot(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, DriverMemory)

	storageApp, err := NewStorageApp(cfg.StorageDriver, cfg.StoragePath)
	require.NoError(t, err)
	require.NoError(t, storageApp.Storage().Set(ctx, cfg.Slots.Accounts, []byte("not json")))

	_, err = New(ctx, slogdiscard.NewDiscardLogger(), storageApp, cfg)
	require.ErrorIs(t, err, accounts.ErrMalformedState)
}

func TestNew_RejectsUnknownSchemes(t *testing.T) {
	ctx := context.Background()
	log := slogdiscard.NewDiscardLogger()

	cfg := testConfig(t, DriverMemory)
	cfg.Token.Scheme = "paseto"
	storageApp, err := NewStorageApp(cfg.StorageDriver, "")
	require.NoError(t, err)
	_, err = New(ctx, log, storageApp, cfg)
	require.Error(t, err)

	cfg = testConfig(t, DriverMemory)
	cfg.Password.Hasher = "md5"
	_, err = New(ctx, log, storageApp, cfg)
	require.Error(t, err)
}

func TestNewStorageApp_UnknownDriver(t *testing.T) {
	_, err := NewStorageApp("postgres", "")
	require.Error(t, err)
}

func TestNewStorageApp_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "secureid.db")

	storageApp, err := NewStorageApp(DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, storageApp.Stop())
}
