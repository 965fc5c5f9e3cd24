package app

import (
	"context"
	"fmt"
	"log/slog"

	"secureid/config"
	"secureid/internal/lib/password"
	"secureid/internal/lib/token"
	"secureid/internal/services/auth"
	"secureid/internal/services/session"
	"secureid/internal/storage/accounts"
)

type App struct {
	Auth       *auth.Auth
	Session    *session.Keeper
	Accounts   *accounts.Store
	StorageApp *StorageApp
}

// New loads the account store from storageApp and builds the services on
// top of it. A corrupt accounts slot fails here with accounts.ErrMalformedState.
func New(
	ctx context.Context,
	log *slog.Logger,
	storageApp *StorageApp,
	cfg *config.Config,
) (*App, error) {
	const op = "app.New"

	slots := storageApp.Storage()

	store, err := accounts.Load(ctx, slots, cfg.Slots.Accounts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	codec, err := token.New(cfg.Token.Scheme, cfg.Token.Prefix, cfg.Token.Secret, cfg.Token.TTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hasher, err := password.New(cfg.Password.Hasher, cfg.Password.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	latency := auth.Latency{
		Register: cfg.Latency.Register,
		Login:    cfg.Latency.Login,
		Profile:  cfg.Latency.Profile,
	}

	authService := auth.New(log, store, store, codec, hasher, latency)

	keeper := session.New(log, authService, slots, cfg.Slots.Token)

	log.Debug("app initialized",
		slog.Int("accounts", store.Len()),
		slog.String("token_scheme", cfg.Token.Scheme),
		slog.String("hasher", cfg.Password.Hasher),
	)

	return &App{
		Auth:       authService,
		Session:    keeper,
		Accounts:   store,
		StorageApp: storageApp,
	}, nil
}
