// Package session holds the caller's side of authentication: it keeps the
// bearer token in its own slot across restarts and drops it when the
// backend stops accepting it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"secureid/internal/domain/models"
	"secureid/internal/lib/logger/sl"
	"secureid/internal/services/auth"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Authenticator interface {
	Login(ctx context.Context, email, pass string) (string, error)
	Profile(ctx context.Context, token string) (models.Profile, error)
}

type TokenSlots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Keeper struct {
	log   *slog.Logger
	auth  Authenticator
	slots TokenSlots
	key   string
}

func New(log *slog.Logger, auth Authenticator, slots TokenSlots, key string) *Keeper {
	return &Keeper{
		log:   log,
		auth:  auth,
		slots: slots,
		key:   key,
	}
}

// Login authenticates and stores the token on success. A failed login leaves
// any previously stored token alone.
func (k *Keeper) Login(ctx context.Context, email, pass string) error {
	const op = "Keeper.Login"

	log := k.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	t, err := k.auth.Login(ctx, email, pass)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := k.slots.Set(ctx, k.key, []byte(t)); err != nil {
		log.Error("failed to store token", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("token stored")

	return nil
}

func (k *Keeper) Token(ctx context.Context) (string, bool, error) {
	const op = "Keeper.Token"

	raw, err := k.slots.Get(ctx, k.key)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	if len(raw) == 0 {
		return "", false, nil
	}

	return string(raw), true, nil
}

// Profile fetches the profile for the stored token. When the backend
// rejects the token it is removed, which logs the caller out.
func (k *Keeper) Profile(ctx context.Context) (models.Profile, error) {
	const op = "Keeper.Profile"

	log := k.log.With(
		slog.String("op", op),
	)

	t, ok, err := k.Token(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return models.Profile{}, fmt.Errorf("%s: %w", op, ErrNotLoggedIn)
	}

	profile, err := k.auth.Profile(ctx, t)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			log.Warn("stored token rejected, logging out")

			if delErr := k.slots.Delete(ctx, k.key); delErr != nil {
				log.Error("failed to drop token", sl.Err(delErr))
				return models.Profile{}, fmt.Errorf("%s: %w", op, errors.Join(err, delErr))
			}
		}

		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

func (k *Keeper) Logout(ctx context.Context) error {
	const op = "Keeper.Logout"

	if err := k.slots.Delete(ctx, k.key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	k.log.Debug("token dropped", slog.String("op", op))

	return nil
}
