package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"secureid/internal/domain/models"
	"secureid/internal/lib/logger/sl"
	"secureid/internal/lib/password"
	"secureid/internal/lib/token"
	"secureid/internal/storage"
)

var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Latency is the simulated round trip each operation waits before doing any work.
type Latency struct {
	Register time.Duration
	Login    time.Duration
	Profile  time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		Register: 800 * time.Millisecond,
		Login:    800 * time.Millisecond,
		Profile:  600 * time.Millisecond,
	}
}

type Auth struct {
	log             *slog.Logger
	accountSaver    AccountSaver
	accountProvider AccountProvider
	tokens          token.Codec
	hasher          password.Hasher
	latency         Latency
	now             func() time.Time
}

type AccountSaver interface {
	Create(ctx context.Context, draft models.Account) (models.Account, error)
}

type AccountProvider interface {
	FindByEmail(email string) (models.Account, bool)
	FindByID(id int64) (models.Account, bool)
}

type Option func(*Auth)

// WithClock replaces time.Now for created_at stamps.
func WithClock(now func() time.Time) Option {
	return func(a *Auth) { a.now = now }
}

func New(
	log *slog.Logger,
	accountSaver AccountSaver,
	accountProvider AccountProvider,
	tokens token.Codec,
	hasher password.Hasher,
	latency Latency,
	opts ...Option,
) *Auth {
	a := &Auth{
		log:             log,
		accountSaver:    accountSaver,
		accountProvider: accountProvider,
		tokens:          tokens,
		hasher:          hasher,
		latency:         latency,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Register creates a new account.
//
// The latency is spent before the duplicate check, so a rejected
// registration takes as long as a successful one.
func (a *Auth) Register(ctx context.Context, name, email, pass, governmentID string) error {
	const op = "Auth.Register"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("registering account")

	if err := sleep(ctx, a.latency.Register); err != nil {
		log.Warn("registration cancelled", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	stored, err := a.hasher.Hash(pass)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	acc, err := a.accountSaver.Create(ctx, models.Account{
		Name:         name,
		Email:        email,
		Password:     stored,
		GovernmentID: governmentID,
		CreatedAt:    models.FormatCreatedAt(a.now()),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			log.Warn("account already exists", sl.Err(err))
			return fmt.Errorf("%s: %w", op, ErrDuplicateAccount)
		}

		log.Error("failed to save account", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account registered", slog.Int64("account_id", acc.ID))

	return nil
}

// Login checks the credentials and returns a bearer token.
//
// Unknown email and wrong password fail with the same ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, pass string) (string, error) {
	const op = "Auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	if err := sleep(ctx, a.latency.Login); err != nil {
		log.Warn("login cancelled", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	acc, ok := a.accountProvider.FindByEmail(email)
	if !ok {
		log.Info("invalid credentials", slog.String("reason", "account not found"))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !a.hasher.Compare(acc.Password, pass) {
		log.Info("invalid credentials", slog.String("reason", "password mismatch"))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	t, err := a.tokens.Mint(acc)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.Int64("account_id", acc.ID))

	return t, nil
}

// Profile resolves token to its account and returns the account without
// the password. Malformed tokens and tokens for missing accounts both fail
// with ErrInvalidToken.
func (a *Auth) Profile(ctx context.Context, t string) (models.Profile, error) {
	const op = "Auth.Profile"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Debug("fetching profile")

	if err := sleep(ctx, a.latency.Profile); err != nil {
		log.Warn("profile fetch cancelled", sl.Err(err))
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.tokens.Parse(t)
	if err != nil {
		log.Info("invalid token", sl.Err(err))
		return models.Profile{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	acc, ok := a.accountProvider.FindByID(id)
	if !ok {
		log.Info("invalid token", slog.Int64("account_id", id), slog.String("reason", "account not found"))
		return models.Profile{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return acc.Profile(), nil
}

// sleep waits d unless ctx ends first. ctx is checked again after the wait
// so a cancelled call never reaches the store.
func sleep(ctx context.Context, d time.Duration) error {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	return ctx.Err()
}
