// Package accounts keeps the ordered account list in memory and mirrors it,
// as one JSON array, into a single storage slot.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"secureid/internal/domain/models"
	"secureid/internal/storage"
)

var ErrMalformedState = errors.New("malformed persisted state")

type Slots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Store struct {
	mu       sync.RWMutex
	slots    Slots
	key      string
	accounts []models.Account
}

// Load reads the accounts slot. A missing or empty slot gives an empty store.
func Load(ctx context.Context, slots Slots, key string) (*Store, error) {
	const op = "storage.accounts.Load"

	raw, err := slots.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accounts := make([]models.Account, 0)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &accounts); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedState, err)
		}
		if accounts == nil {
			accounts = make([]models.Account, 0)
		}
	}

	return &Store{
		slots:    slots,
		key:      key,
		accounts: accounts,
	}, nil
}

func (s *Store) FindByEmail(email string) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return a, true
		}
	}

	return models.Account{}, false
}

func (s *Store) FindByID(id int64) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}

	return models.Account{}, false
}

// Append adds account as is and rewrites the slot.
func (s *Store) Append(ctx context.Context, account models.Account) error {
	const op = "storage.accounts.Append"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(account.Email) >= 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrAccountExists)
	}

	if err := s.appendLocked(ctx, account); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Create assigns the next id to draft, appends it and rewrites the slot,
// all under one lock.
func (s *Store) Create(ctx context.Context, draft models.Account) (models.Account, error) {
	const op = "storage.accounts.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(draft.Email) >= 0 {
		return models.Account{}, fmt.Errorf("%s: %w", op, storage.ErrAccountExists)
	}

	draft.ID = int64(len(s.accounts)) + 1

	if err := s.appendLocked(ctx, draft); err != nil {
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	return draft, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.accounts)
}

// All returns a copy of the accounts in insertion order.
func (s *Store) All() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Account, len(s.accounts))
	copy(out, s.accounts)

	return out
}

func (s *Store) indexOf(email string) int {
	for i, a := range s.accounts {
		if a.Email == email {
			return i
		}
	}
	return -1
}

// appendLocked must be called with s.mu held for writing. On a failed write
// the in-memory list is left as it was.
func (s *Store) appendLocked(ctx context.Context, account models.Account) error {
	next := append(s.accounts[:len(s.accounts):len(s.accounts)], account)

	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}

	if err := s.slots.Set(ctx, s.key, raw); err != nil {
		return err
	}

	s.accounts = next
	return nil
}
