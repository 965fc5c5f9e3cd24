package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"secureid/internal/storage/memory"
	"secureid/internal/storage/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Slots is the key/value backend every persisted piece of state lives in.
type Slots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type StorageApp struct {
	storage Slots
}

func NewStorageApp(driver, storagePath string) (*StorageApp, error) {
	switch driver {
	case DriverMemory:
		return &StorageApp{storage: memory.New()}, nil
	case "", DriverSQLite:
		if storagePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(storagePath), 0o750); err != nil {
				return nil, err
			}
		}
		storage, err := sqlite.New(storagePath)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(); err != nil {
			_ = storage.Close()
			return nil, err
		}
		return &StorageApp{storage: storage}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func (s *StorageApp) Stop() error {
	return s.storage.Close()
}

func (s *StorageApp) Storage() Slots {
	return s.storage
}
