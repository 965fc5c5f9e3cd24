// Apply migrations: go run ./cmd/migrator --storage-path=./storage/secureid.db
// Storage.Migrate applies the same embedded migrations on start.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"secureid/migrations"
)

const memoryPath = ":memory:"

// Storage is a key/value slot backend on a single SQLite table.
type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// every connection to :memory: opens its own empty database
	if storagePath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Migrate brings the schema up to date. It is a no-op on an up-to-date database.
func (s *Storage) Migrate() error {
	const op = "storage.sqlite.Migrate"

	m, err := s.migrator()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Rollback reverts every applied migration.
func (s *Storage) Rollback() error {
	const op = "storage.sqlite.Rollback"

	m, err := s.migrator()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// migrator is not closed by its callers: closing it would close s.db too.
func (s *Storage) migrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, err
	}

	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", src, "sqlite3", driver)
}

// Get returns the slot value, or nil with no error when the slot is empty.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.sqlite.Get"

	stmt, err := s.db.PrepareContext(ctx, "SELECT value FROM slots WHERE key = ?")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	var value []byte
	err = stmt.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

// Set overwrites the slot with value.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	const op = "storage.sqlite.Set"

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	if value == nil {
		value = []byte{}
	}

	if _, err := stmt.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	const op = "storage.sqlite.Delete"

	stmt, err := s.db.PrepareContext(ctx, "DELETE FROM slots WHERE key = ?")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
