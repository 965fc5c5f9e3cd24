// Package memory is an in-process slot backend. Nothing survives the process.
package memory

import (
	"context"
	"sync"
)

type Storage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func New() *Storage {
	return &Storage{slots: make(map[string][]byte)}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte{}, value...)
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}

func (s *Storage) Close() error { return nil }
