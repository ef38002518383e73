package statestore

import (
	"context"
	"sync"

	"github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

// Store is an in-memory implementation of statestore.Store.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewStore() *Store {
	return &Store{
		m: make(map[string][]byte),
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	if key == "" {
		return nil, false, statestore.ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	if key == "" {
		return statestore.ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}
