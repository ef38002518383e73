package statestore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

// Store is a Redis implementation of statestore.Store. Keys are namespaced
// with a prefix so several devices can share one Redis for development.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial builds a client for addr and verifies it with PING.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, statestore.ErrEmptyKey
	}
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return statestore.ErrEmptyKey
	}
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
