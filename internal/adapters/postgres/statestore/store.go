package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/campus-rideshare/ride-core/internal/adapters/postgres"
	"github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

// Store is a Postgres implementation of statestore.Store backed by the
// client_state table (see postgres.Migrate).
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.pool == nil {
		return nil, false, errors.New("nil postgres pool")
	}
	if key == "" {
		return nil, false, statestore.ErrEmptyKey
	}
	row := s.pool.QueryRow(ctx, `
		SELECT value
		FROM client_state
		WHERE state_key = $1
	`, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrapMissingTable(err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.pool == nil {
		return errors.New("nil postgres pool")
	}
	if key == "" {
		return statestore.ErrEmptyKey
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO client_state (state_key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (state_key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, time.Now().UTC())
	return wrapMissingTable(err)
}

func wrapMissingTable(err error) error {
	if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UndefinedTableCode {
		return fmt.Errorf("client_state table missing, run migrations: %w", err)
	}
	return err
}
