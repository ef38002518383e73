package statestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

// entry is the single table backing the on-device store.
type entry struct {
	Key       string `gorm:"primaryKey;column:state_key"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "client_state" }

// Store is a SQLite file implementation of statestore.Store, the on-device default.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the state table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, statestore.ErrEmptyKey
	}
	var e entry
	err := s.db.WithContext(ctx).Where("state_key = ?", key).Take(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if e.Value == nil {
		e.Value = []byte{}
	}
	return e.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return statestore.ErrEmptyKey
	}
	if value == nil {
		value = []byte{}
	}
	e := entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}
