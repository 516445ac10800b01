package sqlite

import (
	"context"
	"errors"
	"fmt"
	"hydration/internal/domain/entity"
	"hydration/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type keyValueStore struct {
	db *gorm.DB
}

// NewKeyValueStore creates a KeyValueStore backed by the kv_store table.
func NewKeyValueStore(db *gorm.DB) repository.KeyValueStore {
	return &keyValueStore{db: db}
}

// Get retrieves the value stored under key.
func (s *keyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var kv entity.KeyValue
	if err := s.db.WithContext(ctx).Where(&entity.KeyValue{Key: key}).First(&kv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return kv.Value, true, nil
}

// Set upserts value under key.
func (s *keyValueStore) Set(ctx context.Context, key, value string) error {
	kv := entity.KeyValue{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}
